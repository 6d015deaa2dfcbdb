// Copyright (c) 2025, Geowitness Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geowitness/geowitness/pkg/snapshot"
)

const maxSnapshotFileSize = 1 << 20 // 1 MiB, far beyond any real record

// ReadSnapshotFile loads a previously serialized snapshot from path.
// Format is inferred from the file extension: .yaml and .yml are parsed
// as YAML, anything else as JSON.
func ReadSnapshotFile(path string) (*snapshot.GeoSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	return ReadSnapshot(f, format)
}

// ReadSnapshot decodes a single snapshot record from r in the given format.
func ReadSnapshot(r io.Reader, format Format) (*snapshot.GeoSnapshot, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSnapshotFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var s snapshot.GeoSnapshot
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML snapshot: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse JSON snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format: %s", format)
	}

	if s.Digest == "" {
		return nil, fmt.Errorf("snapshot record has no digest")
	}
	return &s, nil
}
