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

// Package serializer writes snapshot records to their output destinations.
//
// Three formats are supported:
//   - JSON: machine-readable structured data with indentation
//   - YAML: human-readable output
//   - Table: flattened key/value rows for terminal inspection
//
// and three destinations, selected by the output string:
//   - "" or "-": stdout
//   - "mqtt://host:port/topic": publish to an MQTT broker
//   - anything else: a file path
//
// Usage:
//
//	w := serializer.NewWriterForOutput(serializer.FormatJSON, out)
//	defer serializer.CloseIfCloser(w)
//	if err := w.Serialize(ctx, snap); err != nil {
//	    ...
//	}
//
// For HTTP responses, RespondJSON writes a JSON body with the proper
// content type.
package serializer

import "context"

// Serializer is an interface for serializing snapshot data.
// Implementations write to stdout, files, MQTT topics, or HTTP responses.
//
// The context is used for cancellation, which matters for implementations
// that perform network I/O (the MQTT writer in particular).
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is an optional interface for Serializers holding resources such
// as file handles or broker connections.
type Closer interface {
	Close() error
}

// CloseIfCloser closes s when it implements Closer.
func CloseIfCloser(s Serializer) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
