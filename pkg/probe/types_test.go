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

package probe

import (
	"errors"
	"fmt"
	"testing"

	gwerrors "github.com/geowitness/geowitness/pkg/errors"
)

func TestErrUnavailableCode(t *testing.T) {
	var serr *gwerrors.StructuredError
	if !errors.As(ErrUnavailable, &serr) {
		t.Fatalf("Expected StructuredError, got %T", ErrUnavailable)
	}
	if serr.Code != gwerrors.ErrCodeProbeUnavailable {
		t.Errorf("Code = %s, want %s", serr.Code, gwerrors.ErrCodeProbeUnavailable)
	}

	// Probes report unavailability by wrapping the sentinel; identity must
	// survive the wrap.
	wrapped := fmt.Errorf("gps: %w", ErrUnavailable)
	if !errors.Is(wrapped, ErrUnavailable) {
		t.Error("wrapped ErrUnavailable lost identity")
	}
}
