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

// Package capture assembles tamper-evident GeoSnapshot records from the
// device probes.
//
// A capture queries the location, Wi-Fi, and cellular probes concurrently,
// each single-shot and best-effort. Probe failures never fail the capture:
// an unavailable subsystem degrades to its "*_unavailable" sentinel, a
// failing query to its "*_error" sentinel, and a missing location fix to
// zero coordinates with provider "unknown" and the capture time as the
// record timestamp. The assembled record computes its integrity digest at
// construction.
//
// The Capturer follows the snapshotter pattern: a probe Factory for
// dependency injection and an optional Serializer for output.
package capture
