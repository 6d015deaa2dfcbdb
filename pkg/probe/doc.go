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

// Package probe defines the device subsystem probes that feed a capture.
//
// Three probe interfaces cover the three subsystems a snapshot reads:
//
//   - LocationProbe: last-known position fix (satellite first, network
//     fallback)
//   - WifiProbe: current Wi-Fi association, formatted for the record
//   - CellProbe: count of currently visible cell towers
//
// Every probe is best-effort and single-shot. A probe distinguishes two
// failure modes: ErrUnavailable means the subsystem is absent, disabled,
// or not configured (the moral equivalent of a denied runtime permission);
// any other error means the subsystem was queried and the query failed.
// The capture layer maps the former to "*_unavailable" sentinels and the
// latter to "*_error" sentinels; probe failures never fail a capture.
//
// The Factory interface creates probes with their dependencies wired,
// enabling injection of fakes in tests.
package probe
