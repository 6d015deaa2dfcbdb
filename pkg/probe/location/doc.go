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

// Package location implements the device's location probes.
//
// Two sources are supported, tried in order by Chain:
//
//   - SerialGPS: a satellite fix read as NMEA sentences from a serial GPS
//     receiver. Position and fix time come from RMC, the accuracy estimate
//     from GGA's HDOP.
//   - GeoIP: a coarse network fix derived from the device's outbound IP
//     address looked up in a local MaxMind city database.
//
// Both sources are single-shot and best-effort; a source that cannot
// produce a fix returns probe.ErrUnavailable and the next one is tried.
package location
