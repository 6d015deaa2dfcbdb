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

// Package snapshot defines the GeoSnapshot evidence record and its
// integrity digest.
//
// A GeoSnapshot is one immutable capture of a device's location and
// network context. The record carries a SHA-512 digest over its fields,
// computed once at construction, so any later mutation of a stored or
// transmitted snapshot is detectable.
//
// # Record Fields
//
// Each snapshot contains:
//
//   - Latitude, Longitude: last-known position in decimal degrees, 0.0
//     when no fix was available
//   - Accuracy: horizontal accuracy radius in meters, 0.0 when unknown
//   - Timestamp: epoch milliseconds of the fix, or of the capture when
//     no fix was available
//   - Provider: the location source that produced the fix ("gps",
//     "network"), or "unknown"
//   - WifiInfo: "SSID:<ssid>,BSSID:<bssid>" or a sentinel
//   - CellInfo: "cells:<count>" or a sentinel
//   - Digest: lowercase hex SHA-512 over the seven fields above
//
// # Sentinel Values
//
// Unavailable readings never fail a capture; they degrade to fixed
// sentinel strings (see the Sentinel* constants). A sentinel is part of
// the digested content like any other value.
//
// # Digest Canonical Form
//
// The digest input is the comma-joined canonical encoding of the seven
// non-digest fields in declaration order. Floats encode via
// strconv.FormatFloat with the 'f' format and minimal precision, so the
// encoding is locale-independent and stable across platforms:
//
//	lat,lon,accuracy,timestamp,provider,wifiInfo,cellInfo
//
// Use Verify to recompute and compare the digest of a record received
// from storage or the wire.
package snapshot
