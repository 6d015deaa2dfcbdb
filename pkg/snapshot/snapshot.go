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

package snapshot

import (
	"time"

	"github.com/google/uuid"
)

// Sentinel values reported when a subsystem reading could not be determined.
// A sentinel is digested like any real value, so "no reading" is itself
// tamper-evident.
const (
	// ProviderUnknown is the provider value when no location fix was available.
	ProviderUnknown = "unknown"

	// SentinelWifiUnavailable is reported when the Wi-Fi subsystem is absent,
	// disabled, or not associated.
	SentinelWifiUnavailable = "wifi_unavailable"
	// SentinelWifiError is reported when the Wi-Fi query itself failed.
	SentinelWifiError = "wifi_error"

	// SentinelCellUnavailable is reported when no cellular modem is configured.
	SentinelCellUnavailable = "cell_unavailable"
	// SentinelCellError is reported when the cellular query itself failed.
	SentinelCellError = "cell_error"
)

// GeoSnapshot is one immutable capture of location and network context.
// The Digest field is computed at construction by New and never recomputed;
// treat the record as read-only thereafter.
type GeoSnapshot struct {
	// ID uniquely identifies the snapshot. It is not part of the digested
	// content; the digest covers only the captured readings.
	ID string `json:"id" yaml:"id"`

	// Latitude and Longitude are the last-known position in decimal degrees,
	// 0.0 when no fix was available.
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`

	// Accuracy is the horizontal accuracy radius in meters, 0.0 when unknown.
	Accuracy float64 `json:"accuracy" yaml:"accuracy"`

	// Timestamp is the fix time in epoch milliseconds, or the capture time
	// when no fix was available.
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`

	// Provider names the location source ("gps", "network"), or "unknown".
	Provider string `json:"provider" yaml:"provider"`

	// WifiInfo is "SSID:<ssid>,BSSID:<bssid>" or a wifi sentinel.
	WifiInfo string `json:"wifiInfo" yaml:"wifiInfo"`

	// CellInfo is "cells:<count>" or a cell sentinel.
	CellInfo string `json:"cellInfo" yaml:"cellInfo"`

	// Digest is the lowercase hex SHA-512 over the seven fields above.
	Digest string `json:"digest" yaml:"digest"`
}

// Fields groups the raw readings used to construct a GeoSnapshot.
type Fields struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Timestamp int64
	Provider  string
	WifiInfo  string
	CellInfo  string
}

// New constructs a GeoSnapshot from the given readings and computes its
// digest. The returned record should not be mutated.
func New(f Fields) *GeoSnapshot {
	s := &GeoSnapshot{
		ID:        uuid.New().String(),
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		Accuracy:  f.Accuracy,
		Timestamp: f.Timestamp,
		Provider:  f.Provider,
		WifiInfo:  f.WifiInfo,
		CellInfo:  f.CellInfo,
	}
	s.Digest = ComputeDigest(f)
	return s
}

// NewUnavailable constructs a snapshot with every reading at its sentinel
// default and the timestamp set to now. This is the record produced when
// every subsystem query degrades.
func NewUnavailable() *GeoSnapshot {
	return New(Fields{
		Timestamp: time.Now().UnixMilli(),
		Provider:  ProviderUnknown,
		WifiInfo:  SentinelWifiUnavailable,
		CellInfo:  SentinelCellUnavailable,
	})
}

// Verify recomputes the digest over the snapshot's fields and reports
// whether it matches the stored Digest.
func (s *GeoSnapshot) Verify() bool {
	return s.Digest == ComputeDigest(Fields{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Accuracy:  s.Accuracy,
		Timestamp: s.Timestamp,
		Provider:  s.Provider,
		WifiInfo:  s.WifiInfo,
		CellInfo:  s.CellInfo,
	})
}

// Time returns the snapshot timestamp as a time.Time in UTC.
func (s *GeoSnapshot) Time() time.Time {
	return time.UnixMilli(s.Timestamp).UTC()
}

// HasFix reports whether the snapshot carries a real location fix rather
// than sentinel defaults.
func (s *GeoSnapshot) HasFix() bool {
	return s.Provider != ProviderUnknown && s.Provider != ""
}
