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

package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geowitness/geowitness/pkg/probe"
	"github.com/geowitness/geowitness/pkg/snapshot"
)

type mockLocation struct {
	fix *probe.Fix
	err error
}

func (m *mockLocation) LastKnown(ctx context.Context) (*probe.Fix, error) {
	return m.fix, m.err
}

type mockWifi struct {
	info string
	err  error
}

func (m *mockWifi) Association(ctx context.Context) (string, error) {
	return m.info, m.err
}

type mockCell struct {
	count int
	err   error
}

func (m *mockCell) VisibleCells(ctx context.Context) (int, error) {
	return m.count, m.err
}

type mockFactory struct {
	location probe.LocationProbe
	wifi     probe.WifiProbe
	cell     probe.CellProbe
}

func (m *mockFactory) CreateLocationProbe() probe.LocationProbe {
	if m.location == nil {
		return &mockLocation{err: probe.ErrUnavailable}
	}
	return m.location
}

func (m *mockFactory) CreateWifiProbe() probe.WifiProbe {
	if m.wifi == nil {
		return &mockWifi{err: probe.ErrUnavailable}
	}
	return m.wifi
}

func (m *mockFactory) CreateCellProbe() probe.CellProbe {
	if m.cell == nil {
		return &mockCell{err: probe.ErrUnavailable}
	}
	return m.cell
}

type mockSerializer struct {
	serialized any
	err        error
}

func (m *mockSerializer) Serialize(ctx context.Context, v any) error {
	m.serialized = v
	return m.err
}

func TestCaptureAllProbesAvailable(t *testing.T) {
	fixTime := time.UnixMilli(1700000000000)
	c := &Capturer{
		Factory: &mockFactory{
			location: &mockLocation{fix: &probe.Fix{
				Latitude:  52.52,
				Longitude: 13.405,
				Accuracy:  9.5,
				Time:      fixTime,
				Provider:  probe.ProviderGPS,
			}},
			wifi: &mockWifi{info: "SSID:lab,BSSID:aa:bb:cc:dd:ee:ff"},
			cell: &mockCell{count: 6},
		},
	}

	s := c.Capture(context.Background())

	if s.Latitude != 52.52 || s.Longitude != 13.405 {
		t.Errorf("position = (%v, %v), want (52.52, 13.405)", s.Latitude, s.Longitude)
	}
	if s.Accuracy != 9.5 {
		t.Errorf("accuracy = %v, want 9.5", s.Accuracy)
	}
	if s.Provider != probe.ProviderGPS {
		t.Errorf("provider = %q, want %q", s.Provider, probe.ProviderGPS)
	}
	if s.Timestamp != 1700000000000 {
		t.Errorf("timestamp = %d, want fix time 1700000000000", s.Timestamp)
	}
	if s.WifiInfo != "SSID:lab,BSSID:aa:bb:cc:dd:ee:ff" {
		t.Errorf("wifiInfo = %q", s.WifiInfo)
	}
	if s.CellInfo != "cells:6" {
		t.Errorf("cellInfo = %q, want cells:6", s.CellInfo)
	}
	if !s.Verify() {
		t.Error("captured snapshot must verify")
	}
}

func TestCaptureAllProbesUnavailable(t *testing.T) {
	before := time.Now().UnixMilli()
	c := &Capturer{Factory: &mockFactory{}}

	s := c.Capture(context.Background())
	after := time.Now().UnixMilli()

	if s.Latitude != 0 || s.Longitude != 0 || s.Accuracy != 0 {
		t.Error("position must keep zero defaults without a fix")
	}
	if s.Provider != snapshot.ProviderUnknown {
		t.Errorf("provider = %q, want %q", s.Provider, snapshot.ProviderUnknown)
	}
	if s.WifiInfo != snapshot.SentinelWifiUnavailable {
		t.Errorf("wifiInfo = %q, want %q", s.WifiInfo, snapshot.SentinelWifiUnavailable)
	}
	if s.CellInfo != snapshot.SentinelCellUnavailable {
		t.Errorf("cellInfo = %q, want %q", s.CellInfo, snapshot.SentinelCellUnavailable)
	}
	if s.Timestamp < before || s.Timestamp > after {
		t.Errorf("timestamp %d outside capture window [%d, %d]", s.Timestamp, before, after)
	}
	if !s.Verify() {
		t.Error("all-sentinel snapshot must verify")
	}
}

func TestCaptureProbeErrorsDegradeToSentinels(t *testing.T) {
	c := &Capturer{
		Factory: &mockFactory{
			location: &mockLocation{err: errors.New("serial read failed")},
			wifi:     &mockWifi{err: errors.New("iw crashed")},
			cell:     &mockCell{err: errors.New("modem wedged")},
		},
	}

	s := c.Capture(context.Background())

	if s.Provider != snapshot.ProviderUnknown {
		t.Errorf("provider = %q, want %q", s.Provider, snapshot.ProviderUnknown)
	}
	if s.WifiInfo != snapshot.SentinelWifiError {
		t.Errorf("wifiInfo = %q, want %q", s.WifiInfo, snapshot.SentinelWifiError)
	}
	if s.CellInfo != snapshot.SentinelCellError {
		t.Errorf("cellInfo = %q, want %q", s.CellInfo, snapshot.SentinelCellError)
	}
}

func TestCaptureMixedAvailability(t *testing.T) {
	c := &Capturer{
		Factory: &mockFactory{
			wifi: &mockWifi{info: "SSID:depot,BSSID:11:22:33:44:55:66"},
			cell: &mockCell{err: errors.New("modem wedged")},
		},
	}

	s := c.Capture(context.Background())

	if s.Provider != snapshot.ProviderUnknown {
		t.Error("location unavailable must keep unknown provider")
	}
	if s.WifiInfo != "SSID:depot,BSSID:11:22:33:44:55:66" {
		t.Errorf("wifiInfo = %q", s.WifiInfo)
	}
	if s.CellInfo != snapshot.SentinelCellError {
		t.Errorf("cellInfo = %q, want %q", s.CellInfo, snapshot.SentinelCellError)
	}
}

func TestCaptureDigestDeterminism(t *testing.T) {
	factory := &mockFactory{
		location: &mockLocation{fix: &probe.Fix{
			Latitude: 1, Longitude: 2, Accuracy: 3,
			Time: time.UnixMilli(1700000000000), Provider: probe.ProviderGPS,
		}},
		wifi: &mockWifi{info: "SSID:a,BSSID:b"},
		cell: &mockCell{count: 2},
	}

	a := (&Capturer{Factory: factory}).Capture(context.Background())
	b := (&Capturer{Factory: factory}).Capture(context.Background())

	if a.Digest != b.Digest {
		t.Error("identical readings must produce identical digests")
	}
}

func TestCaptureNilFactory(t *testing.T) {
	c := &Capturer{}

	s := c.Capture(context.Background())

	if c.Factory == nil {
		t.Error("Factory should be set to default when nil")
	}
	if s == nil {
		t.Fatal("Capture must always return a snapshot")
	}
}

func TestRunSerializes(t *testing.T) {
	ser := &mockSerializer{}
	c := &Capturer{Factory: &mockFactory{}, Serializer: ser}

	s, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ser.serialized != s {
		t.Error("serializer must receive the captured snapshot")
	}
}

func TestRunSerializerError(t *testing.T) {
	ser := &mockSerializer{err: errors.New("broker unreachable")}
	c := &Capturer{Factory: &mockFactory{}, Serializer: ser}

	if _, err := c.Run(context.Background()); err == nil {
		t.Error("Run() must surface serializer errors")
	}
}
