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

package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geowitness/geowitness/pkg/probe"
)

type stubSource struct {
	fix    *probe.Fix
	err    error
	called bool
}

func (s *stubSource) LastKnown(ctx context.Context) (*probe.Fix, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.fix, nil
}

func TestChainFirstSourceWins(t *testing.T) {
	gps := &stubSource{fix: &probe.Fix{Latitude: 1, Longitude: 2, Provider: probe.ProviderGPS, Time: time.Now()}}
	network := &stubSource{fix: &probe.Fix{Latitude: 9, Longitude: 9, Provider: probe.ProviderNetwork, Time: time.Now()}}

	fix, err := NewChain(gps, network).LastKnown(context.Background())
	if err != nil {
		t.Fatalf("LastKnown() error = %v", err)
	}
	if fix.Provider != probe.ProviderGPS {
		t.Errorf("provider = %q, want %q", fix.Provider, probe.ProviderGPS)
	}
	if network.called {
		t.Error("fallback source should not be queried when primary succeeds")
	}
}

func TestChainFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		gpsErr error
	}{
		{"primary unavailable", probe.ErrUnavailable},
		{"primary failed", errors.New("serial read error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gps := &stubSource{err: tt.gpsErr}
			network := &stubSource{fix: &probe.Fix{Latitude: 3, Longitude: 4, Provider: probe.ProviderNetwork, Time: time.Now()}}

			fix, err := NewChain(gps, network).LastKnown(context.Background())
			if err != nil {
				t.Fatalf("LastKnown() error = %v", err)
			}
			if fix.Provider != probe.ProviderNetwork {
				t.Errorf("provider = %q, want %q", fix.Provider, probe.ProviderNetwork)
			}
		})
	}
}

func TestChainAllUnavailable(t *testing.T) {
	chain := NewChain(&stubSource{err: probe.ErrUnavailable}, &stubSource{err: errors.New("lookup failed")})

	_, err := chain.LastKnown(context.Background())
	if !errors.Is(err, probe.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestChainEmpty(t *testing.T) {
	_, err := NewChain().LastKnown(context.Background())
	if !errors.Is(err, probe.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestChainContextCanceled(t *testing.T) {
	gps := &stubSource{err: context.Canceled}
	network := &stubSource{fix: &probe.Fix{Provider: probe.ProviderNetwork}}

	_, err := NewChain(gps, network).LastKnown(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if network.called {
		t.Error("cancellation must not fall through to the next source")
	}
}

func TestGeoIPUnconfigured(t *testing.T) {
	g := &GeoIP{}
	_, err := g.LastKnown(context.Background())
	if !errors.Is(err, probe.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestGeoIPMissingDatabase(t *testing.T) {
	g := &GeoIP{DBPath: "/nonexistent/GeoLite2-City.mmdb"}
	_, err := g.LastKnown(context.Background())
	if !errors.Is(err, probe.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable for missing mmdb", err)
	}
}
