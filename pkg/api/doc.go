// Package api provides the HTTP API layer for the geowitness daemon.
//
// This package acts as a thin wrapper around the reusable pkg/server
// package, configuring it with the snapshot routes. It exposes on-demand
// capture, custody ledger listing, and record verification over REST.
//
// # Usage
//
// To start the API server:
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    ...
//	}
//	if err := api.Serve(cfg); err != nil {
//	    log.Fatalf("server error: %v", err)
//	}
//
// # Endpoints
//
//   - POST /v1/snapshots: capture a snapshot now, append it to the custody
//     ledger, and return the recorded entry
//   - GET /v1/snapshots: list custody ledger entries (limit query param)
//   - GET /v1/snapshots/{id}/verify: re-verify one recorded snapshot
//   - GET /v1/ledger/verify: walk and verify the whole custody chain
//
// The pkg/server package handles middleware (rate limiting, logging,
// metrics, panic recovery), health and readiness endpoints, and graceful
// shutdown with systemd notification.
package api
