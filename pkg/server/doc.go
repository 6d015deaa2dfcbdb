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

// Package server implements the geowitness HTTP API host.
//
// # Architecture
//
// The server is a generic HTTP host: domain handlers are injected through
// Config.Handlers and wrapped with the common middleware chain:
//
//   - Request ID tracking (X-Request-Id, generated when absent)
//   - API version negotiation via the Accept header
//   - Rate limiting using a token bucket (golang.org/x/time/rate)
//   - Panic recovery
//   - Request logging and Prometheus RED metrics
//
// System endpoints (/health, /ready, /version, /metrics) bypass rate limiting.
//
// # Usage
//
//	cfg := server.NewConfig()
//	cfg.Name = "geowitnessd"
//	cfg.Port = 8080
//	cfg.Handlers = map[string]http.HandlerFunc{
//	    "/v1/snapshots": handleSnapshots,
//	}
//	srv := server.New(cfg)
//	if err := srv.Start(ctx); err != nil {
//	    ...
//	}
//
// # Observability
//
// All requests accept an optional X-Request-Id header (UUID format). If not
// provided the server generates one. The request ID is echoed in the
// response header and included in error responses.
//
// Rate limit status is exposed through X-RateLimit-Limit,
// X-RateLimit-Remaining and X-RateLimit-Reset headers; limited requests
// get 429 with Retry-After.
//
// # Error Handling
//
// All errors return a consistent JSON structure:
//
//	{
//	  "code": "RATE_LIMIT_EXCEEDED",
//	  "message": "Rate limit exceeded",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-10T12:00:00Z",
//	  "retryable": true
//	}
package server
