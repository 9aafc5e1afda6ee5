// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package server implements the pyvolt measurement HTTP API: report
// retrieval and live telemetry ingestion over a shared measurement
// session.
//
// # Architecture
//
// The server wraps a single measurement Session (an assembled Set plus
// its noise model) behind a small HTTP surface:
//
//   - Measurement report serving with optional canonical ordering
//   - Telemetry batch ingestion with bounds checking
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking for distributed tracing
//   - Panic recovery for resilience
//   - Graceful shutdown handling
//   - Health and readiness probes, Prometheus metrics
//
// # Usage
//
// Basic server startup:
//
//	set, model, err := assembler.BuildSet(ctx, inputs, noise.ModeField, noise.DistributionNormal, 0)
//	if err != nil {
//	    return err
//	}
//
//	srv, err := server.New(
//	    server.WithName("pyvoltd"),
//	    server.WithVersion(version.Build),
//	    server.WithSession(server.NewSession(set, model, version.Build)),
//	)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
//
// # API Endpoints
//
// GET /v1/report - Current measurement report
//
//	Query parameters:
//	  - sorted: true/false - order records canonically for the estimator
//	    (default: false)
//
//	Example:
//	  curl "http://localhost:8080/v1/report?sorted=true"
//
// POST /v1/telemetry - Apply a batch of telemetry samples
//
//	Body: JSON array of samples:
//	  [{"device": "n1", "kind": "Vmag", "value": 1.02, "perUnit": true}]
//
//	Response: application outcome counts and the per-unit drift the
//	batch produced:
//	  {"received": 1, "applied": 1, "rejected": 0, "unmatched": 0,
//	   "filtered": 0, "maxDrift": 0.02}
//
// GET /healthz - Health check (liveness)
//
//	Always returns 200 OK with {"status": "healthy", "timestamp": "..."}
//
// GET /readyz - Readiness check
//
//	Returns 200 OK when ready, 503 until a session is attached and after
//	shutdown begins.
//
// GET /version - Build and schema version
//
// GET /metrics - Prometheus metrics
//
// # Observability
//
// Request ID Tracking:
//
//	All requests accept an optional X-Request-Id header (UUID format).
//	If not provided, the server generates one automatically.
//	The request ID is returned in the X-Request-Id response header
//	and included in all error responses for tracing.
//
// Schema Version:
//
//	API responses carry the served schema version:
//	  X-API-Version: pyvolt.sogno.energy/v1alpha1
//
// Rate Limiting:
//
//	Response headers indicate rate limit status:
//	  X-RateLimit-Limit: Total requests allowed per window
//	  X-RateLimit-Remaining: Requests remaining in current window
//	  X-RateLimit-Reset: Unix timestamp when window resets
//
//	When rate limited, returns 429 with Retry-After header.
//
// # Error Handling
//
// All errors return a consistent JSON structure:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "Invalid request body",
//	  "details": {"error": "..."},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": false
//	}
//
// Error codes:
//   - INVALID_REQUEST: Malformed or oversized payload (400)
//   - INVALID_ARGUMENT: Invalid query parameter (400)
//   - METHOD_NOT_ALLOWED: Wrong HTTP method (405)
//   - RATE_LIMIT_EXCEEDED: Too many requests (429)
//   - SERVICE_UNAVAILABLE: No session attached (503)
//   - TIMEOUT: Batch application exceeded its deadline (504)
//   - INTERNAL_ERROR: Server error (500)
//
// # Configuration
//
// Environment variables override defaults:
//
//	PORT                      HTTP port (default 8080)
//	RATE_LIMIT                Requests per second (default 100)
//	RATE_LIMIT_BURST          Burst size (default 200)
//	SHUTDOWN_TIMEOUT_SECONDS  Graceful shutdown window (default 30)
//
// # References
//
//   - Rate limiting: https://pkg.go.dev/golang.org/x/time/rate
//   - UUID generation: https://pkg.go.dev/github.com/google/uuid
//   - Prometheus client: https://pkg.go.dev/github.com/prometheus/client_golang/prometheus
package server
