// Package api wires the pyvoltd daemon: environment configuration, session
// assembly, and the pkg/server lifecycle.
//
// This package acts as a thin wrapper around the reusable pkg/server
// package. At startup it assembles one measurement session from the
// configured grid, power-flow result, and measurement plan files, then
// serves it until the process receives SIGINT or SIGTERM.
//
// # Usage
//
// To start the daemon:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/martinmoraga/pyvolt/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The api layer is responsible for:
//   - Configuring structured logging with daemon name and build version
//   - Assembling the measurement session from the input files
//   - systemd readiness and watchdog notification
//   - Delegating server lifecycle management to pkg/server
//
// The pkg/server package handles:
//   - HTTP server setup and graceful shutdown
//   - Middleware (rate limiting, logging, metrics, panic recovery)
//   - Health and readiness endpoints
//   - Prometheus metrics
//
// # Configuration
//
// Input files (required):
//   - PYVOLT_GRID: grid topology document
//   - PYVOLT_RESULTS: power-flow results document
//   - PYVOLT_PLAN: measurement plan document
//
// Noise model (optional; the daemon defaults to field mode so telemetry
// drives the values):
//   - PYVOLT_MODE: field or simulation
//   - PYVOLT_DISTRIBUTION: normal or uniform
//   - PYVOLT_SEED: generator seed (unsigned integer)
//
// Server (optional):
//   - PORT: HTTP server port (default: 8080)
//   - RATE_LIMIT / RATE_LIMIT_BURST: token bucket settings
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown window
//   - LOG_LEVEL: debug, info, warn, error
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/martinmoraga/pyvolt/pkg/version.Build=v1.0.0'"
//
// # systemd
//
// Under Type=notify units the daemon signals READY=1 once the session is
// assembled and the server is starting, STOPPING=1 on the way down, and
// pets the watchdog at half the WatchdogSec interval when one is set.
package api
