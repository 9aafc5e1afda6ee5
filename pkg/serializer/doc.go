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

// Package serializer provides encoding and decoding of measurement data in multiple formats.
//
// # Overview
//
// The serializer package handles conversion between measurement data structures and
// various output formats including JSON, YAML, and human-readable tables. It supports
// both encoding (writing data) and decoding (reading data) operations with automatic
// format detection.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, compact representation
//   - Suitable for API responses and programmatic consumption
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - Suitable for configuration files and version control
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flattened key/value text representation
//   - Suitable for terminal/console viewing
//   - Read-only (no deserialization support)
//
// # Core Types
//
// Format: Enum representing output formats (JSON, YAML, Table)
//
// Serializer: Interface for encoding data to output
//
//	type Serializer interface {
//	    Serialize(ctx context.Context, doc any) error
//	}
//
// Reader: Handles decoding data from input sources
//
//	type Reader struct {
//	    format Format
//	    input  io.Reader
//	    closer io.Closer
//	}
//
// # Usage - Encoding
//
// Write to stdout (YAML):
//
//	w := serializer.NewStdoutWriter(serializer.FormatYAML)
//
//	data := map[string]any{"version": "1.0.0", "status": "ok"}
//	if err := w.Serialize(ctx, data); err != nil {
//	    log.Fatal(err)
//	}
//
// Write to a file, falling back to stdout when the path is empty:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "report.json")
//	if closer, ok := w.(serializer.Closer); ok {
//	    defer closer.Close()
//	}
//
//	if err := w.Serialize(ctx, report); err != nil {
//	    log.Fatal(err)
//	}
//
// # Usage - Decoding
//
// Read from file with automatic format detection:
//
//	reader, err := serializer.NewFileReaderAuto("results.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	var results powerflow.Results
//	if err := reader.Deserialize(&results); err != nil {
//	    log.Fatal(err)
//	}
//
// Or load in one call:
//
//	results, err := serializer.FromFile[powerflow.Results]("results.yaml")
//
// Read with custom io.Reader:
//
//	reader, err := serializer.NewReader(serializer.FormatYAML, strings.NewReader(yamlData))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var p plan.Plan
//	if err := reader.Deserialize(&p); err != nil {
//	    log.Fatal(err)
//	}
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
//
// Format detection is automatic when using:
//   - NewFileReaderAuto(path)
//   - FromFile[T](path)
//
// # Table Format
//
// The table format flattens nested structures into dotted keys:
//
//	FIELD                      VALUE
//	-----                      -----
//	Header.Kind                MeasurementReport
//	Mode                       simulation
//	Records.[0].Device         n1
//	Records.[0].Kind           Vmag
//	Records.[0].Value          1.0142
//
// Table format:
//   - Does not support deserialization (read-only)
//   - Best for human viewing in terminals
//
// # Resource Management
//
// Always close readers and file-backed writers:
//
//	reader, err := serializer.NewFileReaderAuto("grid.json")
//	if err != nil {
//	    return err
//	}
//	defer reader.Close()  // Required for file resources
//
// Stdout writers don't require closing but Close() is safe to call.
//
// # Error Handling
//
// Errors are returned when:
//   - Format is unknown or unsupported
//   - File cannot be opened or created
//   - Data cannot be marshaled/unmarshaled
//   - Table format used for deserialization
//
// All errors include context for debugging.
//
// # Integration
//
// Used throughout pyvolt for data I/O:
//   - pkg/cli - Command output formatting
//   - pkg/assembler - Report serialization and input loading
//   - pkg/api - HTTP response encoding
//   - pkg/telemetry - Feed loading
package serializer
