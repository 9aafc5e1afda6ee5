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

// Package version carries the build identity stamped into binaries and
// report headers, plus semantic version parsing and comparison for the
// version strings pyvolt documents and tools exchange.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Build identity. Populated at build time via ldflags:
//
//	-X github.com/martinmoraga/pyvolt/pkg/version.Build=v1.2.3
//	-X github.com/martinmoraga/pyvolt/pkg/version.Commit=4f9c2aa
//	-X github.com/martinmoraga/pyvolt/pkg/version.Date=2026-08-22
var (
	Build  = "dev"
	Commit = "unknown"
	Date   = "unknown"
)

// BuildInfo is the serializable form of the build identity.
type BuildInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`

	// Semantic is the parsed form of Version, when it parses.
	Semantic *Version `json:"semantic,omitempty" yaml:"semantic,omitempty"`
}

// Info returns the build identity of the running binary.
func Info() BuildInfo {
	info := BuildInfo{
		Version: Build,
		Commit:  Commit,
		Date:    Date,
	}
	if v, err := ParseVersion(Build); err == nil {
		info.Semantic = &v
	}
	return info
}

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// Version is a semantic version with flexible precision: one, two, or
// three significant components. Suffixes past the numeric part, like
// "-rc.1" or "+build.7", are preserved in Extras and ignored by the
// comparisons.
type Version struct {
	Major int `json:"major,omitempty" yaml:"major,omitempty"`
	Minor int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Precision indicates how many components are significant (1, 2, or 3)
	Precision int `json:"precision,omitempty" yaml:"precision,omitempty"`

	// Extras stores trailing metadata like "-rc.1" or "+build.7"
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// String renders the version respecting its precision. Extras are not
// included.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return fmt.Sprintf("%d", v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// ParseVersion parses a version string. Supported forms: "1", "1.2",
// "1.2.3", an optional "v" prefix, and trailing metadata after '-' or '+'
// which lands in Extras (e.g. "1.2.0-rc.1").
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	s = strings.TrimPrefix(s, "v")
	var v Version

	// Extras start at the first '-' or '+' that follows a digit, so a
	// leading minus still fails as a negative component.
	mainPart := s
	for i, ch := range s {
		if (ch == '-' || ch == '+') && i > 0 {
			prevCh := s[i-1]
			if prevCh >= '0' && prevCh <= '9' {
				mainPart = s[:i]
				v.Extras = s[i:]
				break
			}
		}
	}

	parts := strings.Split(mainPart, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if num < 0 {
			return Version{}, fmt.Errorf("%w: %d", ErrNegativeComponent, num)
		}

		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		}
	}

	v.Precision = len(parts)
	return v, nil
}

// EqualsOrNewer returns true if v is equal to or newer than other.
// Comparison runs up to the precision of v, so Version{Major:1, Minor:2,
// Precision:2} accepts any 1.2.x.
func (v Version) EqualsOrNewer(other Version) bool {
	if v.Major > other.Major {
		return true
	}
	if v.Major < other.Major {
		return false
	}
	if v.Precision == 1 {
		return true
	}

	if v.Minor > other.Minor {
		return true
	}
	if v.Minor < other.Minor {
		return false
	}
	if v.Precision == 2 {
		return true
	}

	return v.Patch >= other.Patch
}
