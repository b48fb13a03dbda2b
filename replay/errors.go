// seehuhn.de/go/coverage - visible surface coverage estimation
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package replay

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCamera is reported for object records which appear before
	// the first camera pose of the log.
	ErrMissingCamera = errors.New("no camera pose")

	// ErrTruncated is reported when the log ends inside a record.
	ErrTruncated = errors.New("truncated record")

	errNotTuple   = errors.New("expected parenthesised tuple")
	errFieldCount = errors.New("wrong number of components")
)

// ParseError describes a malformed log line.
type ParseError struct {
	Line int    // 1-based line number
	Text string // offending line, whitespace trimmed
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
