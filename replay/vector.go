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
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ParseVec parses a position line of the form "(x, y, z)".
func ParseVec(s string) (r3.Vec, error) {
	f, err := parseTuple(s, 3)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Vec{X: f[0], Y: f[1], Z: f[2]}, nil
}

// ParseQuat parses a rotation line of the form "(x, y, z, w)".
//
// If legacy is set, the fourth component is ignored and the third one is
// used for both z and w, as early harness builds did.  Logs recorded with
// those builds may depend on this.
func ParseQuat(s string, legacy bool) (quat.Number, error) {
	f, err := parseTuple(s, 4)
	if err != nil {
		return quat.Number{}, err
	}
	if legacy {
		f[3] = f[2]
	}
	return quat.Number{Real: f[3], Imag: f[0], Jmag: f[1], Kmag: f[2]}, nil
}

// parseTuple strips the parentheses and splits on commas.
func parseTuple(s string, n int) ([]float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, errNotTuple
	}
	fields := strings.Split(s[1:len(s)-1], ",")
	if len(fields) != n {
		return nil, fmt.Errorf("%w: expected %d, got %d", errFieldCount, n, len(fields))
	}
	res := make([]float64, n)
	for i, field := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		res[i] = x
	}
	return res, nil
}

// FormatVec formats v in the form accepted by ParseVec.
func FormatVec(v r3.Vec) string {
	return formatTuple(v.X, v.Y, v.Z)
}

// FormatQuat formats q in the form accepted by ParseQuat.
func FormatQuat(q quat.Number) string {
	return formatTuple(q.Imag, q.Jmag, q.Kmag, q.Real)
}

func formatTuple(xs ...float64) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, x := range xs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	b.WriteByte(')')
	return b.String()
}
