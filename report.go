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

package coverage

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Entry is the coverage of one tracked object.
type Entry struct {
	Name    string
	Covered int
	Total   int
}

// Ratio returns Covered/Total, or NaN if the object has no visible sample
// points (for example because all of its faces are out of scope).
func (e Entry) Ratio() float64 {
	return ratio(e.Covered, e.Total)
}

// Report is the result of a coverage session.
type Report struct {
	Entries []Entry
}

// Overall returns the sums of covered and total points over all entries.
func (r *Report) Overall() (covered, total int) {
	for _, e := range r.Entries {
		covered += e.Covered
		total += e.Total
	}
	return covered, total
}

// OverallRatio returns the aggregate coverage, sum(covered)/sum(total).
func (r *Report) OverallRatio() float64 {
	return ratio(r.Overall())
}

// WriteTo writes the report as tab-separated text: one "name\tratio" line
// per object, followed by the aggregate line.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, e := range r.Entries {
		k, _ := fmt.Fprintf(bw, "%s\t%s\n", e.Name, formatRatio(e.Ratio()))
		n += int64(k)
	}
	k, _ := fmt.Fprintf(bw, "%s\t%s\n", overallLabel, formatRatio(r.OverallRatio()))
	n += int64(k)
	return n, bw.Flush()
}

// WriteFile writes the report to the named file.
func (r *Report) WriteFile(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = r.WriteTo(f)
	return err
}

func ratio(covered, total int) float64 {
	if total == 0 {
		return math.NaN()
	}
	return float64(covered) / float64(total)
}

// formatRatio uses the shortest representation which round-trips, and
// prints "NaN" for undefined ratios.
func formatRatio(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// overallLabel starts the aggregate line of a report.
const overallLabel = "Overall Coverage:"
