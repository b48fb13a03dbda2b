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

// Command genlog writes the synthetic test scenes as session logs, and
// stores the coverage report and atlas for each of them.
// Run from the module root directory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/coverage"
	"seehuhn.de/go/coverage/replay"
	"seehuhn.de/go/coverage/testcases"
)

const outDir = "testdata/scenes"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := generate(tc, name); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			slog.Info("scene written", "name", name, "frames", len(tc.Frames))
		}
	}
}

func generate(tc testcases.TestCase, name string) error {
	logPath := filepath.Join(outDir, name+".log")
	if err := writeLog(logPath, tc.Frames); err != nil {
		return err
	}

	cfg := coverage.DefaultConfig()
	cfg.Width = tc.Width
	cfg.Height = tc.Height
	cfg.Quad = tc.Quad
	if tc.Region != nil {
		c, e := tc.Region[0], tc.Region[1]
		cfg.Region = &coverage.Region{
			Center: [3]float64{c.X, c.Y, c.Z},
			Extent: [3]float64{e.X, e.Y, e.Z},
		}
	}

	s, err := coverage.Run(context.Background(), cfg, logPath, filepath.Join(outDir, name+".txt"))
	if err != nil {
		return err
	}
	return coverage.WriteAtlasPDF(filepath.Join(outDir, name+".pdf"), s.Objects())
}

func writeLog(path string, frames []replay.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := replay.Write(f, frames); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
