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
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteTimelinePlot saves a plot of the overall coverage after each frame.
// The image format is chosen by the file extension (png, svg, pdf, ...).
func WriteTimelinePlot(path string, timeline []Sample) error {
	if len(timeline) == 0 {
		return errors.New("timeline: no frames")
	}

	pts := make(plotter.XYs, 0, len(timeline))
	for _, s := range timeline {
		if s.Total == 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(s.Frame), Y: float64(s.Covered) / float64(s.Total)})
	}
	if len(pts) == 0 {
		return errors.New("timeline: no visible sample points")
	}

	p := plot.New()
	p.Title.Text = "Overall Coverage"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Covered fraction"
	p.Y.Min = 0
	p.Y.Max = 1

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line, plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	return nil
}
