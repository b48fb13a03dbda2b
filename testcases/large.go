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

package testcases

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/coverage/replay"
)

// largeCases contain scenes with many objects or with faces of many
// thousand sample points, to exercise quad subdivision.
var largeCases = []TestCase{
	// A grid of crates seen from a camera circling above.
	{
		Name:   "crate_grid",
		Frames: orbitFrames(v(0, 0, 0), 30, 20, 12, boxGrid(8, 8, 4, 0.8)...),
		Width:  400,
		Height: 300,
		Quad:   true,
	},

	// A large hall: floor, four walls and a pillar.  The camera walks past
	// the pillar.
	{
		Name:   "hall_walk",
		Frames: walk(v(-15, 1.7, -10), v(15, 1.7, -10), 20, hall()...),
		Width:  400,
		Height: 300,
		Quad:   true,
		Want: map[string]Range{
			"pillar": {Lo: 0.15, Hi: 1},
		},
	},
	{
		Name:   "hall_walk_brute_force",
		Frames: walk(v(-15, 1.7, -10), v(15, 1.7, -10), 20, hall()...),
		Width:  400,
		Height: 300,
		Want: map[string]Range{
			"pillar": {Lo: 0.15, Hi: 1},
		},
	},
}

// boxGrid builds a rows×cols grid of cubes with the given spacing and
// half-extent, centred at the origin.
func boxGrid(rows, cols int, spacing, size float64) []box {
	var res []box
	for row := range rows {
		for col := range cols {
			x := (float64(col) - float64(cols-1)/2) * spacing
			z := (float64(row) - float64(rows-1)/2) * spacing
			res = append(res, box{
				name:   fmt.Sprintf("crate_%d_%d", row, col),
				center: v(x, size, z),
				extent: v(size, size, size),
			})
		}
	}
	return res
}

// hall builds a 40×40 room, 5 units high, with a pillar in the middle.
func hall() []box {
	return []box{
		{name: "floor", center: v(0, -0.1, 0), extent: v(20, 0.1, 20)},
		{name: "wall_north", center: v(0, 2.5, 20.1), extent: v(20, 2.5, 0.1)},
		{name: "wall_south", center: v(0, 2.5, -20.1), extent: v(20, 2.5, 0.1)},
		{name: "wall_east", center: v(20.1, 2.5, 0), extent: v(0.1, 2.5, 20)},
		{name: "wall_west", center: v(-20.1, 2.5, 0), extent: v(0.1, 2.5, 20)},
		{name: "pillar", center: v(0, 2.5, 0), extent: v(1, 2.5, 1)},
	}
}

// walk moves the camera in n steps along a straight line, always looking
// at the centre of the pillar.
func walk(from, to r3.Vec, n int, objects ...box) []replay.Frame {
	frames := make([]replay.Frame, n)
	for i := range n {
		t := float64(i) / float64(n-1)
		pos := r3.Add(r3.Scale(1-t, from), r3.Scale(t, to))
		frames[i] = frame(pos, v(0, 2.5, 0), objects...)
	}
	return frames
}
