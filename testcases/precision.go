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

import "seehuhn.de/go/coverage/replay"

var precisionCases = []TestCase{
	// The cube_front scene, moved far away from the origin.
	{
		Name: "large_offset",
		Frames: []replay.Frame{
			frame(v(10000, 0, 9995), v(10000, 0, 10000),
				box{name: "cube", center: v(10000, 0, 10000), extent: v(1, 1, 1)}),
		},
		Width:  200,
		Height: 200,
		Want:   map[string]Range{"cube": {Lo: 0.15, Hi: 0.35}},
	},

	// Every face of a box smaller than the granularity has a single
	// sample point.  Without neighbours no triangles are filled, so only
	// the far face, directly behind the near one, stays hidden.
	{
		Name: "single_point_faces",
		Frames: []replay.Frame{
			frame(v(0, 0, -1), v(0, 0, 0),
				box{name: "pebble", center: v(0, 0, 0), extent: v(0.05, 0.05, 0.05)}),
		},
		Width:  64,
		Height: 64,
		Want:   map[string]Range{"pebble": Exactly(5.0 / 6)},
	},

	// A box thinner than the flatness threshold is treated as a plane.
	{
		Name: "sheet",
		Frames: []replay.Frame{
			frame(v(0, 0, -4), v(0, 0, 0),
				box{name: "sheet", center: v(0, 0, 0), extent: v(1, 1, 1e-5)}),
		},
		Width:  200,
		Height: 200,
		Want:   map[string]Range{"sheet": {Lo: 0.45, Hi: 0.5}},
	},
}
