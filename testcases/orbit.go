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

var orbitCases = []TestCase{
	// The camera circles the cube at head height.  All four sides and
	// most of the top are seen; the bottom stays hidden.
	{
		Name:   "cube_orbit",
		Frames: orbitFrames(v(0, 0, 0), 5, 2, 36, cube),
		Width:  300,
		Height: 300,
		Want:   map[string]Range{"cube": {Lo: 0.6, Hi: 0.95}},
	},
	{
		Name:   "cube_orbit_quad",
		Frames: orbitFrames(v(0, 0, 0), 5, 2, 36, cube),
		Width:  300,
		Height: 300,
		Quad:   true,
		Want:   map[string]Range{"cube": {Lo: 0.6, Hi: 0.95}},
	},

	// A coarse orbit with only four views.
	{
		Name:   "cube_orbit_coarse",
		Frames: orbitFrames(v(0, 0, 0), 5, 2, 4, cube),
		Width:  300,
		Height: 300,
		Want:   map[string]Range{"cube": {Lo: 0.5, Hi: 0.95}},
	},
}
