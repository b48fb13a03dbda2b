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

var (
	wall   = box{name: "wall", center: v(0, 0, -2.5), extent: v(2, 2, 0.1)}
	hidden = box{name: "box", center: v(0, 0, 0), extent: v(1, 1, 1)}
)

var occlusionCases = []TestCase{
	// The wall fills most of the view and hides the box completely,
	// whichever object is tested first.
	{
		Name:   "wall_hides_box",
		Frames: []replay.Frame{frame(v(0, 0, -6), v(0, 0, 0), wall, hidden)},
		Width:  200,
		Height: 200,
		Want: map[string]Range{
			"box":  Exactly(0),
			"wall": {Lo: 0.2, Hi: 0.6},
		},
	},
	{
		Name:   "wall_hides_box_reversed",
		Frames: []replay.Frame{frame(v(0, 0, -6), v(0, 0, 0), hidden, wall)},
		Width:  200,
		Height: 200,
		Want:   map[string]Range{"box": Exactly(0)},
	},

	// Seen from the side, the wall no longer hides the box.
	{
		Name: "wall_side_view",
		Frames: []replay.Frame{
			frame(v(0, 0, -6), v(0, 0, 0), wall, hidden),
			frame(v(8, 0, -1), v(0, 0, -1), wall, hidden),
		},
		Width:  200,
		Height: 200,
		Want:   map[string]Range{"box": {Lo: 0.1, Hi: 0.4}},
	},

	// Two boxes stacked on top of each other: the touching faces are
	// dead, and the rest is seen from an orbit.
	{
		Name: "stacked_boxes",
		Frames: orbitFrames(v(0, 1, 0), 7, 3, 24,
			box{name: "lower", center: v(0, 0, 0), extent: v(1, 1, 1)},
			box{name: "upper", center: v(0, 2, 0), extent: v(1, 1, 1)}),
		Width:  300,
		Height: 300,
		Want: map[string]Range{
			"lower": {Lo: 0.5, Hi: 1},
			"upper": {Lo: 0.5, Hi: 1},
		},
	},
}
