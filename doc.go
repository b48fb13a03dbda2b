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

// Package coverage estimates how much of the visible surface of a scene
// was seen by a moving camera during a recorded VR session.
//
// Every tracked object is approximated by its axis-aligned bounding box.
// Each of the six box faces is sampled on a regular grid.  For every frame
// of the session log, the face grids are projected into the camera's
// viewport and rasterized into a shared depth buffer; sample points which
// are nearest to the camera at the end of the frame are marked as covered.
// Coverage accumulates over the whole session and is reported per object
// and overall.
package coverage

//go:generate go run ./testcases/genlog
