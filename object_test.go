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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObject(t *testing.T) {
	o := NewObject("crate", r3Vec(1, 2, 3), r3Vec(-1, 0.5, 2), 0.1)

	assert.Equal(t, r3Vec(1, 0.5, 2), o.Extent())
	assert.True(t, o.Static)

	wantSize := map[Side][2]int{
		NegX: {10, 40}, PosX: {10, 40},
		NegY: {20, 40}, PosY: {20, 40},
		NegZ: {20, 10}, PosZ: {20, 10},
	}
	for s, f := range o.Faces {
		side := Side(s)
		nA, nB := f.Size()
		assert.Equal(t, wantSize[side], [2]int{nA, nB}, "side %s", side)
		assert.Equal(t, side.Axis(), f.Normal, "side %s", side)
	}

	covered, total := o.Points()
	assert.Equal(t, 0, covered)
	assert.Equal(t, 2*(400+800+200), total)

	box := o.Box()
	assert.Equal(t, r3Vec(0, 1.5, 1), box.Min)
	assert.Equal(t, r3Vec(2, 2.5, 5), box.Max)
}

func TestCellCount(t *testing.T) {
	o := NewObject("crate", r3Vec(0, 0, 0), r3Vec(-1, 0.5, 2), 0.1)
	_, total := o.Points()
	assert.Equal(t, float64(total), CellCount(r3Vec(-1, 0.5, 2), 0.1))

	assert.Equal(t, 0.0, CellCount(r3Vec(1, 0, 0), 0.1))
	assert.Equal(t, 800.0, CellCount(r3Vec(math.NaN(), 1, 1), 0.1))
	assert.True(t, math.IsInf(CellCount(r3Vec(math.Inf(1), 0, 0), 0.1), 1))
	assert.Greater(t, CellCount(r3Vec(1e9, 1e9, 1e9), 0.1), 1e20)
}

func TestObjectReposition(t *testing.T) {
	const epsilon = 1e-12

	o := NewObject("door", r3Vec(0, 0, 0), r3Vec(1, 1, 1), 0.1)
	o.Faces[NegZ].cells[0] = Covered

	o.Reposition(r3Vec(5, 0, 0), identityQuat)
	assert.Equal(t, r3Vec(5, 0, 0), o.Center())
	assert.Equal(t, Covered, o.Faces[NegZ].State(0, 0), "coverage is kept")

	p := o.Faces[NegZ].WorldPos(0, 0)
	assert.InDelta(t, 4.05, p.X, epsilon)
	assert.InDelta(t, -0.95, p.Y, epsilon)
	assert.InDelta(t, -1, p.Z, epsilon)
}

// TestOutOfScope checks the asymmetric slack: a face is excluded when it
// lies beyond the region on its own side, or more than the view distance
// beyond the opposite side.
func TestOutOfScope(t *testing.T) {
	regionCenter := r3Vec(0, 0, 0)
	regionExtent := r3Vec(10, 10, 10)
	const viewDistance = 5

	tests := []struct {
		name    string
		z       float64
		outNegZ bool
		outPosZ bool
	}{
		{"inside", 0, false, false},
		{"beyond +z", 12, false, true},   // +Z face at 13
		{"far beyond +z", 17, true, true}, // -Z face at 16 > 10+5
		{"beyond -z", -12, true, false},  // -Z face at -13
		{"far beyond -z", -17, true, true},
		{"straddling", 10, false, true}, // +Z face at 11
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := NewObject("crate", r3Vec(0, 0, tc.z), r3Vec(1, 1, 1), 0.1)
			o.ComputeOutOfScope(regionCenter, regionExtent, viewDistance)
			assert.Equal(t, tc.outNegZ, o.Faces[NegZ].OutOfScope(), "-Z")
			assert.Equal(t, tc.outPosZ, o.Faces[PosZ].OutOfScope(), "+Z")
			for _, s := range []Side{NegX, PosX, NegY, PosY} {
				assert.False(t, o.Faces[s].OutOfScope(), "side %s", s)
			}
		})
	}

	o := NewObject("crate", r3Vec(0, 0, 12), r3Vec(1, 1, 1), 0.1)
	o.ComputeOutOfScope(regionCenter, regionExtent, viewDistance)
	_, total := o.Points()
	assert.Equal(t, 2000, total)
}

func TestComputeDeadAreas(t *testing.T) {
	lower := NewObject("lower", r3Vec(0, 0, 0), r3Vec(1, 1, 1), 0.1)
	upper := NewObject("upper", r3Vec(0, 2, 0), r3Vec(1, 1, 1), 0.1)
	apart := NewObject("apart", r3Vec(10, 0, 0), r3Vec(1, 1, 1), 0.1)

	// the +Y face, plus the top row of each side face
	require.Equal(t, 400+4*20, lower.ComputeDeadAreas(upper))
	assert.Equal(t, 0, lower.ComputeDeadAreas(upper))
	assert.Equal(t, 0, lower.ComputeDeadAreas(apart))

	_, total := lower.Points()
	assert.Equal(t, 2400-480, total)
	assert.Equal(t, 0, lower.Faces[PosY].TotalPoints())
	assert.Equal(t, Dead, lower.Faces[NegZ].State(5, 19))
	assert.Equal(t, Uncovered, lower.Faces[NegZ].State(5, 18))
}

func TestObjectCoverage(t *testing.T) {
	cam := NewCamera(60, 1)
	cam.SetPose(r3Vec(0, 0, -5), identityQuat)
	buf := NewPixelBuffer(200, 200, 344)

	o := NewObject("cube", r3Vec(0, 0, 0), r3Vec(1, 1, 1), 0.1)
	o.CheckCoverage(cam, buf)
	buf.Resolve()

	assert.Equal(t, 400, o.Faces[NegZ].CoveredPoints())
	assert.Equal(t, 0, o.Faces[PosZ].CoveredPoints())

	covered, total := o.Points()
	assert.Equal(t, 2400, total)
	assert.GreaterOrEqual(t, covered, 400)
	assert.Less(t, covered, 2400/3)
}
