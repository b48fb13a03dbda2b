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
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFaceGrid(t *testing.T) {
	tests := []struct {
		extent     r3.Vec
		normal     Axis
		nA, nB     int
		degenerate bool
	}{
		{r3Vec(1, 0.5, 0), AxisZ, 20, 10, false},
		{r3Vec(0, 1, 2), AxisX, 20, 40, false},
		{r3Vec(3, 0, 0.25), AxisY, 60, 5, false},
		{r3Vec(1, 1e-5, 1), AxisY, 20, 20, false},
		{r3Vec(1, 0.5, 2), AxisY, 20, 40, false}, // thinnest axis
		{r3Vec(0, 0.04, 1), AxisX, 0, 20, true},
		{r3Vec(0, 0, 1), AxisX, 0, 20, true},
	}
	for _, tc := range tests {
		f := NewFace(r3Vec(0, 0, 0), tc.extent, 0.1)
		nA, nB := f.Size()
		assert.Equal(t, tc.normal, f.Normal, "normal of %v", tc.extent)
		assert.Equal(t, tc.nA, nA, "nA of %v", tc.extent)
		assert.Equal(t, tc.nB, nB, "nB of %v", tc.extent)
		assert.Equal(t, tc.degenerate, f.Degenerate(), "degenerate %v", tc.extent)
		assert.Equal(t, nA*nB, f.TotalPoints())
	}
}

func TestFaceWorldPos(t *testing.T) {
	const epsilon = 1e-12

	f := NewFace(r3Vec(1, 2, 3), r3Vec(1, 0.5, 0), 0.1)
	p := f.WorldPos(0, 0)
	assert.InDelta(t, 0.05, p.X, epsilon)
	assert.InDelta(t, 1.55, p.Y, epsilon)
	assert.InDelta(t, 3, p.Z, epsilon)

	p = f.WorldPos(19, 9)
	assert.InDelta(t, 1.95, p.X, epsilon)
	assert.InDelta(t, 2.45, p.Y, epsilon)

	// a quarter turn about +Y, around a pivot one unit behind the face
	f = NewFace(r3Vec(0, 0, -1), r3Vec(1, 0.5, 0), 0.1)
	rot := quat.Number(r3.NewRotation(math.Pi/2, r3Vec(0, 1, 0)))
	f.Reposition(r3Vec(0, 0, -1), rot, r3Vec(0, 0, 0))
	p = f.WorldPos(0, 0)
	assert.InDelta(t, -1, p.X, epsilon)
	assert.InDelta(t, -0.45, p.Y, epsilon)
	assert.InDelta(t, 0.95, p.Z, epsilon)
}

func TestMarkDeadAgainst(t *testing.T) {
	f := NewFace(r3Vec(0, 0, 0), r3Vec(1, 1, 0), 0.1)
	box := r3.Box{Min: r3Vec(-0.5, -0.5, -0.5), Max: r3Vec(0.5, 0.5, 0.5)}

	// the box is inflated by one granularity step: |a|, |b| <= 0.6
	n := f.MarkDeadAgainst(box)
	assert.Equal(t, 12*12, n)
	assert.Equal(t, 400-144, f.TotalPoints())
	assert.Equal(t, Dead, f.State(10, 10))
	assert.Equal(t, Uncovered, f.State(0, 0))

	assert.Equal(t, 0, f.MarkDeadAgainst(box), "cells are only counted once")

	// a box in front of the face does not touch it
	far := r3.Box{Min: r3Vec(-1, -1, 0.2), Max: r3Vec(1, 1, 1)}
	assert.Equal(t, 0, f.MarkDeadAgainst(far))
}

func TestFaceOutOfScope(t *testing.T) {
	f := NewFace(r3Vec(0, 0, 0), r3Vec(1, 1, 0), 0.1)
	cam := NewCamera(60, 1)
	cam.SetPose(r3Vec(0, 0, -3), identityQuat)
	buf := NewPixelBuffer(100, 100, 100)

	f.SetOutOfScope(true)
	assert.Equal(t, 0, f.TotalPoints())
	assert.Equal(t, 0, f.CoveredPoints())

	f.CheckCoverage(cam, buf)
	assert.Equal(t, 0, countDepth(buf))

	f.SetOutOfScope(false)
	f.CheckCoverage(cam, buf)
	buf.Resolve()
	assert.Equal(t, 400, f.TotalPoints())
	assert.Equal(t, 400, f.CoveredPoints())
}

// TestFaceAlwaysOut checks that faces outside the view leave the buffer
// untouched.
func TestFaceAlwaysOut(t *testing.T) {
	cam := NewCamera(60, 1)
	tests := []struct {
		name   string
		center r3.Vec
	}{
		{"right", r3Vec(10, 0, 5)},
		{"left", r3Vec(-10, 0, 5)},
		{"above", r3Vec(0, 10, 5)},
		{"below", r3Vec(0, -10, 5)},
		{"behind", r3Vec(0, 0, -5)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, quad := range []bool{false, true} {
				f := NewFace(tc.center, r3Vec(1, 1, 0), 0.1)
				f.Quad = quad
				nA, nB := f.Size()
				assert.True(t, f.alwaysOut(cam, 0, 0, nA, nB))

				buf := NewPixelBuffer(50, 50, 100)
				f.CheckCoverage(cam, buf)
				assert.Equal(t, 0, countDepth(buf))
			}
		})
	}
}

func TestDeadCellsNotRasterized(t *testing.T) {
	f := NewFace(r3Vec(0, 0, 0), r3Vec(1, 1, 0), 0.1)
	for i := range f.cells {
		f.cells[i] = Dead
	}
	cam := NewCamera(60, 1)
	cam.SetPose(r3Vec(0, 0, -3), identityQuat)
	buf := NewPixelBuffer(100, 100, 100)

	f.CheckCoverage(cam, buf)
	assert.Equal(t, 0, countDepth(buf))
	assert.Equal(t, 0, buf.Owned())
}

// TestQuadEquivalence checks that quad subdivision gives the same
// coverage as testing every sample point, for a face which is partly
// outside the view.
func TestQuadEquivalence(t *testing.T) {
	cam := NewCamera(60, 1)
	from := r3Vec(3, 1, -4)
	cam.SetPose(from, identityQuat)

	var faces [2]*Face
	for k, quad := range []bool{false, true} {
		f := NewFace(r3Vec(0, 0, 0), r3Vec(2, 2, 0), 0.1)
		f.Quad = quad
		buf := NewPixelBuffer(400, 400, 100)
		f.CheckCoverage(cam, buf)
		buf.Resolve()
		faces[k] = f
	}

	covered := faces[0].CoveredPoints()
	require.Greater(t, covered, 0)
	require.Less(t, covered, faces[0].TotalPoints())
	assert.Equal(t, faces[0].cells, faces[1].cells)
}

// TestFaceOcclusion places a small face behind a larger one.
func TestFaceOcclusion(t *testing.T) {
	cam := NewCamera(60, 1)
	cam.SetPose(r3Vec(0, 0, -3), identityQuat)
	buf := NewPixelBuffer(200, 200, 100)

	front := NewFace(r3Vec(0, 0, 0), r3Vec(1, 1, 0), 0.1)
	back := NewFace(r3Vec(0, 0, 1), r3Vec(0.5, 0.5, 0), 0.1)

	// the result must not depend on the order
	for _, order := range [][2]*Face{{front, back}, {back, front}} {
		for _, f := range order {
			f.CheckCoverage(cam, buf)
		}
		buf.Resolve()
	}
	assert.Equal(t, front.TotalPoints(), front.CoveredPoints())
	assert.Equal(t, 0, back.CoveredPoints())
}
