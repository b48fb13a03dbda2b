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

// Command export writes the test scenes to JSON, for use by external
// viewers.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/coverage/replay"
	"seehuhn.de/go/coverage/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.TestCases = append(out.TestCases, toJSON(category, tc))
		}
	}

	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name   string                `json:"name"`
	Width  int                   `json:"width"`
	Height int                   `json:"height"`
	Quad   bool                  `json:"quad,omitempty"`
	Region *jsonBox              `json:"region,omitempty"`
	Frames []jsonFrame           `json:"frames"`
	Want   map[string][2]float64 `json:"want,omitempty"`
}

type jsonFrame struct {
	Position []float64    `json:"position"`
	Rotation []float64    `json:"rotation"` // x, y, z, w
	Objects  []jsonObject `json:"objects"`
}

type jsonObject struct {
	Name string `json:"name"`
	jsonBox
}

type jsonBox struct {
	Center []float64 `json:"center"`
	Extent []float64 `json:"extent"`
}

func toJSON(category string, tc testcases.TestCase) jsonTestCase {
	jtc := jsonTestCase{
		Name:   category + "_" + tc.Name,
		Width:  tc.Width,
		Height: tc.Height,
		Quad:   tc.Quad,
	}
	if tc.Region != nil {
		jtc.Region = &jsonBox{Center: vec(tc.Region[0]), Extent: vec(tc.Region[1])}
	}
	for _, f := range tc.Frames {
		jtc.Frames = append(jtc.Frames, frameToJSON(f))
	}
	if len(tc.Want) > 0 {
		jtc.Want = make(map[string][2]float64, len(tc.Want))
		for name, r := range tc.Want {
			jtc.Want[name] = [2]float64{r.Lo, r.Hi}
		}
	}
	return jtc
}

func frameToJSON(f replay.Frame) jsonFrame {
	jf := jsonFrame{
		Position: vec(f.Camera.Position),
		Rotation: rot(f.Camera.Rotation),
	}
	for _, rec := range f.Objects {
		jf.Objects = append(jf.Objects, jsonObject{
			Name:    rec.Name,
			jsonBox: jsonBox{Center: vec(rec.Position), Extent: vec(rec.Extent)},
		})
	}
	return jf
}

func vec(v r3.Vec) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func rot(q quat.Number) []float64 {
	return []float64{q.Imag, q.Jmag, q.Kmag, q.Real}
}
