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
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/coverage/replay"
	"seehuhn.de/go/coverage/testcases"
)

// newTestSession creates a session with all frames of a test case loaded.
func newTestSession(tc testcases.TestCase) (*Session, error) {
	cfg := DefaultConfig()
	cfg.Width = tc.Width
	cfg.Height = tc.Height
	cfg.Quad = tc.Quad
	if tc.Region != nil {
		c, e := tc.Region[0], tc.Region[1]
		cfg.Region = &Region{
			Center: [3]float64{c.X, c.Y, c.Z},
			Extent: [3]float64{e.X, e.Y, e.Z},
		}
	}
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	s.Logger = slog.New(slog.DiscardHandler)
	if err := s.AddFrames(tc.Frames); err != nil {
		return nil, err
	}
	return s, nil
}

func TestScenes(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				s, err := newTestSession(tc)
				require.NoError(t, err)
				require.NoError(t, s.Replay(context.Background()))

				report := s.Report()
				for _, e := range report.Entries {
					r := e.Ratio()
					if e.Total > 0 && (r < 0 || r > 1) {
						t.Errorf("%s: ratio %g out of range", e.Name, r)
					}
				}
				for name, want := range tc.Want {
					o := s.Object(name)
					require.NotNil(t, o, "object %q", name)
					c, total := o.Points()
					r := ratio(c, total)
					if !want.Contains(r) {
						t.Errorf("%s: coverage %d/%d = %g, want in [%g, %g]",
							name, c, total, r, want.Lo, want.Hi)
					}
				}

				if t.Failed() {
					_ = os.MkdirAll("debug", 0o755)
					name := filepath.Join("debug", category+"_"+tc.Name+".pdf")
					if err := WriteAtlasPDF(name, s.Objects()); err != nil {
						t.Logf("cannot write atlas: %v", err)
					}
				}
			})
		}
	}
}

// TestPrecisionOffset checks that moving a scene far away from the origin
// does not change the result, up to rounding at pixel boundaries.
func TestPrecisionOffset(t *testing.T) {
	find := func(category, name string) testcases.TestCase {
		for _, tc := range testcases.All[category] {
			if tc.Name == name {
				return tc
			}
		}
		t.Fatalf("missing test case %s_%s", category, name)
		return testcases.TestCase{}
	}

	var points [2][2]int
	for k, tc := range []testcases.TestCase{
		find("basic", "cube_front"),
		find("precision", "large_offset"),
	} {
		s, err := newTestSession(tc)
		require.NoError(t, err)
		require.NoError(t, s.Replay(context.Background()))
		c, total := s.Object("cube").Points()
		points[k] = [2]int{c, total}
	}
	assert.Equal(t, points[0][1], points[1][1])
	assert.InDelta(t, points[0][0], points[1][0], 2)
}

const cubeLog = `TimeStamp: 0.0
mainCamera
(0, 0, -5)
(0, 0, 0, 1)
cube
(0, 0, 0)
(1, 1, 1)
(0, 0, 0, 1)
True
`

func TestRunCube(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "session.log")
	reportPath := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(logPath, []byte(cubeLog), 0o644))

	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Height = 200
	s, err := Run(context.Background(), cfg, logPath, reportPath)
	require.NoError(t, err)

	cube := s.Object("cube")
	require.NotNil(t, cube)
	assert.Equal(t, 400, cube.Faces[NegZ].CoveredPoints())
	assert.Equal(t, 0, cube.Faces[PosZ].CoveredPoints())

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	c, total := cube.Points()
	want := fmt.Sprintf("cube\t%s", formatRatio(float64(c)/float64(total)))
	assert.Equal(t, want, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Overall Coverage:\t"))
	assert.Equal(t, strings.TrimPrefix(lines[0], "cube"), strings.TrimPrefix(lines[1], "Overall Coverage:"))
}

func TestLoadErrors(t *testing.T) {
	s, err := NewSession(nil)
	require.NoError(t, err)
	s.Logger = slog.New(slog.DiscardHandler)

	err = s.Load(strings.NewReader("cube\n(0, 0, 0)\n(1, 1, 1)\n-\n-\n"))
	assert.ErrorIs(t, err, replay.ErrMissingCamera)
	var perr *replay.ParseError
	if assert.ErrorAs(t, err, &perr) {
		assert.Equal(t, 1, perr.Line)
	}

	err = s.Load(strings.NewReader("TimeStamp: 1\n\n"))
	assert.ErrorIs(t, err, ErrNoFrames)

	assert.ErrorIs(t, s.Replay(context.Background()), ErrNoFrames)

	_, err = NewSession(&Config{})
	assert.Error(t, err)
}

func TestObjectTooLarge(t *testing.T) {
	frames := []replay.Frame{
		{
			Line:   1,
			Camera: replay.Pose{Position: r3Vec(0, 0, -5), Rotation: identityQuat},
			Objects: []replay.Record{
				{Name: "cube", Extent: r3Vec(1, 1, 1)},
				{Name: "world", Extent: r3Vec(1e9, 1e9, 1e9)},
			},
		},
	}
	s, err := NewSession(nil)
	require.NoError(t, err)
	s.Logger = slog.New(slog.DiscardHandler)
	err = s.AddFrames(frames)
	assert.ErrorIs(t, err, ErrObjectTooLarge)
	assert.Contains(t, err.Error(), "world")

	// the limit is inclusive
	assert.Equal(t, 2400.0, CellCount(r3Vec(1, 1, 1), 0.1))
	cube := []replay.Frame{frames[0]}
	cube[0].Objects = cube[0].Objects[:1]
	for _, limit := range []int{2399, 2400} {
		cfg := DefaultConfig()
		cfg.MaxObjectCells = limit
		s, err := NewSession(cfg)
		require.NoError(t, err)
		s.Logger = slog.New(slog.DiscardHandler)
		err = s.AddFrames(cube)
		if limit < 2400 {
			assert.ErrorIs(t, err, ErrObjectTooLarge)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestReplayCancel(t *testing.T) {
	s, err := newTestSession(testcases.All["orbit"][0])
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Replay(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.Timeline())
}

func TestTimeline(t *testing.T) {
	tc := testcases.All["orbit"][0]
	s, err := newTestSession(tc)
	require.NoError(t, err)
	require.NoError(t, s.Replay(context.Background()))

	timeline := s.Timeline()
	require.Len(t, timeline, len(tc.Frames))

	// a second replay would count every frame twice
	assert.ErrorIs(t, s.Replay(context.Background()), ErrReplayed)
	assert.Len(t, s.Timeline(), len(tc.Frames))

	for i, sample := range timeline {
		assert.Equal(t, i, sample.Frame)
		assert.Equal(t, 2400, sample.Total)
		if i > 0 {
			assert.GreaterOrEqual(t, sample.Covered, timeline[i-1].Covered)
		}
	}

	dir := t.TempDir()
	plotPath := filepath.Join(dir, "timeline.png")
	require.NoError(t, WriteTimelinePlot(plotPath, timeline))
	atlasPath := filepath.Join(dir, "atlas.pdf")
	require.NoError(t, WriteAtlasPDF(atlasPath, s.Objects()))

	for _, name := range []string{plotPath, atlasPath} {
		info, err := os.Stat(name)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	assert.Error(t, WriteTimelinePlot(plotPath, nil))
	assert.Error(t, WriteAtlasPDF(atlasPath, nil))
}

func TestDebugImages(t *testing.T) {
	dir := t.TempDir()

	frames := testcases.All["orbit"][2].Frames // four frames
	cfg := DefaultConfig()
	cfg.Width = 600
	cfg.Height = 600
	cfg.DebugDir = filepath.Join(dir, "frames")
	cfg.DebugEvery = 2
	s, err := NewSession(cfg)
	require.NoError(t, err)
	s.Logger = slog.New(slog.DiscardHandler)
	require.NoError(t, s.AddFrames(frames))
	require.NoError(t, s.Replay(context.Background()))

	files, err := filepath.Glob(filepath.Join(cfg.DebugDir, "*.png"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(cfg.DebugDir, "frame_00000.png"),
		filepath.Join(cfg.DebugDir, "frame_00002.png"),
	}, files)
}

// TestDynamicObjects checks that dynamic objects are excluded from the
// dead area computation and follow their recorded positions.
func TestDynamicObjects(t *testing.T) {
	frames := []replay.Frame{
		{
			Camera: replay.Pose{Position: r3Vec(0, 0, -5), Rotation: identityQuat},
			Objects: []replay.Record{
				{Name: "table", Position: r3Vec(0, 0, 0), Extent: r3Vec(1, 1, 1)},
				{Name: "ball", Position: r3Vec(0, 0, 0), Extent: r3Vec(0.5, 0.5, 0.5)},
			},
		},
		{
			Camera: replay.Pose{Position: r3Vec(0, 0, -5), Rotation: identityQuat},
			Objects: []replay.Record{
				{Name: "ball", Position: r3Vec(0, 0, -3), Extent: r3Vec(0.5, 0.5, 0.5)},
			},
		},
	}

	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Height = 200
	cfg.Dynamic = []string{"ball"}
	s, err := NewSession(cfg)
	require.NoError(t, err)
	s.Logger = slog.New(slog.DiscardHandler)
	require.NoError(t, s.AddFrames(frames))
	require.NoError(t, s.Replay(context.Background()))

	table, ball := s.Object("table"), s.Object("ball")
	assert.True(t, table.Static)
	assert.False(t, ball.Static)
	assert.Equal(t, r3Vec(0, 0, -3), ball.Center())

	// the ball started inside the table, but is not static and kills no
	// cells
	_, total := table.Points()
	assert.Equal(t, 2400, total)
	_, total = ball.Points()
	assert.Equal(t, 600, total)

	// in the second frame the ball is in front of the table
	c, _ := ball.Points()
	assert.Greater(t, c, 0)

	assert.Equal(t, []string{"table", "ball"}, []string{s.Objects()[0].Name, s.Objects()[1].Name})
	assert.Error(t, s.AddFrames(frames), "frames after the pre-pass")
}
