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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"seehuhn.de/go/coverage/replay"
)

var (
	// ErrNoFrames is returned when a session log contains no frames.
	ErrNoFrames = errors.New("session log contains no frames")

	// ErrObjectTooLarge is returned when an object would need more face
	// grid cells than Config.MaxObjectCells allows.
	ErrObjectTooLarge = errors.New("object too large")

	// ErrReplayed is returned when Replay is called a second time.
	ErrReplayed = errors.New("session already replayed")
)

// Sample records the cumulative coverage after one frame.
type Sample struct {
	Frame          int
	Covered, Total int
}

// Session replays a recorded session log and accumulates the coverage of
// all tracked objects.  The session exclusively owns its pixel buffer and
// face grids.
//
// A Session is not safe for concurrent use.
type Session struct {
	// Logger receives progress messages.  It defaults to slog.Default().
	Logger *slog.Logger

	cfg    *Config
	id     uuid.UUID
	camera *Camera
	buf    *PixelBuffer

	frames   []replay.Frame
	objects  []*Object
	byName   map[string]*Object
	dynamic  map[string]bool
	prepared bool
	replayed bool
	timeline []Sample
}

// NewSession creates an empty session.
func NewSession(cfg *Config) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &Session{
		Logger:  slog.Default(),
		cfg:     cfg,
		id:      uuid.New(),
		camera:  NewCamera(cfg.FieldOfView, float64(cfg.Width)/float64(cfg.Height)),
		buf:     NewPixelBuffer(cfg.Width, cfg.Height, cfg.ViewDistance),
		byName:  make(map[string]*Object),
		dynamic: make(map[string]bool),
	}
	for _, name := range cfg.Dynamic {
		s.dynamic[name] = true
	}
	return s, nil
}

// ID returns the random identifier of this run.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Objects returns the tracked objects in order of first sighting.
func (s *Session) Objects() []*Object {
	return s.objects
}

// Object returns the tracked object with the given name, or nil.
func (s *Session) Object(name string) *Object {
	return s.byName[name]
}

// Buffer returns the pixel buffer of the session.
func (s *Session) Buffer() *PixelBuffer {
	return s.buf
}

// Timeline returns the coverage after each replayed frame.
func (s *Session) Timeline() []Sample {
	return s.timeline
}

// LoadFile reads a session log from a file.
func (s *Session) LoadFile(name string) (err error) {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.Load(f)
}

// Load reads a complete session log into memory and registers all objects
// it mentions.  An object is created, with the extent given at that point,
// when its name is seen for the first time.
func (s *Session) Load(r io.Reader) error {
	p := replay.Parser{LegacyQuaternion: s.cfg.LegacyQuaternion}
	frames, err := p.Read(r)
	if err != nil {
		return fmt.Errorf("loading session log: %w", err)
	}
	return s.AddFrames(frames)
}

// AddFrames appends already parsed frames to the session.
func (s *Session) AddFrames(frames []replay.Frame) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if s.prepared {
		return errors.New("frames added after the pre-pass")
	}
	for _, f := range frames {
		for _, rec := range f.Objects {
			if err := s.register(rec); err != nil {
				return fmt.Errorf("line %d: %w", f.Line, err)
			}
		}
	}
	s.frames = append(s.frames, frames...)
	s.Logger.Debug("log loaded",
		"session", s.id, "frames", len(frames), "objects", len(s.objects))
	return nil
}

func (s *Session) register(rec replay.Record) error {
	if _, seen := s.byName[rec.Name]; seen {
		return nil
	}
	if n := CellCount(rec.Extent, s.cfg.Granularity); !(n <= float64(s.cfg.MaxObjectCells)) {
		return fmt.Errorf("%q: %g cells, limit %d: %w",
			rec.Name, n, s.cfg.MaxObjectCells, ErrObjectTooLarge)
	}
	o := NewObject(rec.Name, rec.Position, rec.Extent, s.cfg.Granularity)
	o.Static = !s.dynamic[rec.Name]
	o.SetQuad(s.cfg.Quad)
	s.objects = append(s.objects, o)
	s.byName[rec.Name] = o

	covered, total := o.Points()
	s.Logger.Debug("new object",
		"name", rec.Name, "center", rec.Position, "extent", rec.Extent,
		"points", total, "covered", covered, "static", o.Static)
	return nil
}

// Prepare runs the pre-pass over the static objects: faces outside the
// region of interest are excluded, and face cells inside other static
// objects are marked dead.  Replay calls Prepare if needed.
func (s *Session) Prepare() {
	if s.prepared {
		return
	}
	s.prepared = true

	var static []*Object
	for _, o := range s.objects {
		if o.Static {
			static = append(static, o)
		}
	}

	if s.cfg.Region != nil {
		center, extent := s.cfg.Region.Bounds()
		excluded := 0
		for _, o := range static {
			o.ComputeOutOfScope(center, extent, s.cfg.ViewDistance)
			for _, f := range o.Faces {
				if f.OutOfScope() {
					excluded++
				}
			}
		}
		s.Logger.Info("out-of-scope faces", "session", s.id, "count", excluded)
	}

	dead := 0
	for _, o := range static {
		for _, other := range static {
			if other == o {
				continue
			}
			dead += o.ComputeDeadAreas(other)
		}
	}
	s.Logger.Info("dead cells", "session", s.id, "count", dead)
}

// Replay processes all loaded frames in log order.  For every frame the
// camera and object poses are applied, all faces are rasterized into the
// shared pixel buffer, and the buffer is resolved before the next frame
// starts.  The context is checked between frames.
//
// Coverage accumulates in the face grids, so a session can be replayed
// only once.  Later calls return ErrReplayed.
func (s *Session) Replay(ctx context.Context) error {
	if len(s.frames) == 0 {
		return ErrNoFrames
	}
	if s.replayed {
		return ErrReplayed
	}
	s.replayed = true
	s.Prepare()

	for i, frame := range s.frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		s.replayFrame(frame)

		if s.cfg.DebugDir != "" && i%s.cfg.DebugEvery == 0 {
			name := filepath.Join(s.cfg.DebugDir, fmt.Sprintf("frame_%05d.png", i))
			if err := writeDepthImage(name, s.buf.DepthImage(), debugImageSize); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}

		s.buf.Resolve()

		sample := Sample{Frame: i}
		for _, o := range s.objects {
			c, t := o.Points()
			sample.Covered += c
			sample.Total += t
		}
		s.timeline = append(s.timeline, sample)
		s.Logger.Debug("frame",
			"index", i, "line", frame.Line,
			"covered", sample.Covered, "total", sample.Total)
	}
	return nil
}

// replayFrame applies the poses of a frame and rasterizes all objects.
func (s *Session) replayFrame(frame replay.Frame) {
	s.camera.SetPose(frame.Camera.Position, frame.Camera.Rotation)
	// the log does not record object rotations
	for _, rec := range frame.Objects {
		o := s.byName[rec.Name]
		if o.Center() != rec.Position {
			o.Reposition(rec.Position, replay.Identity)
		}
	}
	for _, o := range s.objects {
		o.CheckCoverage(s.camera, s.buf)
	}
}

// Report summarises the coverage of all objects, in order of first
// sighting.
func (s *Session) Report() *Report {
	r := &Report{}
	for _, o := range s.objects {
		c, t := o.Points()
		r.Entries = append(r.Entries, Entry{Name: o.Name, Covered: c, Total: t})
	}
	return r
}

// Run replays the log in logPath and writes the coverage report to
// reportPath.  If reportPath is "-", the report goes to standard output.
func Run(ctx context.Context, cfg *Config, logPath, reportPath string) (*Session, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("starting session", "session", s.id, "log", logPath)

	if err := s.LoadFile(logPath); err != nil {
		return nil, err
	}
	if err := s.Replay(ctx); err != nil {
		return nil, err
	}

	report := s.Report()
	if reportPath == "-" {
		_, err = report.WriteTo(os.Stdout)
	} else {
		err = report.WriteFile(reportPath)
	}
	if err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	c, t := report.Overall()
	s.Logger.Info("session done",
		"session", s.id, "frames", len(s.frames), "covered", c, "total", t)
	return s, nil
}
