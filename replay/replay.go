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

// Package replay reads and writes the line-oriented session logs recorded
// by the VR test harness.
//
// A log is a sequence of frames. Each frame starts with a line containing
// exactly "mainCamera", followed by the camera position "(x, y, z)" and
// the camera rotation "(x, y, z, w)". Object records follow, four lines
// each after the name: position, extent, and two legacy lines which are
// consumed but not interpreted. Lines starting with "TimeStamp:" are
// ignored wherever they appear. Blank lines are ignored between records;
// inside a record every line is taken by position, so a legacy line may
// be empty.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// CameraMarker is the record name which starts a new frame.
const CameraMarker = "mainCamera"

// commentPrefix marks lines which are skipped by the reader.
const commentPrefix = "TimeStamp:"

// Pose is a position together with an orientation.
type Pose struct {
	Position r3.Vec
	Rotation quat.Number
}

// Record is one object entry of a frame.
type Record struct {
	Name     string
	Position r3.Vec
	Extent   r3.Vec    // half-extent of the bounding box
	Legacy   [2]string // historic fields, kept verbatim
}

// Frame is one batch of the log: the camera pose and the object records
// that follow it.
type Frame struct {
	Line    int // line number of the camera marker
	Camera  Pose
	Objects []Record
}

// Parser reads session logs.
type Parser struct {
	// LegacyQuaternion reproduces the rotation parsing of early harness
	// builds, which duplicated the third component into the w slot.
	LegacyQuaternion bool
}

// Read parses a complete log using the default parser settings.
func Read(r io.Reader) ([]Frame, error) {
	var p Parser
	return p.Read(r)
}

type line struct {
	no   int
	text string
}

// Read parses a complete log into frames.
// All input is consumed before the first frame is returned.
func (p *Parser) Read(r io.Reader) ([]Frame, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var frames []Frame
	var cur *Frame
	for i := 0; i < len(lines); {
		l := lines[i]
		if l.text == "" {
			i++
			continue
		}

		if l.text == CameraMarker {
			if i+2 >= len(lines) {
				return nil, &ParseError{Line: l.no, Text: l.text, Err: ErrTruncated}
			}
			pos, err := ParseVec(lines[i+1].text)
			if err != nil {
				return nil, wrapLine(lines[i+1], err)
			}
			rot, err := ParseQuat(lines[i+2].text, p.LegacyQuaternion)
			if err != nil {
				return nil, wrapLine(lines[i+2], err)
			}
			frames = append(frames, Frame{
				Line:   l.no,
				Camera: Pose{Position: pos, Rotation: rot},
			})
			cur = &frames[len(frames)-1]
			i += 3
			continue
		}

		if cur == nil {
			return nil, &ParseError{Line: l.no, Text: l.text, Err: ErrMissingCamera}
		}
		if i+4 >= len(lines) {
			return nil, &ParseError{Line: l.no, Text: l.text, Err: ErrTruncated}
		}
		pos, err := ParseVec(lines[i+1].text)
		if err != nil {
			return nil, wrapLine(lines[i+1], err)
		}
		ext, err := ParseVec(lines[i+2].text)
		if err != nil {
			return nil, wrapLine(lines[i+2], err)
		}
		cur.Objects = append(cur.Objects, Record{
			Name:     l.text,
			Position: pos,
			Extent:   ext,
			Legacy:   [2]string{lines[i+3].text, lines[i+4].text},
		})
		i += 5
	}
	return frames, nil
}

// readLines returns the input lines other than "TimeStamp:" lines, with
// surrounding white space removed and with their 1-based line numbers.
func readLines(r io.Reader) ([]line, error) {
	var lines []line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	no := 0
	for sc.Scan() {
		no++
		text := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(text, commentPrefix) {
			continue
		}
		lines = append(lines, line{no: no, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	return lines, nil
}

func wrapLine(l line, err error) error {
	return &ParseError{Line: l.no, Text: l.text, Err: err}
}

// Write writes frames in the log format understood by Read.
func Write(w io.Writer, frames []Frame) error {
	bw := bufio.NewWriter(w)
	for _, f := range frames {
		fmt.Fprintln(bw, CameraMarker)
		fmt.Fprintln(bw, FormatVec(f.Camera.Position))
		fmt.Fprintln(bw, FormatQuat(f.Camera.Rotation))
		for _, rec := range f.Objects {
			fmt.Fprintln(bw, rec.Name)
			fmt.Fprintln(bw, FormatVec(rec.Position))
			fmt.Fprintln(bw, FormatVec(rec.Extent))
			for _, s := range rec.Legacy {
				fmt.Fprintln(bw, strings.TrimSpace(s))
			}
		}
	}
	return bw.Flush()
}
