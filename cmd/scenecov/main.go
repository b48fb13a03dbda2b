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

// Command scenecov replays a recorded VR session log and reports which
// fraction of every object's surface the player has seen.
//
// Usage:
//
//	scenecov [flags] session.log
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"seehuhn.de/go/coverage"
)

func main() {
	configFile := flag.String("config", "", "TOML configuration file")
	output := flag.String("o", "-", "report file (\"-\" for standard output)")
	atlas := flag.String("atlas", "", "write a PDF atlas of the face grids to this file")
	plotFile := flag.String("plot", "", "write a coverage timeline plot to this file")
	debugDir := flag.String("debug-dir", "", "write depth buffer images to this directory")
	quad := flag.Bool("quad", false, "use quad subdivision")
	legacy := flag.Bool("legacy-quaternion", false, "parse rotations like early harness builds")
	verbose := flag.Bool("v", false, "log per-frame progress")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] session.log\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := coverage.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = coverage.LoadConfig(*configFile)
		if err != nil {
			slog.Error("cannot load configuration", "file", *configFile, "error", err)
			os.Exit(1)
		}
	}

	// flags which were given explicitly override the configuration file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "quad":
			cfg.Quad = *quad
		case "legacy-quaternion":
			cfg.LegacyQuaternion = *legacy
		case "debug-dir":
			cfg.DebugDir = *debugDir
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, flag.Arg(0), *output, *atlas, *plotFile); err != nil {
		slog.Error("coverage run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *coverage.Config, logPath, output, atlas, plotFile string) error {
	s, err := coverage.Run(ctx, cfg, logPath, output)
	if err != nil {
		return err
	}

	if atlas != "" {
		if err := coverage.WriteAtlasPDF(atlas, s.Objects()); err != nil {
			return fmt.Errorf("writing atlas: %w", err)
		}
		slog.Info("atlas written", "file", atlas)
	}
	if plotFile != "" {
		if err := coverage.WriteTimelinePlot(plotFile, s.Timeline()); err != nil {
			return fmt.Errorf("writing plot: %w", err)
		}
		slog.Info("plot written", "file", plotFile)
	}
	return nil
}
