package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/forthbyte/internal/compiler"
	"github.com/jcorbin/forthbyte/internal/config"
	"github.com/jcorbin/forthbyte/internal/logio"
	"github.com/jcorbin/forthbyte/internal/render"
)

var (
	errNoInput      = errors.New("no input files given")
	errSharedOutput = errors.New("an explicit output or emit file needs exactly one input file")
	errWAVStdout    = errors.New("wav output cannot be written to stdout; use -format raw")
)

// command renders each input file independently; a failure is logged
// against its file and does not stop the others.
type command struct {
	cfg  config.Config
	dump bool
	emit string

	log     *logio.Logger
	listing *logio.Logger
	stdout  io.Writer
}

func (cmd *command) run(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return errNoInput
	}
	if err := cmd.cfg.Validate(); err != nil {
		return err
	}
	if len(files) > 1 && (cmd.cfg.Output != "" || cmd.emit != "") {
		return errSharedOutput
	}
	if cmd.cfg.Output == "-" && cmd.cfg.Format == config.FormatWAV && !cmd.dump {
		return errWAVStdout
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, name := range files {
		name := name
		eg.Go(func() error {
			if err := cmd.renderFile(ctx, name); err != nil {
				cmd.log.Errorf("%v: %v", name, err)
			}
			return ctx.Err()
		})
	}
	return eg.Wait()
}

func (cmd *command) renderFile(ctx context.Context, name string) error {
	trace := cmd.log.Prefixed("TRACE", name)
	opts := []compiler.Option{
		compiler.WithCapacity(cmd.cfg.Capacity),
		compiler.WithLogf(trace),
	}

	eng := compiler.NewEngine(opts...)
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if filepath.Ext(name) == ".cbor" {
		prog, err := compiler.Load(data, opts...)
		if err != nil {
			return err
		}
		eng.Set(prog)
	} else if err := eng.Build(string(data)); err != nil {
		return err
	}
	prog := eng.Program()

	if cmd.dump {
		lw := &logio.Writer{Logf: cmd.listing.Leveledf(""), Prefix: name + ": "}
		prog.Dump(lw)
		return lw.Close()
	}

	if cmd.emit != "" {
		enc, err := prog.Encode()
		if err != nil {
			return err
		}
		if err := os.WriteFile(cmd.emit, enc, 0o644); err != nil {
			return err
		}
		trace("wrote %v bytes of program to %v", len(enc), cmd.emit)
	}

	r := render.New(eng,
		render.WithOutputRate(cmd.cfg.OutputRate),
		render.WithVolume(cmd.cfg.Volume),
		render.WithLogf(trace),
	)

	out := cmd.outputPath(name)
	if out == "-" {
		stdout := cmd.stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		return r.WriteRaw(ctx, stdout, render.Frames(cmd.cfg.Seconds, prog.SampleRate()))
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	switch cmd.cfg.Format {
	case config.FormatRaw:
		err = r.WriteRaw(ctx, f, render.Frames(cmd.cfg.Seconds, prog.SampleRate()))
	default:
		err = r.WriteWAV(ctx, f, render.Frames(cmd.cfg.Seconds, r.OutputRate()))
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("render %v: %w", out, err)
	}
	cmd.log.Printf("INFO", "%v: wrote %v", name, out)
	return nil
}

// outputPath returns the configured output, or the input name with its
// extension replaced by the format's.
func (cmd *command) outputPath(name string) string {
	if cmd.cfg.Output != "" {
		return cmd.cfg.Output
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + cmd.cfg.Format
}
