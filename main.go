package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jcorbin/forthbyte/internal/config"
	"github.com/jcorbin/forthbyte/internal/logio"
)

func main() {
	ctx := context.Background()

	var (
		log    logio.Logger
		stdout logio.Logger
	)
	log.SetOutput(os.Stderr)
	stdout.SetOutput(os.Stdout)

	var (
		cfgPath string
		timeout time.Duration
		cmd     = command{log: &log, listing: &stdout}
		flagCfg = config.Default()
	)
	flag.StringVar(&cfgPath, "config", "", "read settings from a TOML file")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.StringVar(&flagCfg.Output, "o", "", "output file; `-` for stdout; defaults to the input name with the format's extension")
	flag.StringVar(&flagCfg.Format, "format", flagCfg.Format, "output format: wav or raw")
	flag.Float64Var(&flagCfg.Seconds, "seconds", flagCfg.Seconds, "length to render")
	flag.Uint64Var(&flagCfg.OutputRate, "rate", flagCfg.OutputRate, "wav output rate in Hz")
	flag.Float64Var(&flagCfg.Volume, "volume", flagCfg.Volume, "output volume within [0, 1]")
	flag.IntVar(&flagCfg.Capacity, "capacity", flagCfg.Capacity, "interpreter stack, variable and memory size")
	flag.BoolVar(&flagCfg.Trace, "trace", false, "enable trace logging")
	flag.BoolVar(&cmd.dump, "dump", false, "print the compiled program listing instead of rendering")
	flag.StringVar(&cmd.emit, "emit", "", "write the compiled program as CBOR to this file, to render later")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [flags] file.fb|file.cbor...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			log.Errorf("%v", err)
			os.Exit(log.ExitCode())
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.Output = flagCfg.Output
		case "format":
			cfg.Format = flagCfg.Format
		case "seconds":
			cfg.Seconds = flagCfg.Seconds
		case "rate":
			cfg.OutputRate = flagCfg.OutputRate
		case "volume":
			cfg.Volume = flagCfg.Volume
		case "capacity":
			cfg.Capacity = flagCfg.Capacity
		case "trace":
			cfg.Trace = flagCfg.Trace
		}
	})
	cmd.cfg = cfg
	log.SetTrace(cfg.Trace)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := cmd.run(ctx, flag.Args()); err != nil {
		log.Errorf("%+v", err)
	}
	os.Exit(log.ExitCode())
}
