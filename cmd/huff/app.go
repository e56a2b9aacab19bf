package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/consensys/huffcode/archive"
	"github.com/consensys/huffcode/internal/config"
	"github.com/consensys/huffcode/logger"
)

// state is shared by the commands of one run of the app.
type state struct {
	cfg     config.Config
	logFile io.Closer
}

func newApp() *cli.App {
	st := &state{}
	return &cli.App{
		Name:  "huff",
		Usage: "Huffman-encode text files into '0'/'1' streams and back",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration `FILE`",
				EnvVars: []string{"HUFF_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "out-dir",
				Aliases: []string{"o"},
				Usage:   "directory receiving the output files",
			},
			&cli.BoolFlag{
				Name:  "packed",
				Usage: "store encoded streams as packed bits",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn or error",
				EnvVars: []string{"HUFF_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "write logs to a rotated `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "disable logging",
			},
		},
		Before: st.setup,
		After:  st.teardown,
		Commands: []*cli.Command{
			runCommand(st),
			encodeCommand(st),
			decodeCommand(st),
			inspectCommand(),
		},
	}
}

// setup loads the configuration, applies the global flags over it and
// configures the logger.
func (st *state) setup(cCtx *cli.Context) error {
	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return err
	}
	if cCtx.IsSet("out-dir") {
		cfg.OutputDir = cCtx.String("out-dir")
	}
	if cCtx.IsSet("packed") {
		cfg.Packed = cCtx.Bool("packed")
	}
	if cCtx.IsSet("log-level") {
		cfg.Log.Level = cCtx.String("log-level")
	}
	if cCtx.IsSet("log-file") {
		cfg.Log.File = cCtx.String("log-file")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	st.cfg = cfg

	if cCtx.Bool("quiet") {
		logger.Disable()
		return nil
	}
	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	if cfg.Log.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		}
		st.logFile = lj
		logger.SetOutput(zerolog.ConsoleWriter{Out: lj, NoColor: true, TimeFormat: "2006-01-02 15:04:05"})
	}
	return nil
}

func (st *state) teardown(*cli.Context) error {
	if st.logFile == nil {
		return nil
	}
	return st.logFile.Close()
}

func (st *state) archiver() *archive.Archiver {
	return archive.New(
		archive.WithOutputDir(st.cfg.OutputDir),
		archive.WithFileNames(st.cfg.Encoded, st.cfg.Decoded, st.cfg.Tree),
		archive.WithPacked(st.cfg.Packed),
		archive.WithLogger(*logger.Logger()),
	)
}

// source returns the file named on the command line, or the configured input.
func (st *state) source(cCtx *cli.Context) string {
	if cCtx.Args().Present() {
		return cCtx.Args().First()
	}
	return st.cfg.Input
}
