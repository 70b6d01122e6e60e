package main

import (
	"fmt"
	"io"
	"time"

	"github.com/codahale/present"
	"github.com/codahale/present/ecb"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

type operation int

const (
	opEncrypt operation = iota
	opDecrypt
)

func (op operation) String() string {
	if op == opDecrypt {
		return "decrypt"
	}
	return "encrypt"
}

// job is a fully validated invocation.
type job struct {
	op       operation
	key      present.Key
	in, out  format
	file     string
	parallel bool
	workers  int
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
}

func cryptAction(op operation) cli.ActionFunc {
	return func(c *cli.Context) error {
		logger := newLogger(c.App.ErrWriter)

		j, level, err := prepare(c, op)
		if err != nil {
			logger.Error().Err(err).Str("op", op.String()).Msg("invalid arguments")
			return cli.Exit("", exitUsage)
		}
		logger = logger.Level(level)

		if err := j.run(c.App.Reader, c.App.Writer, logger); err != nil {
			logger.Error().Err(err).Str("op", op.String()).Msg("failed")
			return cli.Exit("", exitFailure)
		}
		return nil
	}
}

func prepare(c *cli.Context, op operation) (*job, zerolog.Level, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, zerolog.NoLevel, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, zerolog.NoLevel, fmt.Errorf("log level: %w", err)
	}

	key, err := loadKey(cfg)
	if err != nil {
		return nil, level, fmt.Errorf("key: %w", err)
	}

	in, err := parseFormat(cfg.InputFormat)
	if err != nil {
		return nil, level, fmt.Errorf("input format: %w", err)
	}

	out, err := parseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, level, fmt.Errorf("output format: %w", err)
	}

	if c.NArg() > 1 {
		return nil, level, fmt.Errorf("expected at most one FILE, got %d", c.NArg())
	}

	return &job{
		op:       op,
		key:      key,
		in:       in,
		out:      out,
		file:     c.Args().First(),
		parallel: cfg.Parallel,
		workers:  cfg.Workers,
	}, level, nil
}

func (j *job) run(stdin io.Reader, stdout io.Writer, logger zerolog.Logger) error {
	start := time.Now()

	raw, err := readInput(j.file, stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	data, err := j.in.decode(raw)
	if err != nil {
		return fmt.Errorf("decoding %s input: %w", j.in, err)
	}

	workers := 1
	if j.parallel {
		workers = j.workers
	}

	logger.Debug().
		Str("op", j.op.String()).
		Int("variant", j.key.Size()*8).
		Int("bytes", len(data)).
		Int("workers", workers).
		Msg("starting")

	b := present.NewCipher(j.key)
	var result []byte
	switch j.op {
	case opEncrypt:
		result = ecb.ParallelEncrypt(nil, b, data, workers)
	case opDecrypt:
		result, err = ecb.ParallelDecrypt(nil, b, data, workers)
		if err != nil {
			return fmt.Errorf("decrypting %d bytes: %w", len(data), err)
		}
	}

	logger.Info().
		Str("op", j.op.String()).
		Int("bytes", len(data)).
		Int("blocks", len(result)/present.BlockSize).
		Int("workers", workers).
		Dur("elapsed", time.Since(start)).
		Msg("done")

	if err := j.out.encode(stdout, result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
