// Command present encrypts or decrypts data with the PRESENT block cipher in ECB mode and prints the result to
// standard output.
package main

import (
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(exitFailure)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "present",
		Usage:           "encrypt/decrypt data with the PRESENT block cipher and print to standard output",
		Version:         Version,
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:      "encrypt",
				Aliases:   []string{"enc"},
				Usage:     "encrypt the contents of FILE",
				ArgsUsage: "[FILE]",
				Description: "Encrypts the contents of FILE and prints the ciphertext to standard output. When FILE is " +
					"absent or -, standard input is read. Input which is not a whole number of blocks is zero-padded.",
				Flags:  cryptFlags(),
				Action: cryptAction(opEncrypt),
			},
			{
				Name:      "decrypt",
				Aliases:   []string{"dec"},
				Usage:     "decrypt the contents of FILE",
				ArgsUsage: "[FILE]",
				Description: "Decrypts the contents of FILE and prints the padded plaintext to standard output. When " +
					"FILE is absent or -, standard input is read.",
				Flags:  cryptFlags(),
				Action: cryptAction(opDecrypt),
			},
		},
	}
}

func cryptFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "config",
			Aliases:   []string{"c"},
			Usage:     "read configuration from `PATH` instead of present.yaml",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "hex or base64 encoded encryption `KEY`",
		},
		&cli.StringFlag{
			Name:      "key-file",
			Aliases:   []string{"K"},
			Usage:     "read the encryption key from `PATH`",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  "key-size",
			Usage: "key size in bits: 80, 128, or auto",
			Value: defaultKeySize,
		},
		&cli.StringFlag{
			Name:    "input-format",
			Aliases: []string{"I"},
			Usage:   "input `FORMAT`: binary, base64, or hex",
			Value:   string(defaultFormat),
		},
		&cli.StringFlag{
			Name:    "output-format",
			Aliases: []string{"O"},
			Usage:   "output `FORMAT`: binary, base64, or hex",
			Value:   string(defaultFormat),
		},
		&cli.BoolFlag{
			Name:    "parallel",
			Aliases: []string{"p"},
			Usage:   "divide the blocks between multiple goroutines",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "maximum number of goroutines with --parallel, or 0 for GOMAXPROCS",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log `LEVEL`: debug, info, warn, or error",
			Value: defaultLogLevel,
		},
	}
}
