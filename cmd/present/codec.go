package main

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codahale/present"
)

type format string

const (
	formatBinary format = "binary"
	formatBase64 format = "base64"
	formatHex    format = "hex"

	defaultFormat = formatHex
)

var (
	errNoKey      = errors.New("one of --key or --key-file is required")
	errBothKeys   = errors.New("--key and --key-file are mutually exclusive")
	errKeyEncoded = errors.New("key is neither hex nor base64")
)

func parseFormat(s string) (format, error) {
	switch f := format(strings.ToLower(s)); f {
	case formatBinary, formatBase64, formatHex:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// decode returns the bytes represented by data. Whitespace is ignored in the text formats.
func (f format) decode(data []byte) ([]byte, error) {
	switch f {
	case formatHex:
		return hex.DecodeString(stripSpace(string(data)))
	case formatBase64:
		return base64.StdEncoding.DecodeString(stripSpace(string(data)))
	default:
		return data, nil
	}
}

// encode writes data to w. The text formats are terminated with a newline.
func (f format) encode(w io.Writer, data []byte) error {
	var err error
	switch f {
	case formatHex:
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
	case formatBase64:
		_, err = fmt.Fprintln(w, base64.StdEncoding.EncodeToString(data))
	default:
		_, err = w.Write(data)
	}
	return err
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// decodeKeyText decodes a hex or base64 key. Hex is tried first, so a string valid in both is read as hex.
func decodeKeyText(s string) ([]byte, error) {
	s = stripSpace(s)
	if b, err := hex.DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return nil, errKeyEncoded
}

// loadKey reads the key material named by cfg and builds a key of the configured size. A key file may contain hex or
// base64 text; anything else is used as raw bytes.
func loadKey(cfg *config) (present.Key, error) {
	var material []byte
	switch {
	case cfg.Key != "" && cfg.KeyFile != "":
		return nil, errBothKeys
	case cfg.Key != "":
		b, err := decodeKeyText(cfg.Key)
		if err != nil {
			return nil, err
		}
		material = b
	case cfg.KeyFile != "":
		b, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		if text, err := decodeKeyText(string(b)); err == nil {
			material = text
		} else {
			material = b
		}
	default:
		return nil, errNoKey
	}

	return parseKey(material, cfg.KeySize)
}

// parseKey builds a key from material. An explicit size must match the length of the material exactly.
func parseKey(material []byte, size string) (present.Key, error) {
	var want int
	switch strings.ToLower(size) {
	case "", "auto":
		return present.ParseKey(material)
	case "80":
		want = present.KeySize80
	case "128":
		want = present.KeySize128
	default:
		return nil, fmt.Errorf("unknown key size %q", size)
	}

	if len(material) != want {
		return nil, fmt.Errorf("%s-bit key: %w", size, present.KeySizeError(len(material)))
	}
	return present.ParseKey(material)
}

// readInput reads all of the named file, or r if the name is empty or "-".
func readInput(name string, r io.Reader) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(r)
	}
	return os.ReadFile(name)
}
