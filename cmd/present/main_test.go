package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestEncryptDecrypt(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			"hex key",
			"0000000000000000\n",
			[]string{"encrypt", "-k", "00000000000000000000"},
			"5579c1387b228445\n",
		},
		{
			"base64 key",
			"0000000000000000",
			[]string{"encrypt", "--key", "AAAAAAAAAAAAAA=="},
			"5579c1387b228445\n",
		},
		{
			"128-bit key",
			"0000000000000000",
			[]string{"encrypt", "-k", "ffffffffffffffffffffffffffffffff"},
			"13238c710272a5d8\n",
		},
		{
			"padded input",
			"ffffffffffffffff00",
			[]string{"encrypt", "-k", "00000000000000000000"},
			"a112ffc72f68417b5579c1387b228445\n",
		},
		{
			"base64 output",
			"FFFFFFFFFFFFFFFF",
			[]string{"encrypt", "-k", "ffffffffffffffffffff", "-O", "base64"},
			"MzPc0yEyENI=\n",
		},
		{
			"parallel",
			"0000000000000000ffffffffffffffff",
			[]string{"enc", "-p", "--workers", "4", "-k", "00000000000000000000"},
			"5579c1387b228445a112ffc72f68417b\n",
		},
		{
			"decrypt",
			"VXnBOHsihEU=",
			[]string{"decrypt", "-I", "base64", "-k", "00000000000000000000"},
			"0000000000000000\n",
		},
		{
			"binary output",
			"e72c46c0f5945049",
			[]string{"decrypt", "-O", "binary", "-k", "ffffffffffffffffffff", "-"},
			"\x00\x00\x00\x00\x00\x00\x00\x00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			stdout, stderr, code := runApp(t, tt.stdin, tt.args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", code, stderr)
			}

			if got, want := stdout, tt.want; got != want {
				t.Errorf("stdout = %q, want = %q", got, want)
			}
		})
	}
}

func TestInputFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "plaintext.bin")
	if err := os.WriteFile(in, []byte("attack at dawn"), 0o600); err != nil {
		t.Fatal(err)
	}

	ct, stderr, code := runApp(t, "", "encrypt", "-I", "binary", "-O", "binary", "-k", "00000000000000000000", in)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	if got, want := len(ct), 16; got != want {
		t.Fatalf("len(ciphertext) = %d, want = %d", got, want)
	}

	pt, stderr, code := runApp(t, ct, "decrypt", "-I", "binary", "-O", "binary", "-k", "00000000000000000000")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	if got, want := pt, "attack at dawn\x00\x00"; got != want {
		t.Errorf("plaintext = %q, want = %q", got, want)
	}
}

func TestKeyFile(t *testing.T) {
	tests := []struct {
		name     string
		contents []byte
	}{
		{"hex", []byte("ffffffffffffffffffff\n")},
		{"base64", []byte("/////////////w==\n")},
		{"raw", bytes.Repeat([]byte{0xFF}, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			path := filepath.Join(t.TempDir(), "key")
			if err := os.WriteFile(path, tt.contents, 0o600); err != nil {
				t.Fatal(err)
			}

			stdout, stderr, code := runApp(t, "ffffffffffffffff", "encrypt", "-K", path)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", code, stderr)
			}

			if got, want := stdout, "3333dcd3213210d2\n"; got != want {
				t.Errorf("stdout = %q, want = %q", got, want)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)

	config := "key: ffffffffffffffffffff\noutput_format: base64\n"
	if err := os.WriteFile(filepath.Join(dir, "present.yaml"), []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := runApp(t, "ffffffffffffffff", "encrypt")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	if got, want := stdout, "MzPc0yEyENI=\n"; got != want {
		t.Errorf("stdout = %q, want = %q", got, want)
	}

	// Flags take precedence over the config file.
	stdout, stderr, code = runApp(t, "ffffffffffffffff", "encrypt", "-O", "hex")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	if got, want := stdout, "3333dcd3213210d2\n"; got != want {
		t.Errorf("stdout = %q, want = %q", got, want)
	}
}

func TestExplicitConfigFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("key: ffffffffffffffffffff\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := runApp(t, "ffffffffffffffff", "encrypt", "-c", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	if got, want := stdout, "3333dcd3213210d2\n"; got != want {
		t.Errorf("stdout = %q, want = %q", got, want)
	}

	if _, _, code := runApp(t, "", "encrypt", "-c", filepath.Join(t.TempDir(), "missing.yaml")); code != exitUsage {
		t.Errorf("missing config exit code = %d, want = %d", code, exitUsage)
	}
}

func TestEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PRESENT_KEY", "ffffffffffffffffffff")
	t.Setenv("PRESENT_INPUT_FORMAT", "base64")

	stdout, stderr, code := runApp(t, "//////////8=", "encrypt")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	if got, want := stdout, "3333dcd3213210d2\n"; got != want {
		t.Errorf("stdout = %q, want = %q", got, want)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		code    int
		message string
	}{
		{"no key", "00", []string{"encrypt"}, exitUsage, "one of --key or --key-file is required"},
		{"both keys", "00", []string{"encrypt", "-k", "00", "-K", "key"}, exitUsage, "mutually exclusive"},
		{"bad key size", "00", []string{"encrypt", "-k", "000000000000000000000000"}, exitUsage, "invalid key size 12"},
		{
			"size mismatch",
			"00",
			[]string{"encrypt", "--key-size", "128", "-k", "00000000000000000000"},
			exitUsage,
			"invalid key size 10",
		},
		{"bad key encoding", "00", []string{"encrypt", "-k", "!!"}, exitUsage, "neither hex nor base64"},
		{"bad format", "00", []string{"encrypt", "-k", "00000000000000000000", "-I", "rot13"}, exitUsage, "rot13"},
		{"bad log level", "00", []string{"encrypt", "-k", "00000000000000000000", "--log-level", "loud"}, exitUsage, "loud"},
		{"bad hex input", "xyz", []string{"encrypt", "-k", "00000000000000000000"}, exitFailure, "decoding hex input"},
		{"partial block", "00", []string{"decrypt", "-k", "00000000000000000000"}, exitFailure, "input not full blocks"},
		{"missing file", "", []string{"encrypt", "-k", "00000000000000000000", "nope.bin"}, exitFailure, "reading input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			stdout, stderr, code := runApp(t, tt.stdin, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want = %d", code, tt.code)
			}

			if stdout != "" {
				t.Errorf("stdout = %q, want = empty", stdout)
			}

			if !strings.Contains(stderr, tt.message) {
				t.Errorf("stderr = %q, want to contain %q", stderr, tt.message)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"binary", "base64", "hex", "HEX"} {
		f, err := parseFormat(s)
		if err != nil {
			t.Errorf("parseFormat(%q) err = %v", s, err)
		}

		if got, want := string(f), strings.ToLower(s); got != want {
			t.Errorf("parseFormat(%q) = %q, want = %q", s, got, want)
		}
	}

	if _, err := parseFormat("ascii85"); err == nil {
		t.Error("parseFormat(ascii85) err = nil")
	}
}

func TestFormatDecode(t *testing.T) {
	tests := []struct {
		f    format
		in   string
		want []byte
	}{
		{formatHex, "DEAD beef\n", []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{formatBase64, "3q2+\n7w==", []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{formatBinary, " \n", []byte(" \n")},
	}

	for _, tt := range tests {
		got, err := tt.f.decode([]byte(tt.in))
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, tt.want) {
			t.Errorf("%s.decode(%q) = %x, want = %x", tt.f, tt.in, got, tt.want)
		}
	}
}

func TestDecodeKeyText(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
		err  error
	}{
		{"0102", []byte{1, 2}, nil},
		{" 01 02\n", []byte{1, 2}, nil},
		{"AQI=", []byte{1, 2}, nil},
		{"????", nil, errKeyEncoded},
	}

	for _, tt := range tests {
		got, err := decodeKeyText(tt.in)
		if !errors.Is(err, tt.err) {
			t.Errorf("decodeKeyText(%q) err = %v, want = %v", tt.in, err, tt.err)
		}

		if !bytes.Equal(got, tt.want) {
			t.Errorf("decodeKeyText(%q) = %x, want = %x", tt.in, got, tt.want)
		}
	}
}

func TestParseKeySize(t *testing.T) {
	tests := []struct {
		size string
		n    int
		bits int
		ok   bool
	}{
		{"auto", 10, 80, true},
		{"auto", 16, 128, true},
		{"", 16, 128, true},
		{"auto", 12, 0, false},
		{"80", 10, 80, true},
		{"80", 16, 0, false},
		{"128", 16, 128, true},
		{"128", 10, 0, false},
		{"64", 8, 0, false},
	}

	for _, tt := range tests {
		key, err := parseKey(make([]byte, tt.n), tt.size)
		if ok := err == nil; ok != tt.ok {
			t.Errorf("parseKey(%d bytes, %q) err = %v", tt.n, tt.size, err)
			continue
		}

		if tt.ok {
			if got, want := key.Size()*8, tt.bits; got != want {
				t.Errorf("parseKey(%d bytes, %q) = %d-bit key, want = %d-bit", tt.n, tt.size, got, want)
			}
		}
	}
}

// isolate runs the test in an empty working directory with an empty home directory, so no config file or PRESENT_*
// variable from the environment leaks in. It returns the working directory.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, "PRESENT_") {
			t.Setenv(name, "")
		}
	}
	return dir
}

func runApp(t *testing.T, stdin string, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(_ *cli.Context, err error) {
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			code = exit.ExitCode()
		}
	}

	if err := app.Run(append([]string{"present"}, args...)); err != nil && code == 0 {
		t.Fatalf("Run(%v) = %v", args, err)
	}
	return out.String(), errOut.String(), code
}
