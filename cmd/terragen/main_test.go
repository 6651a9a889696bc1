package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/terragen/internal/config"
)

func TestReadSeed(t *testing.T) {
	seedFile := filepath.Join(t.TempDir(), "seed.txt")
	if err := os.WriteFile(seedFile, []byte("from file\r\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	testCases := []struct {
		name     string
		args     []string
		file     string
		stdin    string
		expected string
	}{
		{"argument wins", []string{"arg"}, seedFile, "stdin\n", "arg"},
		{"seed file", nil, seedFile, "stdin\n", "from file"},
		{"stdin line", nil, "", "typed\nignored\n", "typed"},
		{"stdin without newline", nil, "", "eof", "eof"},
		{"empty stdin", nil, "", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := readSeed(tc.args, tc.file, strings.NewReader(tc.stdin), &out)
			if err != nil {
				t.Fatalf("readSeed failed: %v", err)
			}
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
			if out.Len() != 0 {
				t.Errorf("no prompt expected for a non-terminal reader, got %q", out.String())
			}
		})
	}
}

func TestReadSeedMissingFile(t *testing.T) {
	if _, err := readSeed(nil, filepath.Join(t.TempDir(), "missing"), strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Error("expected an error for a missing seed file")
	}
}

func TestServerConfig(t *testing.T) {
	c := config.Default()
	c.Render.Mode = config.RenderPlain

	sc := serverConfig(c)
	if sc.Address != c.Server.Address || sc.DBPath != c.Storage.DBPath {
		t.Errorf("unexpected server config %+v", sc)
	}
	if sc.IdleTimeout != 30*time.Minute {
		t.Errorf("expected 30m idle timeout, got %v", sc.IdleTimeout)
	}
	if sc.Color {
		t.Error("plain render mode should serve uncoloured grids")
	}
	if sc.Params != c.Params() {
		t.Errorf("expected params %+v, got %+v", c.Params(), sc.Params)
	}

	flagSSHAddr, flagIdleTimeout = ":2222", 5
	defer func() { flagSSHAddr, flagIdleTimeout = "", 0 }()

	sc = serverConfig(c)
	if sc.Address != ":2222" || sc.IdleTimeout != 5*time.Minute {
		t.Errorf("flags should override config, got %s %v", sc.Address, sc.IdleTimeout)
	}
}
