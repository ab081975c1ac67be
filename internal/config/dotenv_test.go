package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDotEnv_IgnoresNoise(t *testing.T) {
	values, err := parseDotEnv(strings.NewReader(`
# comment

A=one
export B=two
C="three"
D='hello world'
not a pair
=orphan
`))
	if err != nil {
		t.Fatalf("parseDotEnv: %v", err)
	}

	want := map[string]string{"A": "one", "B": "two", "C": "three", "D": "hello world"}
	if len(values) != len(want) {
		t.Fatalf("got %d values %v, want %d", len(values), values, len(want))
	}
	for k, v := range want {
		if values[k] != v {
			t.Fatalf("%s=%q, want %q", k, values[k], v)
		}
	}
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("KEEP", "already")
	t.Setenv("FILL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("KEEP=fromfile\nFILL=fromfile\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("KEEP"); got != "already" {
		t.Fatalf("KEEP=%q, want %q", got, "already")
	}
	if got := os.Getenv("FILL"); got != "fromfile" {
		t.Fatalf("FILL=%q, want %q", got, "fromfile")
	}
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
}
