package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileCreatesDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "out.md")
	if err := SafeWriteFile(p, []byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "hello" {
		t.Fatalf("unexpected content %q (%v)", b, err)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "report.md")
	if got := UniquePath(p); got != p {
		t.Fatalf("expected %s, got %s", p, got)
	}
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got, want := UniquePath(p), filepath.Join(dir, "report__2.md"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Hydra Toner": "hydra-toner",
		"  A_B-c ":    "a-b-c",
		"토너 Toner #1": "toner-1",
		"브랜드":         "",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
