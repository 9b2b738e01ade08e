package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/August26/ipintel-go/internal/model"
)

func TestParseTargetLine_Simple(t *testing.T) {
	line := "185.94.111.1"
	res, err := parseTargetLine(line)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.IP != "185.94.111.1" {
		t.Fatalf("bad parse: %#v", res)
	}
	if res.Flags != "" {
		t.Fatalf("should not have flags: %#v", res)
	}
}

func TestParseTargetLine_WithFlags(t *testing.T) {
	line := "185.94.111.1 m"
	res, err := parseTargetLine(line)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := model.Target{
		IP:    "185.94.111.1",
		Flags: "m",
		Raw:   line,
	}
	if !reflect.DeepEqual(stripRaw(res), stripRaw(want)) {
		t.Fatalf("got %#v want %#v", res, want)
	}
}

func TestParseTargetLine_AlternateNotation(t *testing.T) {
	// Colon and dash notations stay as written; they are rewritten
	// at query time, not here.
	line := "185:94:111:1"
	res, err := parseTargetLine(line)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.IP != "185:94:111:1" {
		t.Fatalf("address was rewritten at parse time: %#v", res)
	}
}

func TestParseTargetLine_Invalid(t *testing.T) {
	bad := "too many tokens here"
	_, err := parseTargetLine(bad)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestLoadFromFile(t *testing.T) {
	content := "# comment\n\n185.94.111.1\n8.8.8.8 b\nnot a valid line at all\n1-2-3-4\n"
	path := filepath.Join(t.TempDir(), "targets.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	targets, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(targets) != 3 {
		t.Fatalf("expected 3 targets, got %d: %#v", len(targets), targets)
	}
	if targets[0].IP != "185.94.111.1" || targets[1].IP != "8.8.8.8" || targets[2].IP != "1-2-3-4" {
		t.Fatalf("bad targets: %#v", targets)
	}
	if targets[1].Flags != "b" {
		t.Fatalf("flags not parsed: %#v", targets[1])
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// helper to compare ignoring Raw because Raw is just debug info.
func stripRaw(in model.Target) model.Target {
	in.Raw = ""
	return in
}
