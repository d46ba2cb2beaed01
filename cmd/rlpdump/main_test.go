package main

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(zap.NewNop())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDumpString(t *testing.T) {
	out, err := execute(t, "dump", "0x83646f67")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"dog"`) {
		t.Fatalf("output: %q", out)
	}
}

func TestDumpList(t *testing.T) {
	out, err := execute(t, "dump", "c88363617483646f67")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[", `"cat"`, `"dog"`, "]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %q", want, out)
		}
	}
}

func TestDumpNonPrintable(t *testing.T) {
	out, err := execute(t, "dump", "0x820080")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "0x0080") {
		t.Fatalf("output: %q", out)
	}
}

func TestDumpSequence(t *testing.T) {
	if _, err := execute(t, "dump", "8000"); err == nil {
		t.Fatal("trailing bytes accepted without --seq")
	}
	out, err := execute(t, "dump", "--seq", "8000")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `""`) || !strings.Contains(out, "0x00") {
		t.Fatalf("output: %q", out)
	}
}

func TestVerify(t *testing.T) {
	out, err := execute(t, "verify", "c6 00 c3 010203 04")
	if err == nil {
		t.Fatal("hex with spaces accepted")
	}
	out, err = execute(t, "verify", "c600c301020304")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "canonical (7 bytes)") {
		t.Fatalf("output: %q", out)
	}
	// Non-canonical input fails.
	if _, err := execute(t, "verify", "8105"); err == nil {
		t.Fatal("non-canonical input verified")
	}
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "describe", "header")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"parent_hash"`, `"raw"`, `"difficulty"`, `"uint"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %s: %q", want, out)
		}
	}

	out, err = execute(t, "describe", "handshake")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"[raw]"`) {
		t.Fatalf("output: %q", out)
	}

	if _, err := execute(t, "describe", "bogus"); err == nil {
		t.Fatal("unknown type accepted")
	}
}
