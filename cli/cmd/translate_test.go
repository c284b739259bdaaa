package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/deft/lang"
)

func writeTempSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.deft")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestTranslate_FileToFile(t *testing.T) {
	t.Cleanup(lang.ClearCache)

	src := writeTempSource(t,
		"(def port 8080);\n(def server struct { port = .(port). });")
	out := filepath.Join(t.TempDir(), "out.json")

	cmd := &Translate{Source: src, Output: out}
	if err := cmd.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"port":8080,"server":{"port":8080}}` + "\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}
}

func TestTranslate_Indented(t *testing.T) {
	t.Cleanup(lang.ClearCache)

	src := writeTempSource(t, "(def a 1);")
	out := filepath.Join(t.TempDir(), "out.json")

	cmd := &Translate{Source: src, Output: out, Indent: 2}
	if err := cmd.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	want := "{\n  \"a\": 1\n}\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}
}

func TestTranslate_MissingSource(t *testing.T) {
	cmd := &Translate{
		Source: filepath.Join(t.TempDir(), "does-not-exist.deft"),
		Output: "-",
	}

	err := cmd.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for missing source")
	}

	if !strings.Contains(err.Error(), "read source input") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTranslate_MalformedSource(t *testing.T) {
	t.Cleanup(lang.ClearCache)

	src := writeTempSource(t, "(def broken 007);")

	cmd := &Translate{Source: src, Output: "-"}

	err := cmd.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed source")
	}

	if !strings.Contains(err.Error(), "translate source") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTranslate_ContextSourceFiles(t *testing.T) {
	t.Cleanup(lang.ClearCache)

	// Two inputs: the later file overrides the earlier one.
	first := writeTempSource(t, "(def a 1); (def b 2);")
	second := writeTempSource(t, "(def a 3);")
	out := filepath.Join(t.TempDir(), "out.json")

	ctx := WithSourceFiles(context.Background(), []string{first, second})

	cmd := &Translate{Source: "-", Output: out}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"a":3,"b":2}` + "\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}
}

func TestBuildSourceFiles_DeduplicatesPaths(t *testing.T) {
	src := writeTempSource(t, "(def a 1);")

	srcs := buildSourceFiles([]string{src, src})
	if srcs == nil || srcs.IsZero() {
		t.Fatal("expected source files, got none")
	}

	var sb strings.Builder
	if _, err := srcs.WriteTo(&sb); err != nil {
		t.Fatal(err)
	}

	// The duplicate path must be read only once.
	if got := sb.String(); got != "(def a 1);" {
		t.Errorf("expected single copy of source, got %q", got)
	}
}

func TestBuildSourceFiles_Empty(t *testing.T) {
	if srcs := buildSourceFiles(nil); srcs != nil {
		t.Errorf("expected nil for no sources, got %v", srcs)
	}

	if srcs := buildSourceFiles([]string{"/nonexistent/path"}); srcs != nil {
		t.Errorf("expected nil for unopenable sources, got %v", srcs)
	}
}
