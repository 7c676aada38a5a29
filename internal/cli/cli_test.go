package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/genogram/pkg/pipeline"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "genogram" {
		t.Errorf("Use = %q, want genogram", root.Use)
	}

	want := []string{"layout", "visualize", "render", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{pipeline.FormatSVG}},
		{"svg", []string{"svg"}},
		{"svg,png,pdf", []string{"svg", "png", "pdf"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "family.toml", "family"},
		{"", "dir/family.json", "dir/family"},
		{"out.svg", "family.toml", "out"},
		{"out.png", "family.toml", "out"},
		{"out", "family.toml", "out"},
		{"out.custom", "family.toml", "out.custom"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifactsSingleFormat(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "tree.svg")

	err := writeArtifacts(artifactWriteParams{
		artifacts:   map[string][]byte{"svg": []byte("<svg/>")},
		formats:     []string{"svg"},
		input:       "family.toml",
		output:      out,
		personCount: 3,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("output = %q, want <svg/>", data)
	}
}

func TestWriteArtifactsMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "tree")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{
			"svg":  []byte("<svg/>"),
			"json": []byte("{}"),
		},
		formats: []string{"svg", "json"},
		input:   "family.toml",
		output:  base,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	for _, ext := range []string{"svg", "json"} {
		if _, err := os.Stat(base + "." + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
}

func TestWriteArtifactsMissingFormat(t *testing.T) {
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{},
		formats:   []string{"svg"},
		input:     "family.toml",
		output:    filepath.Join(t.TempDir(), "tree.svg"),
	})
	if err == nil {
		t.Error("missing artifact should fail")
	}
	if err != nil && !strings.Contains(err.Error(), "svg") {
		t.Errorf("error should name the format: %v", err)
	}
}

func TestWriteArtifactsCreatesParentDirs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "deep", "tree.svg")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg"},
		input:     "family.toml",
		output:    out,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not created: %v", err)
	}
}
