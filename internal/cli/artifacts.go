package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/genogram/pkg/pipeline"
)

// artifactWriteParams bundles the inputs to writeArtifacts.
type artifactWriteParams struct {
	artifacts      map[string][]byte // rendered outputs keyed by format
	formats        []string          // requested formats, in output order
	input          string            // input file path, used to derive output names
	output         string            // explicit output file or base path (may be empty)
	cacheHit       bool              // whether the artifacts came from cache
	personCount    int
	connectorCount int
}

// writeArtifacts writes each rendered format to disk and prints a summary.
// With a single format the output path is used as-is (or derived from the
// input); with multiple formats it is treated as a base path and the format
// extension is appended.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s artifact", format)
		}

		path := base + "." + format
		if p.output != "" && len(p.formats) == 1 {
			path = p.output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(p.personCount, p.connectorCount, p.cacheHit)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., family.svg, family.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// openOutput opens path for writing, creating parent directories as needed.
func openOutput(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
