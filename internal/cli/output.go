package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/render"
)

// stdoutPath selects standard output for single text artifacts.
const stdoutPath = "-"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// basePath derives the output stem. With no output it strips the input's
// extension; an output carrying a known extension is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, f := range render.Formats {
		if ext := render.Ext(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPaths maps each format to its file. A single format written to an
// explicit output goes exactly there.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && (output == stdoutPath || filepath.Ext(output) != "") {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + render.Ext(f)
	}
	return paths
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes every rendered format and returns the paths in
// format order.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	paths := outputPaths(p.formats, p.output, p.input)
	var written []string
	for _, f := range p.formats {
		data, ok := p.artifacts[f]
		if !ok {
			return written, fmt.Errorf("no %s artifact rendered", f)
		}
		path := paths[f]
		if path == stdoutPath && slices.Contains([]string{render.FormatPNG}, f) {
			return written, errs.New(errs.ErrCodeUnsupported, "refusing to write binary %s output to stdout", f)
		}
		if err := writeFile(path, data); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		if path != stdoutPath {
			written = append(written, path)
		}
	}
	return written, nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
