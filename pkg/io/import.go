package io

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
)

// Import reads a diagram file, choosing YAML for .yaml and .yml and JSON
// for everything else.
func Import(path string, opts ...diagram.Option) (*diagram.Manager, error) {
	if IsYAML(path) {
		return ImportYAML(path, opts...)
	}
	return ImportJSON(path, opts...)
}

// Export writes a diagram file in the encoding [Import] would choose.
func Export(m *diagram.Manager, path string) error {
	if IsYAML(path) {
		return ExportYAML(m, path)
	}
	return ExportJSON(m, path)
}

// IsYAML reports whether path has a YAML extension.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// writeAndClose runs write on wc and closes it. A close error is returned
// when the write succeeded, since buffered data may not have reached disk.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
