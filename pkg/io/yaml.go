package io

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
)

// WriteYAML encodes m as YAML with two-space indentation.
func WriteYAML(m *diagram.Manager, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(m)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// MarshalYAML returns the output of [WriteYAML] as bytes.
func MarshalYAML(m *diagram.Manager) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteYAML(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadYAML decodes a diagram from r. Unknown fields are rejected.
func ReadYAML(r io.Reader, opts ...diagram.Option) (*diagram.Manager, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode diagram yaml")
	}
	return doc.manager(opts...)
}

// ExportYAML writes m to a YAML file at path.
func ExportYAML(m *diagram.Manager, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return writeAndClose(f, func(w io.Writer) error { return WriteYAML(m, w) })
}

// ImportYAML reads a diagram from the YAML file at path.
func ImportYAML(path string, opts ...diagram.Option) (*diagram.Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadYAML(f, opts...)
}
