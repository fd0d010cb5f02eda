package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
)

// WriteJSON encodes m as indented JSON and writes it to w.
func WriteJSON(m *diagram.Manager, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toDocument(m)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the output of [WriteJSON] as bytes.
func MarshalJSON(m *diagram.Manager) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadJSON decodes a diagram from r. Unknown fields are rejected.
func ReadJSON(r io.Reader, opts ...diagram.Option) (*diagram.Manager, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode diagram json")
	}
	return doc.manager(opts...)
}

// UnmarshalJSON decodes a diagram from b.
func UnmarshalJSON(b []byte, opts ...diagram.Option) (*diagram.Manager, error) {
	return ReadJSON(bytes.NewReader(b), opts...)
}

// ExportJSON writes m to a JSON file at path.
func ExportJSON(m *diagram.Manager, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return writeAndClose(f, func(w io.Writer) error { return WriteJSON(m, w) })
}

// ImportJSON reads a diagram from the JSON file at path.
func ImportJSON(path string, opts ...diagram.Option) (*diagram.Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}
