package person

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/genogram/pkg/errors"
)

// Document is the top-level structure of a person file. In TOML each person
// is one [[person]] table; in JSON the same data sits under a "persons" key.
type Document struct {
	Persons []Record `json:"persons" toml:"person"`
}

// Format identifies a person document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath infers the document format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported person file extension %q", filepath.Ext(path))
	}
}

// Read decodes a person document from r in the given format. Records with an
// empty id receive a generated one; the returned set is validated.
func Read(r io.Reader, format Format) ([]Record, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}

	AssignIDs(doc.Persons)
	if err := Validate(doc.Persons); err != nil {
		return nil, err
	}
	return doc.Persons, nil
}

// ReadFile reads and validates a person document, inferring the format from
// the file extension.
func ReadFile(path string) ([]Record, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// Marshal encodes records as an indented JSON document.
func Marshal(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document{Persons: records}); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes records to path, encoding by file extension. The file is
// created with 0644 permissions.
func WriteFile(records []Record, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Document{Persons: records}); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(f).Encode(Document{Persons: records}); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	return nil
}
