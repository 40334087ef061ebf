package questionnaire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Brief file formats, selected by file extension.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatFor returns the brief format implied by a file name. Anything that
// is not .json is read as YAML.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// DecodeForm parses a brief. Unknown keys are an error so that typos in
// hand-written files are caught.
func DecodeForm(data []byte, format string) (Form, error) {
	f := NewForm()
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return Form{}, fmt.Errorf("failed to parse JSON brief: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return Form{}, fmt.Errorf("failed to parse YAML brief: %w", err)
		}
	default:
		return Form{}, fmt.Errorf("unsupported brief format %q", format)
	}
	return f.Normalize(), nil
}

// EncodeForm renders a brief in the given format.
func EncodeForm(f Form, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON brief: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML brief: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported brief format %q", format)
	}
}

// LoadForm reads a brief file.
func LoadForm(path string) (Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Form{}, fmt.Errorf("failed to read brief: %w", err)
	}
	return DecodeForm(data, FormatFor(path))
}

// SaveForm writes a brief file, replacing any existing one.
func SaveForm(path string, f Form) error {
	data, err := EncodeForm(f, FormatFor(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write brief: %w", err)
	}
	return nil
}
