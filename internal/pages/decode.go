package pages

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a page configuration.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var extensions = []struct {
	ext    string
	format Format
}{
	{".json", FormatJSON},
	{".yaml", FormatYAML},
	{".yml", FormatYAML},
}

// FormatForFile returns the format implied by a file name.
func FormatForFile(name string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if e.ext == ext {
			return e.format, true
		}
	}
	return "", false
}

// Decode parses a page configuration. YAML documents are normalised to JSON first so both
// encodings share the section decoding rules.
func Decode(data []byte, format Format) (PageConfig, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return PageConfig{}, err
		}
		data = converted
	}

	var cfg PageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return PageConfig{}, fmt.Errorf("pages: decode %s: %w", format, err)
	}
	return cfg, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("pages: decode yaml: %w", err)
	}
	if doc == nil {
		return nil, errors.New("pages: decode yaml: empty document")
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("pages: decode yaml: %w", err)
	}
	return out, nil
}
