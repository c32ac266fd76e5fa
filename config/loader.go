package config

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

// decoders maps settings file extensions to their decoders.
var decoders = map[string]func([]byte) (Settings, error){
	".yaml": FromYAML,
	".yml":  FromYAML,
	".json": FromJSON,
}

// FromFile loads settings from a file, choosing the format by extension:
// .yaml, .yml, or .json, in any case.
func FromFile(path string) (Settings, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode := decoders[ext]
	if decode == nil {
		return Settings{}, fmt.Errorf("settings file %s: unsupported extension %q", path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}
	s, err := decode(data)
	if err != nil {
		return Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	return s, nil
}

// FromYAML parses YAML settings. Unknown fields are errors. Empty input gives
// zero settings.
func FromYAML(data []byte) (Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("parse yaml settings: %w", err)
	}
	return s, nil
}

// FromJSON parses JSON settings. Unknown fields are errors.
func FromJSON(data []byte) (Settings, error) {
	var s Settings
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("parse json settings: %w", err)
	}
	return s, nil
}
