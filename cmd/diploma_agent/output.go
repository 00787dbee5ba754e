package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/diploma-scanner/internal/config"
	"gopkg.in/yaml.v3"
)

// loadConfig reads the --config file and DIPLOMA_* environment, fills
// unset values from the built-in defaults and validates the result.
func loadConfig() (*config.Config, error) {
	loaded, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	merged := loaded.MergeWithDefaults(config.Default())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// marshal encodes v as indented JSON or as YAML.
func marshal(v any, format string) ([]byte, error) {
	switch format {
	case config.FormatJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case config.FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
