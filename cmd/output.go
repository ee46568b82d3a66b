package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat() error {
	switch flagFormat {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown --format %q (want table, json or yaml)", flagFormat)
}

// emitStructured writes v as JSON or YAML when --format asks for it and
// reports whether it did.
func emitStructured(v any) (bool, error) {
	return writeStructured(os.Stdout, flagFormat, v)
}

func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("encoding json: %w", err)
		}
		return true, nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return true, fmt.Errorf("encoding yaml: %w", err)
		}
		return true, nil
	}
	return false, nil
}
