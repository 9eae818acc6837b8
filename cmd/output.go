package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// emit renders a result value to stdout in the selected output format.
func emit(v any) error {
	switch outFormat {
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(b))
		return nil
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Fprint(os.Stdout, string(b))
		return nil
	default:
		return fmt.Errorf("unsupported --output: %s (use json|yaml)", outFormat)
	}
}
