package cli

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/klauern/skillkit/internal/handlers"
)

// renderResponse prints an operation response in the requested format.
// Text output is left to the caller; this handles the structured
// formats.
func renderResponse(resp handlers.Response, format string) (handled bool, err error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to encode response: %w", err)
		}
		fmt.Println(string(data))
		return true, nil
	case "yaml":
		data, err := yaml.Marshal(resp)
		if err != nil {
			return true, fmt.Errorf("failed to encode response: %w", err)
		}
		fmt.Print(string(data))
		return true, nil
	case "", "text":
		return false, nil
	default:
		return true, fmt.Errorf("unknown output format %q (expected text, json, or yaml)", format)
	}
}
