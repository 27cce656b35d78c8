package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Timestamp returns the current UTC time for JSON responses.
func Timestamp() time.Time {
	return time.Now().UTC()
}

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

// PrintJSONCompact writes v to stdout as a single JSON line.
func PrintJSONCompact(v any) error {
	if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
		return fmt.Errorf("encoding json output: %w", err)
	}
	return nil
}

// MarshalJSON marshals v, indented when pretty is true.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
