package task

import (
	"encoding/json"
	"fmt"
	"os"
)

const fileMode = 0o600

// readCollection loads a JSON collection file into v. A missing file is not
// an error; the caller keeps its zero value. Returns true when the file
// existed and parsed.
func readCollection(path string, v any) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // store path from trusted data dir
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}

// writeCollection overwrites a JSON collection file wholesale.
func writeCollection(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), fileMode)
}
