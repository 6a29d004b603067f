package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFixture reads a definition fixture verbatim.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes a JSON golden file into v, typically a generic
// map[string]any or any used to compare encoded output key by key.
func LoadGolden(path string, v any) error {
	data, err := LoadFixture(path)
	if err != nil {
		return fmt.Errorf("testsupport: read golden %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("testsupport: decode golden %s: %w", path, err)
	}
	return nil
}
