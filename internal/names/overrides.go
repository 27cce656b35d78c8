package names

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOverrides reads user-defined aliases from a YAML file mapping alias to
// canonical template name, e.g. "work: Global/JetBrains". A missing file is
// not an error and yields no overrides.
func LoadOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading aliases file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing aliases file: %w", err)
	}
	return overrides, nil
}
