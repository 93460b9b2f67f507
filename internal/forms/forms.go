// Package forms loads the logger form definitions.
package forms

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/jobtracker/internal/core"
	_ "github.com/JonMunkholm/jobtracker/internal/core/tables"
)

//go:embed forms.yaml
var defaultForms []byte

// Default returns the built-in forms.
func Default() (core.FormSet, error) {
	return Parse(defaultForms)
}

// Load reads forms from path, or the built-in forms when path is empty.
func Load(path string) (core.FormSet, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read forms file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML form definitions and checks them against the table
// registry. Unknown keys are rejected.
func Parse(data []byte) (core.FormSet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fs core.FormSet
	if err := dec.Decode(&fs); err != nil {
		return nil, fmt.Errorf("parse forms: %w", err)
	}
	if len(fs) == 0 {
		return nil, fmt.Errorf("parse forms: no forms defined")
	}
	if err := fs.Validate(); err != nil {
		return nil, err
	}
	return fs, nil
}
