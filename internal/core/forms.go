package core

import (
	"fmt"
	"sort"
)

// Form kinds.
const (
	FormApplication   = "application"
	FormRejection     = "rejection"
	FormClosure       = "closure"
	FormConsideration = "consideration"
	FormInterview     = "interview"
	FormResume        = "resume"
)

// DefaultToday is the default value that resolves to the current date.
const DefaultToday = "today"

// Form describes one logger form: which table it appends to, which inputs
// are required and what blank inputs default to.
type Form struct {
	Table    string            `yaml:"table" json:"table"`
	Required []string          `yaml:"required" json:"required"`
	Defaults map[string]string `yaml:"defaults,omitempty" json:"defaults,omitempty"`

	// GenerateID prepends a new ID to the row.
	GenerateID bool `yaml:"generate_id,omitempty" json:"generateId,omitempty"`

	// Related forms resolve an application first and set Application ID.
	Related bool `yaml:"related,omitempty" json:"related,omitempty"`
}

// FormSet maps form kinds to forms.
type FormSet map[string]Form

// Form returns the form for kind.
func (fs FormSet) Form(kind string) (Form, error) {
	f, ok := fs[kind]
	if !ok {
		return Form{}, invalidInput("unknown form %q", kind)
	}
	return f, nil
}

// Kinds returns the form kinds in sorted order.
func (fs FormSet) Kinds() []string {
	kinds := make([]string, 0, len(fs))
	for k := range fs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Validate checks that every form targets a registered table and only names
// columns of that table.
func (fs FormSet) Validate() error {
	for _, kind := range fs.Kinds() {
		f := fs[kind]
		def, ok := Get(f.Table)
		if !ok {
			return fmt.Errorf("form %s: %w: %s", kind, ErrTableNotFound, f.Table)
		}
		for _, col := range f.Required {
			if _, ok := def.Spec(col); !ok {
				return fmt.Errorf("form %s: %w", kind, &MissingColumnError{Table: f.Table, Column: col})
			}
		}
		for col := range f.Defaults {
			if _, ok := def.Spec(col); !ok {
				return fmt.Errorf("form %s: %w", kind, &MissingColumnError{Table: f.Table, Column: col})
			}
		}
		if f.Related {
			if _, ok := def.Spec(ColApplicationID); !ok {
				return fmt.Errorf("form %s: %w", kind, &MissingColumnError{Table: f.Table, Column: ColApplicationID})
			}
		}
	}
	return nil
}
