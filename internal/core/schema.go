package core

// FieldType represents the expected data type for a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate
	FieldNumeric
	FieldBool
)

// FieldSpec describes a single column of a registered table.
type FieldSpec struct {
	Name     string    // Header name (must match the sheet exactly)
	Type     FieldType // Type used to decode string cells
	Required bool      // Column must exist in the sheet header

	// Normalizer rewrites a non-blank form input before it is parsed.
	Normalizer func(string) string
}

// TableInfo contains display information about a table.
type TableInfo struct {
	Name    string   // Sheet name: "Applications"
	Group   string   // "Core" for applications, "Related" for FK tables
	Label   string   // Display name
	Columns []string // Header column names, in order
}

// TableDefinition contains everything needed to create, read and validate a table.
type TableDefinition struct {
	Info       TableInfo
	FieldSpecs []FieldSpec
}

// Spec returns the field spec for a column.
func (d TableDefinition) Spec(col string) (FieldSpec, bool) {
	for _, spec := range d.FieldSpecs {
		if spec.Name == col {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// RequiredColumns returns the columns that must be present in the header.
func (d TableDefinition) RequiredColumns() []string {
	var cols []string
	for _, spec := range d.FieldSpecs {
		if spec.Required {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "numeric"
	case FieldBool:
		return "bool"
	default:
		return "value"
	}
}
