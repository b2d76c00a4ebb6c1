// Package logical defines the relational plan IR produced by the forward
// planner and consumed by the unparsing walk: one struct per operator, each
// carrying its input plans and an output schema. Wrapper operators (Filter,
// Sort, Limit, Distinct) pass their input schema through unchanged; leaves
// and renaming operators carry their own.
package logical

import "strings"

// TableReference names a table with up to three parts. Empty parts are
// unset; Table is always set.
type TableReference struct {
	Catalog string
	Schema  string
	Table   string
}

// NewTableReference returns a bare (single-part) table reference.
func NewTableReference(table string) TableReference {
	return TableReference{Table: table}
}

func (r TableReference) String() string {
	var parts []string
	if r.Catalog != "" {
		parts = append(parts, r.Catalog)
	}
	if r.Schema != "" {
		parts = append(parts, r.Schema)
	}
	parts = append(parts, r.Table)
	return strings.Join(parts, ".")
}

// Field is one named column of a schema. Qualifier is the owning relation
// name when known.
type Field struct {
	Qualifier string
	Name      string
}

func (f Field) String() string {
	if f.Qualifier != "" {
		return f.Qualifier + "." + f.Name
	}
	return f.Name
}

// Schema is an ordered list of output fields.
type Schema struct {
	Fields []Field
}

// NewSchema builds a schema of unqualified fields.
func NewSchema(names ...string) *Schema {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n}
	}
	return &Schema{Fields: fields}
}

// EmptySchema is the zero-column schema scalar expressions are planned
// against when no relation is in scope.
func EmptySchema() *Schema { return &Schema{} }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.Fields) }

// FieldNames returns the field names in order, without qualifiers.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// WithQualifier returns a copy of the schema with every field requalified.
func (s *Schema) WithQualifier(qualifier string) *Schema {
	fields := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = Field{Qualifier: qualifier, Name: f.Name}
	}
	return &Schema{Fields: fields}
}

// WithNames returns a copy of the schema with fields renamed positionally.
// The caller must pass exactly one name per field.
func (s *Schema) WithNames(names []string) *Schema {
	fields := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = Field{Qualifier: f.Qualifier, Name: names[i]}
	}
	return &Schema{Fields: fields}
}

func (s *Schema) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
