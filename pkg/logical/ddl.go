package logical

// ConstraintKind is the kind of a table constraint.
type ConstraintKind string

const (
	ConstraintPrimaryKey ConstraintKind = "PRIMARY KEY"
	ConstraintUnique     ConstraintKind = "UNIQUE"
)

// Constraint is a table-level constraint over column indices.
type Constraint struct {
	Kind    ConstraintKind
	Columns []int
}

// ColumnDefault pairs a column name with its default expression.
type ColumnDefault struct {
	Name string
	Expr Expr
}

// CreateMemoryTable materializes its input as an in-memory table.
type CreateMemoryTable struct {
	Name           TableReference
	Constraints    []Constraint
	Input          Plan
	IfNotExists    bool
	OrReplace      bool
	Temporary      bool
	ColumnDefaults []ColumnDefault
}

func (p *CreateMemoryTable) Schema() *Schema  { return p.Input.Schema() }
func (p *CreateMemoryTable) Children() []Plan { return []Plan{p.Input} }
func (p *CreateMemoryTable) String() string   { return "CreateMemoryTable: " + p.Name.String() }
