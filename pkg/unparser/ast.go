// Package unparser provides mutable builders for reassembling query syntax
// trees from logical plans. A plan walker fills the builders top-down as it
// descends the operator tree; Build validates required fields and emits the
// finished node.
//
// Builders are not safe for concurrent use.
package unparser

import "github.com/leapstack-labs/sqlrel/pkg/ast"

// QueryBuilder accumulates the parts of a query expression.
type QueryBuilder struct {
	with        *ast.With
	body        ast.SetExpr
	orderByKind ast.OrderByKind
	limit       ast.Expr
	limitBy     []ast.Expr
	offset      *ast.Offset
	fetch       *ast.Fetch
	locks       []ast.LockClause
	forClause   *ast.ForClause
	// distinctUnion records that a set operation below must render as
	// UNION rather than UNION ALL.
	distinctUnion bool
}

// NewQueryBuilder returns an empty QueryBuilder.
func NewQueryBuilder() *QueryBuilder { return &QueryBuilder{} }

func (b *QueryBuilder) With(value *ast.With) *QueryBuilder {
	b.with = value
	return b
}

func (b *QueryBuilder) Body(value ast.SetExpr) *QueryBuilder {
	b.body = value
	return b
}

// TakeBody removes and returns the body, leaving it unset.
func (b *QueryBuilder) TakeBody() ast.SetExpr {
	body := b.body
	b.body = nil
	return body
}

func (b *QueryBuilder) OrderBy(value ast.OrderByKind) *QueryBuilder {
	b.orderByKind = value
	return b
}

func (b *QueryBuilder) Limit(value ast.Expr) *QueryBuilder {
	b.limit = value
	return b
}

func (b *QueryBuilder) LimitBy(value []ast.Expr) *QueryBuilder {
	b.limitBy = value
	return b
}

func (b *QueryBuilder) Offset(value *ast.Offset) *QueryBuilder {
	b.offset = value
	return b
}

func (b *QueryBuilder) Fetch(value *ast.Fetch) *QueryBuilder {
	b.fetch = value
	return b
}

func (b *QueryBuilder) Locks(value []ast.LockClause) *QueryBuilder {
	b.locks = value
	return b
}

func (b *QueryBuilder) ForClause(value *ast.ForClause) *QueryBuilder {
	b.forClause = value
	return b
}

// DistinctUnion marks the query as a distinct set union.
func (b *QueryBuilder) DistinctUnion() *QueryBuilder {
	b.distinctUnion = true
	return b
}

// IsDistinctUnion reports whether DistinctUnion was called.
func (b *QueryBuilder) IsDistinctUnion() bool { return b.distinctUnion }

// Build assembles the query. The body is required. The limit clause is
// always emitted in the LIMIT/OFFSET shape, even when every part is empty.
func (b *QueryBuilder) Build() (*ast.Query, error) {
	if b.body == nil {
		return nil, &UninitializedFieldError{Field: "body"}
	}
	var orderBy *ast.OrderBy
	if b.orderByKind != nil {
		orderBy = &ast.OrderBy{Kind: b.orderByKind}
	}
	return &ast.Query{
		With:    b.with,
		Body:    b.body,
		OrderBy: orderBy,
		Limit: &ast.LimitOffset{
			Limit:   b.limit,
			Offset:  b.offset,
			LimitBy: b.limitBy,
		},
		Fetch:     b.fetch,
		Locks:     b.locks,
		ForClause: b.forClause,
	}, nil
}

// SelectBuilder accumulates the parts of a SELECT core.
type SelectBuilder struct {
	distinct       *ast.Distinct
	top            *ast.Top
	projection     []ast.SelectItem
	into           *ast.SelectInto
	from           []*TableWithJoinsBuilder
	lateralViews   []ast.LateralView
	selection      ast.Expr
	groupBy        ast.GroupByExpr
	clusterBy      []ast.Expr
	distributeBy   []ast.Expr
	sortBy         []ast.Expr
	having         ast.Expr
	namedWindow    []ast.NamedWindowDefinition
	qualify        ast.Expr
	valueTableMode ast.ValueTableMode
	flavor         *ast.SelectFlavor
}

// NewSelectBuilder returns a SelectBuilder with an empty GROUP BY list and
// the standard clause order.
func NewSelectBuilder() *SelectBuilder {
	flavor := ast.SelectFlavorStandard
	return &SelectBuilder{
		groupBy: &ast.GroupByExpressions{},
		flavor:  &flavor,
	}
}

func (b *SelectBuilder) Distinct(value *ast.Distinct) *SelectBuilder {
	b.distinct = value
	return b
}

func (b *SelectBuilder) Top(value *ast.Top) *SelectBuilder {
	b.top = value
	return b
}

func (b *SelectBuilder) Projection(value []ast.SelectItem) *SelectBuilder {
	b.projection = value
	return b
}

// PopProjections removes and returns the accumulated projection.
func (b *SelectBuilder) PopProjections() []ast.SelectItem {
	items := b.projection
	b.projection = nil
	return items
}

// AlreadyProjected reports whether a projection has been set.
func (b *SelectBuilder) AlreadyProjected() bool { return len(b.projection) > 0 }

func (b *SelectBuilder) Into(value *ast.SelectInto) *SelectBuilder {
	b.into = value
	return b
}

func (b *SelectBuilder) From(value []*TableWithJoinsBuilder) *SelectBuilder {
	b.from = value
	return b
}

// PushFrom appends one FROM element builder.
func (b *SelectBuilder) PushFrom(value *TableWithJoinsBuilder) *SelectBuilder {
	b.from = append(b.from, value)
	return b
}

// PopFrom removes and returns the last FROM element builder, or nil.
func (b *SelectBuilder) PopFrom() *TableWithJoinsBuilder {
	if len(b.from) == 0 {
		return nil
	}
	last := b.from[len(b.from)-1]
	b.from = b.from[:len(b.from)-1]
	return last
}

func (b *SelectBuilder) LateralViews(value []ast.LateralView) *SelectBuilder {
	b.lateralViews = value
	return b
}

// Selection adds a filter predicate. An existing predicate is kept and the
// two are combined with AND, since filters can arrive from several plan
// nodes (pushed-down scan filters plus Filter operators). A nil value is a
// no-op.
func (b *SelectBuilder) Selection(value ast.Expr) *SelectBuilder {
	switch {
	case b.selection != nil && value != nil:
		b.selection = &ast.BinaryExpr{Left: b.selection, Op: ast.OpAnd, Right: value}
	case value != nil:
		b.selection = value
	}
	return b
}

// ReplaceMark substitutes every occurrence of existing inside the current
// selection with value, comparing structurally. Used to patch mark-join
// placeholder expressions once the real join condition is known.
func (b *SelectBuilder) ReplaceMark(existing, value ast.Expr) *SelectBuilder {
	if b.selection == nil {
		return b
	}
	b.selection = ast.RewriteExprs(b.selection, func(e ast.Expr) ast.Expr {
		if ast.ExprEqual(e, existing) {
			return value
		}
		return e
	})
	return b
}

func (b *SelectBuilder) GroupBy(value ast.GroupByExpr) *SelectBuilder {
	b.groupBy = value
	return b
}

func (b *SelectBuilder) ClusterBy(value []ast.Expr) *SelectBuilder {
	b.clusterBy = value
	return b
}

func (b *SelectBuilder) DistributeBy(value []ast.Expr) *SelectBuilder {
	b.distributeBy = value
	return b
}

func (b *SelectBuilder) SortBy(value []ast.Expr) *SelectBuilder {
	b.sortBy = value
	return b
}

func (b *SelectBuilder) Having(value ast.Expr) *SelectBuilder {
	b.having = value
	return b
}

func (b *SelectBuilder) NamedWindow(value []ast.NamedWindowDefinition) *SelectBuilder {
	b.namedWindow = value
	return b
}

func (b *SelectBuilder) Qualify(value ast.Expr) *SelectBuilder {
	b.qualify = value
	return b
}

func (b *SelectBuilder) ValueTableMode(value ast.ValueTableMode) *SelectBuilder {
	b.valueTableMode = value
	return b
}

func (b *SelectBuilder) Flavor(value ast.SelectFlavor) *SelectBuilder {
	b.flavor = &value
	return b
}

// Build assembles the SELECT core. FROM elements whose relation resolved to
// the empty variant are dropped.
func (b *SelectBuilder) Build() (*ast.Select, error) {
	if b.groupBy == nil {
		return nil, &UninitializedFieldError{Field: "group_by"}
	}
	if b.flavor == nil {
		return nil, &UninitializedFieldError{Field: "flavor"}
	}
	var from []ast.TableWithJoins
	for _, fb := range b.from {
		twj, err := fb.Build()
		if err != nil {
			return nil, err
		}
		if twj != nil {
			from = append(from, *twj)
		}
	}
	return &ast.Select{
		Distinct:       b.distinct,
		Top:            b.top,
		Projection:     b.projection,
		Into:           b.into,
		From:           from,
		LateralViews:   b.lateralViews,
		Selection:      b.selection,
		GroupBy:        b.groupBy,
		ClusterBy:      b.clusterBy,
		DistributeBy:   b.distributeBy,
		SortBy:         b.sortBy,
		Having:         b.having,
		NamedWindows:   b.namedWindow,
		Qualify:        b.qualify,
		ValueTableMode: b.valueTableMode,
		Flavor:         *b.flavor,
	}, nil
}

// TableWithJoinsBuilder accumulates one FROM element.
type TableWithJoinsBuilder struct {
	relation *RelationBuilder
	joins    []ast.Join
}

// NewTableWithJoinsBuilder returns an empty TableWithJoinsBuilder.
func NewTableWithJoinsBuilder() *TableWithJoinsBuilder { return &TableWithJoinsBuilder{} }

func (b *TableWithJoinsBuilder) Relation(value *RelationBuilder) *TableWithJoinsBuilder {
	b.relation = value
	return b
}

func (b *TableWithJoinsBuilder) Joins(value []ast.Join) *TableWithJoinsBuilder {
	b.joins = value
	return b
}

// PushJoin appends one join.
func (b *TableWithJoinsBuilder) PushJoin(value ast.Join) *TableWithJoinsBuilder {
	b.joins = append(b.joins, value)
	return b
}

// Build assembles the FROM element. A relation that resolved to the empty
// variant yields (nil, nil) so callers can drop the element entirely.
func (b *TableWithJoinsBuilder) Build() (*ast.TableWithJoins, error) {
	if b.relation == nil {
		return nil, &UninitializedFieldError{Field: "relation"}
	}
	factor, err := b.relation.Build()
	if err != nil {
		return nil, err
	}
	if factor == nil {
		return nil, nil
	}
	return &ast.TableWithJoins{Relation: factor, Joins: b.joins}, nil
}

// RelationBuilder holds the active relation variant of a FROM element:
// a named table, a derived subquery, an UNNEST, or the explicit empty
// relation.
type RelationBuilder struct {
	relation tableFactorBuilder
}

// tableFactorBuilder is the closed set of relation variants.
type tableFactorBuilder interface {
	buildFactor() (ast.TableFactor, error)
	setAlias(alias *ast.TableAlias)
}

// NewRelationBuilder returns a RelationBuilder with no variant selected.
func NewRelationBuilder() *RelationBuilder { return &RelationBuilder{} }

// HasRelation reports whether any variant has been selected.
func (b *RelationBuilder) HasRelation() bool { return b.relation != nil }

func (b *RelationBuilder) Table(value *TableRelationBuilder) *RelationBuilder {
	b.relation = value
	return b
}

func (b *RelationBuilder) Derived(value *DerivedRelationBuilder) *RelationBuilder {
	b.relation = value
	return b
}

func (b *RelationBuilder) Unnest(value *UnnestRelationBuilder) *RelationBuilder {
	b.relation = value
	return b
}

// Empty selects the empty relation variant; Build will yield no factor.
func (b *RelationBuilder) Empty() *RelationBuilder {
	b.relation = emptyRelation{}
	return b
}

// Alias forwards the alias to the active variant. Selecting a new variant
// discards a previously forwarded alias. No-op for the empty variant or
// when nothing is selected.
func (b *RelationBuilder) Alias(value *ast.TableAlias) *RelationBuilder {
	if b.relation != nil {
		b.relation.setAlias(value)
	}
	return b
}

// Build resolves the active variant. The empty variant yields (nil, nil);
// an unselected builder is an error.
func (b *RelationBuilder) Build() (ast.TableFactor, error) {
	if b.relation == nil {
		return nil, &UninitializedFieldError{Field: "relation"}
	}
	return b.relation.buildFactor()
}

type emptyRelation struct{}

func (emptyRelation) buildFactor() (ast.TableFactor, error) { return nil, nil }
func (emptyRelation) setAlias(*ast.TableAlias)              {}

// TableRelationBuilder builds a named table relation.
type TableRelationBuilder struct {
	name       *ast.ObjectName
	alias      *ast.TableAlias
	args       []ast.FunctionArg // nil means plain table, not a table function
	withHints  []ast.Expr
	version    *ast.TableVersion
	partitions []ast.Ident
	indexHints []ast.TableIndexHint
}

// NewTableRelationBuilder returns an empty TableRelationBuilder.
func NewTableRelationBuilder() *TableRelationBuilder { return &TableRelationBuilder{} }

func (b *TableRelationBuilder) Name(value ast.ObjectName) *TableRelationBuilder {
	b.name = &value
	return b
}

func (b *TableRelationBuilder) Alias(value *ast.TableAlias) *TableRelationBuilder {
	b.alias = value
	return b
}

func (b *TableRelationBuilder) Args(value []ast.FunctionArg) *TableRelationBuilder {
	b.args = value
	return b
}

func (b *TableRelationBuilder) WithHints(value []ast.Expr) *TableRelationBuilder {
	b.withHints = value
	return b
}

func (b *TableRelationBuilder) Version(value *ast.TableVersion) *TableRelationBuilder {
	b.version = value
	return b
}

func (b *TableRelationBuilder) Partitions(value []ast.Ident) *TableRelationBuilder {
	b.partitions = value
	return b
}

func (b *TableRelationBuilder) IndexHints(value []ast.TableIndexHint) *TableRelationBuilder {
	b.indexHints = value
	return b
}

func (b *TableRelationBuilder) setAlias(alias *ast.TableAlias) { b.alias = alias }

// Build assembles the table factor. The name is required.
func (b *TableRelationBuilder) Build() (ast.TableFactor, error) { return b.buildFactor() }

func (b *TableRelationBuilder) buildFactor() (ast.TableFactor, error) {
	if b.name == nil {
		return nil, &UninitializedFieldError{Field: "name"}
	}
	return &ast.Table{
		Name:       *b.name,
		Alias:      b.alias,
		Args:       b.args,
		WithHints:  b.withHints,
		Version:    b.version,
		Partitions: b.partitions,
		IndexHints: b.indexHints,
	}, nil
}

// DerivedRelationBuilder builds a parenthesized subquery relation.
type DerivedRelationBuilder struct {
	lateral  *bool
	subquery *ast.Query
	alias    *ast.TableAlias
}

// NewDerivedRelationBuilder returns an empty DerivedRelationBuilder.
func NewDerivedRelationBuilder() *DerivedRelationBuilder { return &DerivedRelationBuilder{} }

func (b *DerivedRelationBuilder) Lateral(value bool) *DerivedRelationBuilder {
	b.lateral = &value
	return b
}

func (b *DerivedRelationBuilder) Subquery(value *ast.Query) *DerivedRelationBuilder {
	b.subquery = value
	return b
}

func (b *DerivedRelationBuilder) Alias(value *ast.TableAlias) *DerivedRelationBuilder {
	b.alias = value
	return b
}

func (b *DerivedRelationBuilder) setAlias(alias *ast.TableAlias) { b.alias = alias }

// Build assembles the derived table factor. The lateral flag and the
// subquery are required.
func (b *DerivedRelationBuilder) Build() (ast.TableFactor, error) { return b.buildFactor() }

func (b *DerivedRelationBuilder) buildFactor() (ast.TableFactor, error) {
	if b.lateral == nil {
		return nil, &UninitializedFieldError{Field: "lateral"}
	}
	if b.subquery == nil {
		return nil, &UninitializedFieldError{Field: "subquery"}
	}
	return &ast.Derived{
		Lateral:  *b.lateral,
		Subquery: b.subquery,
		Alias:    b.alias,
	}, nil
}

// UnnestRelationBuilder builds an UNNEST relation. Every field is
// optional.
type UnnestRelationBuilder struct {
	alias           *ast.TableAlias
	arrayExprs      []ast.Expr
	withOffset      bool
	withOffsetAlias *ast.Ident
	withOrdinality  bool
}

// NewUnnestRelationBuilder returns an empty UnnestRelationBuilder.
func NewUnnestRelationBuilder() *UnnestRelationBuilder { return &UnnestRelationBuilder{} }

func (b *UnnestRelationBuilder) Alias(value *ast.TableAlias) *UnnestRelationBuilder {
	b.alias = value
	return b
}

func (b *UnnestRelationBuilder) ArrayExprs(value []ast.Expr) *UnnestRelationBuilder {
	b.arrayExprs = value
	return b
}

func (b *UnnestRelationBuilder) WithOffset(value bool) *UnnestRelationBuilder {
	b.withOffset = value
	return b
}

func (b *UnnestRelationBuilder) WithOffsetAlias(value *ast.Ident) *UnnestRelationBuilder {
	b.withOffsetAlias = value
	return b
}

func (b *UnnestRelationBuilder) WithOrdinality(value bool) *UnnestRelationBuilder {
	b.withOrdinality = value
	return b
}

func (b *UnnestRelationBuilder) setAlias(alias *ast.TableAlias) { b.alias = alias }

// Build assembles the UNNEST table factor.
func (b *UnnestRelationBuilder) Build() (ast.TableFactor, error) { return b.buildFactor() }

func (b *UnnestRelationBuilder) buildFactor() (ast.TableFactor, error) {
	return &ast.Unnest{
		Alias:           b.alias,
		ArrayExprs:      b.arrayExprs,
		WithOffset:      b.withOffset,
		WithOffsetAlias: b.withOffsetAlias,
		WithOrdinality:  b.withOrdinality,
	}, nil
}
