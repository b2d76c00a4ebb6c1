package ast

import "testing"

func boolPtr(b bool) *bool { return &b }

func simpleSelect(cols ...string) *Select {
	items := make([]SelectItem, len(cols))
	for i, c := range cols {
		items[i] = &UnnamedExpr{Expr: NewIdentifier(c)}
	}
	return &Select{
		Projection: items,
		From: []TableWithJoins{
			{Relation: &Table{Name: NewObjectName("t")}},
		},
	}
}

func TestRenderSelect(t *testing.T) {
	tests := []struct {
		name string
		node interface{ String() string }
		want string
	}{
		{
			name: "projection with alias and filter",
			node: &Select{
				Projection: []SelectItem{
					&UnnamedExpr{Expr: NewIdentifier("a")},
					&ExprWithAlias{Expr: NewIdentifier("b"), Alias: NewIdent("c")},
				},
				From:      []TableWithJoins{{Relation: &Table{Name: NewObjectName("users")}}},
				Selection: &BinaryExpr{Left: NewIdentifier("a"), Op: OpGt, Right: NewNumber("1")},
			},
			want: "SELECT a, b AS c FROM users WHERE a > 1",
		},
		{
			name: "distinct on",
			node: &Select{
				Distinct:   &Distinct{On: []Expr{NewIdentifier("a")}},
				Projection: []SelectItem{&Wildcard{}},
				From:       []TableWithJoins{{Relation: &Table{Name: NewObjectName("t")}}},
			},
			want: "SELECT DISTINCT ON (a) * FROM t",
		},
		{
			name: "group by and having",
			node: &Select{
				Projection: []SelectItem{&UnnamedExpr{Expr: NewIdentifier("a")}},
				From:       []TableWithJoins{{Relation: &Table{Name: NewObjectName("t")}}},
				GroupBy:    &GroupByExpressions{Exprs: []Expr{NewIdentifier("a")}},
				Having:     &BinaryExpr{Left: NewIdentifier("a"), Op: OpLt, Right: NewNumber("5")},
			},
			want: "SELECT a FROM t GROUP BY a HAVING a < 5",
		},
		{
			name: "empty group by renders nothing",
			node: &Select{
				Projection: []SelectItem{&Wildcard{}},
				From:       []TableWithJoins{{Relation: &Table{Name: NewObjectName("t")}}},
				GroupBy:    &GroupByExpressions{},
			},
			want: "SELECT * FROM t",
		},
		{
			name: "select into",
			node: &Select{
				Projection: []SelectItem{&Wildcard{}},
				Into:       &SelectInto{Name: NewObjectName("copy")},
				From:       []TableWithJoins{{Relation: &Table{Name: NewObjectName("t")}}},
			},
			want: "SELECT * INTO copy FROM t",
		},
		{
			name: "qualified wildcard and top",
			node: &Select{
				Top:        &Top{Quantity: NewNumber("3"), WithTies: true},
				Projection: []SelectItem{&QualifiedWildcard{Qualifier: NewObjectName("t")}},
				From:       []TableWithJoins{{Relation: &Table{Name: NewObjectName("t")}}},
			},
			want: "SELECT TOP 3 WITH TIES t.* FROM t",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderQueryClauses(t *testing.T) {
	asc := OrderByOptions{Asc: boolPtr(true)}
	tests := []struct {
		name string
		q    *Query
		want string
	}{
		{
			name: "order by limit offset",
			q: &Query{
				Body: simpleSelect("a"),
				OrderBy: &OrderBy{Kind: &OrderByExprList{Exprs: []OrderByExpr{
					{Expr: NewIdentifier("a"), Options: asc},
				}}},
				Limit: &LimitOffset{
					Limit:  NewNumber("10"),
					Offset: &Offset{Value: NewNumber("5"), Rows: OffsetRowsRows},
				},
			},
			want: "SELECT a FROM t ORDER BY a ASC LIMIT 10 OFFSET 5 ROWS",
		},
		{
			name: "offset comma limit",
			q: &Query{
				Body:  simpleSelect("a"),
				Limit: &OffsetCommaLimit{Offset: NewNumber("5"), Limit: NewNumber("10")},
			},
			want: "SELECT a FROM t LIMIT 5, 10",
		},
		{
			name: "empty limit clause renders nothing",
			q: &Query{
				Body:  simpleSelect("a"),
				Limit: &LimitOffset{},
			},
			want: "SELECT a FROM t",
		},
		{
			name: "limit by",
			q: &Query{
				Body: simpleSelect("a"),
				Limit: &LimitOffset{
					Limit:   NewNumber("2"),
					LimitBy: []Expr{NewIdentifier("a")},
				},
			},
			want: "SELECT a FROM t LIMIT 2 BY a",
		},
		{
			name: "order by all desc nulls last",
			q: &Query{
				Body: simpleSelect("a"),
				OrderBy: &OrderBy{Kind: &OrderByAll{Options: OrderByOptions{
					Asc:        boolPtr(false),
					NullsFirst: boolPtr(false),
				}}},
			},
			want: "SELECT a FROM t ORDER BY ALL DESC NULLS LAST",
		},
		{
			name: "with clause",
			q: &Query{
				With: &With{CTEs: []*CTE{{
					Alias: TableAlias{Name: NewIdent("x"), Columns: []Ident{NewIdent("a")}},
					Query: &Query{Body: simpleSelect("a")},
				}}},
				Body: &Select{
					Projection: []SelectItem{&Wildcard{}},
					From:       []TableWithJoins{{Relation: &Table{Name: NewObjectName("x")}}},
				},
			},
			want: "WITH x (a) AS (SELECT a FROM t) SELECT * FROM x",
		},
		{
			name: "union all of selects",
			q: &Query{
				Body: &SetOperation{
					Op:         Union,
					Quantifier: SetQuantifierAll,
					Left:       simpleSelect("a"),
					Right:      simpleSelect("b"),
				},
			},
			want: "SELECT a FROM t UNION ALL SELECT b FROM t",
		},
		{
			name: "fetch and lock",
			q: &Query{
				Body:  simpleSelect("a"),
				Fetch: &Fetch{Quantity: NewNumber("5"), WithTies: true},
				Locks: []LockClause{{Type: LockUpdate, NonBlock: NonBlockSkipLocked}},
			},
			want: "SELECT a FROM t FETCH FIRST 5 ROWS WITH TIES FOR UPDATE SKIP LOCKED",
		},
		{
			name: "values body",
			q: &Query{
				Body: &Values{Rows: [][]Expr{
					{NewNumber("1"), NewNumber("2")},
					{NewNumber("3"), NewNumber("4")},
				}},
			},
			want: "VALUES (1, 2), (3, 4)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderRelations(t *testing.T) {
	tests := []struct {
		name string
		node TableFactor
		want string
	}{
		{
			name: "table with alias",
			node: &Table{
				Name:  NewObjectName("s", "t"),
				Alias: &TableAlias{Name: NewIdent("x")},
			},
			want: "s.t AS x",
		},
		{
			name: "table function",
			node: &Table{
				Name: NewObjectName("generate_series"),
				Args: []FunctionArg{{Expr: NewNumber("1")}, {Expr: NewNumber("10")}},
			},
			want: "generate_series(1, 10)",
		},
		{
			name: "derived lateral",
			node: &Derived{
				Lateral:  true,
				Subquery: &Query{Body: simpleSelect("a")},
				Alias:    &TableAlias{Name: NewIdent("d")},
			},
			want: "LATERAL (SELECT a FROM t) AS d",
		},
		{
			name: "unnest with offset alias",
			node: &Unnest{
				ArrayExprs:      []Expr{NewIdentifier("arr")},
				Alias:           &TableAlias{Name: NewIdent("u")},
				WithOffset:      true,
				WithOffsetAlias: &Ident{Name: "pos"},
			},
			want: "UNNEST(arr) AS u WITH OFFSET AS pos",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderJoins(t *testing.T) {
	base := TableWithJoins{
		Relation: &Table{Name: NewObjectName("a")},
		Joins: []Join{
			{
				Relation: &Table{Name: NewObjectName("b")},
				Kind:     JoinLeft,
				On: &BinaryExpr{
					Left:  &CompoundIdentifier{Idents: []Ident{NewIdent("a"), NewIdent("id")}},
					Op:    OpEq,
					Right: &CompoundIdentifier{Idents: []Ident{NewIdent("b"), NewIdent("id")}},
				},
			},
			{
				Relation: &Table{Name: NewObjectName("c")},
				Kind:     JoinInner,
				Using:    []Ident{NewIdent("id")},
			},
			{
				Relation: &Table{Name: NewObjectName("d")},
				Kind:     JoinCross,
			},
		},
	}
	want := "a LEFT JOIN b ON a.id = b.id JOIN c USING(id) CROSS JOIN d"
	if got := base.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRenderIdentQuoting(t *testing.T) {
	tests := []struct {
		name string
		id   Ident
		want string
	}{
		{"unquoted", Ident{Name: "col"}, "col"},
		{"double quoted", Ident{Name: "order", Quote: '"'}, `"order"`},
		{"backtick", Ident{Name: "from", Quote: '`'}, "`from`"},
		{"embedded quote doubled", Ident{Name: `we"ird`, Quote: '"'}, `"we""ird"`},
		{"brackets", Ident{Name: "select", Quote: '['}, "[select]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderLiterals(t *testing.T) {
	if got := NewString("it's").String(); got != "'it''s'" {
		t.Errorf("string literal = %q", got)
	}
	null := &Literal{Kind: LiteralNull}
	if got := null.String(); got != "NULL" {
		t.Errorf("null literal = %q", got)
	}
	b := &Literal{Kind: LiteralBool, Value: "TRUE"}
	if got := b.String(); got != "TRUE" {
		t.Errorf("bool literal = %q", got)
	}
}
