// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query assembles WHERE clauses with positional PostgreSQL arguments.

	where := query.New()
	where.Add("e.authorid = " + where.Arg(authorID))
	sql := "SELECT ... FROM news.entry e" + where.SQL()
	rows, err := pool.Query(ctx, sql, where.Args()...)
*/
package query

import (
	"strconv"
	"strings"
)

// Builder collects AND-ed conditions and their arguments.
type Builder struct {
	clauses []string
	args    []any
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Arg registers value and returns its placeholder ($1, $2, ...).
func (b *Builder) Arg(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// Add appends a condition. Placeholders inside it must come from [Builder.Arg].
func (b *Builder) Add(clause string) *Builder {
	b.clauses = append(b.clauses, clause)
	return b
}

// SQL renders " WHERE a AND b", or "" without conditions.
func (b *Builder) SQL() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// Args returns the arguments in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}

// Paginate registers limit and offset and returns the LIMIT/OFFSET suffix.
func (b *Builder) Paginate(limit, offset int) string {
	return " LIMIT " + b.Arg(limit) + " OFFSET " + b.Arg(offset)
}
