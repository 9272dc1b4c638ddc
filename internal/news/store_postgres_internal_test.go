// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	titleExists  = "EXISTS (SELECT 1 FROM news.entrytitle t WHERE t.entryid = e.id"
	hiddenClause = "NOT EXISTS (SELECT 1 FROM news.entrycategory ec JOIN news.category c ON c.id = ec.categoryid WHERE ec.entryid = e.id AND c.hideonlist)"
	categoryJoin = "EXISTS (SELECT 1 FROM news.entrycategory ec JOIN news.category c ON c.id = ec.categoryid LEFT JOIN news.category p ON p.id = c.parentid WHERE ec.entryid = e.id"
)

/*
TestEntryConditions checks the WHERE clause and arguments built for each
listing filter.
*/
func TestEntryConditions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		sql    string
		args   []any
	}{
		{
			name:   "unfiltered",
			filter: Filter{},
			sql:    "",
		},
		{
			name:   "language",
			filter: Filter{Language: "en"},
			sql:    " WHERE " + titleExists + " AND t.language = $1)",
			args:   []any{"en"},
		},
		{
			name:   "published_any_language",
			filter: Filter{PublishedOnly: true, Now: now},
			sql:    " WHERE " + titleExists + " AND t.ispublished) AND (e.pubdate IS NULL OR e.pubdate <= $1)",
			args:   []any{now},
		},
		{
			name:   "published_in_language",
			filter: Filter{Language: "de", PublishedOnly: true, Now: now},
			sql:    " WHERE " + titleExists + " AND t.language = $1 AND t.ispublished) AND (e.pubdate IS NULL OR e.pubdate <= $2)",
			args:   []any{"de", now},
		},
		{
			name:   "hidden_categories",
			filter: Filter{ExcludeHidden: true},
			sql:    " WHERE " + hiddenClause,
		},
		{
			name:   "category_or_parent",
			filter: Filter{CategorySlug: "world"},
			sql:    " WHERE " + categoryJoin + " AND (c.slug = $1 OR p.slug = $1))",
			args:   []any{"world"},
		},
		{
			name:   "author",
			filter: Filter{AuthorID: "u-1"},
			sql:    " WHERE e.authorid = $1",
			args:   []any{"u-1"},
		},
		{
			name: "public_listing",
			filter: Filter{
				Language:      "en",
				PublishedOnly: true,
				Now:           now,
				ExcludeHidden: true,
				CategorySlug:  "world",
				AuthorID:      "u-1",
			},
			sql: " WHERE " + titleExists + " AND t.language = $1 AND t.ispublished)" +
				" AND (e.pubdate IS NULL OR e.pubdate <= $2)" +
				" AND " + hiddenClause +
				" AND " + categoryJoin + " AND (c.slug = $3 OR p.slug = $3))" +
				" AND e.authorid = $4",
			args: []any{"en", now, "world", "u-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where := entryConditions(tt.filter)

			assert.Equal(t, tt.sql, where.SQL())
			assert.Equal(t, tt.args, where.Args())
		})
	}
}

/*
TestEntryConditions_Paginate checks that LIMIT and OFFSET follow the filter
arguments.
*/
func TestEntryConditions_Paginate(t *testing.T) {
	where := entryConditions(Filter{Language: "en", CategorySlug: "world"})

	assert.Equal(t, " LIMIT $3 OFFSET $4", where.Paginate(10, 20))
	assert.Equal(t, []any{"en", "world", 10, 20}, where.Args())
}
