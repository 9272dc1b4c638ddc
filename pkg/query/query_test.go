// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/newsdesk/pkg/query"
)

/*
TestBuilder checks placeholder numbering and clause rendering.
*/
func TestBuilder(t *testing.T) {
	empty := query.New()
	assert.Equal(t, "", empty.SQL())
	assert.Empty(t, empty.Args())

	where := query.New()
	where.Add("t.language = " + where.Arg("en"))
	where.Add("e.authorid = " + where.Arg("u-1"))
	suffix := where.Paginate(10, 20)

	assert.Equal(t, " WHERE t.language = $1 AND e.authorid = $2", where.SQL())
	assert.Equal(t, " LIMIT $3 OFFSET $4", suffix)
	assert.Equal(t, []any{"en", "u-1", 10, 20}, where.Args())
}
