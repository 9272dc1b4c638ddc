// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/newsdesk/pkg/slice"
)

/*
TestHelpers covers Map and Filter.
*/
func TestHelpers(t *testing.T) {
	words := []string{"alpha", "beta", "avocado"}

	assert.Equal(t, []int{5, 4, 7}, slice.Map(words, func(s string) int { return len(s) }))
	assert.Nil(t, slice.Map[string, int](nil, func(s string) int { return len(s) }))

	assert.Equal(t, []string{"alpha", "avocado"}, slice.Filter(words, func(s string) bool {
		return strings.HasPrefix(s, "a")
	}))
}
