// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/newsdesk/pkg/uuidv7"
)

/*
TestNew checks that identifiers are unique v7 values.
*/
func TestNew(t *testing.T) {
	first := uuidv7.New()
	second := uuidv7.New()

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)

	id, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
