// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestNullableViewer covers the anonymous-viewer parameter: empty input
must become a typed NULL, never an empty string a uuid column would
reject.
*/
func TestNullableViewer(t *testing.T) {
	assert.Nil(t, nullableViewer(""))
	assert.Equal(t, "user-1", nullableViewer("user-1"))
}
