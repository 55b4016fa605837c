package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(25, 2, 10)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.Pages)

	assert.Equal(t, 1, NewPagination(10, 1, 10).Pages)
	assert.Equal(t, 0, NewPagination(0, 1, 10).Pages)
}

func TestNewPaginationZeroLimit(t *testing.T) {
	p := NewPagination(25, 1, 0)
	assert.Equal(t, 0, p.Pages)
	assert.Equal(t, int64(25), p.Total)
}
