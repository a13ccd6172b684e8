package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	id   int
	name string
}

func TestIndex(t *testing.T) {
	rows := []row{{1, "a"}, {2, "b"}, {1, "dup"}, {0, "skipped"}}
	idx := NewIndex(rows, func(r row) (int, bool) { return r.id, r.id != 0 })

	assert.Equal(t, 2, idx.Len())

	got, ok := idx.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", got.name, "first item wins")

	assert.False(t, idx.Has(0))
	assert.Equal(t, []int{1}, idx.Duplicates())
}

func TestIndex_Nil(t *testing.T) {
	var idx *Index[string, row]

	_, ok := idx.Get("x")
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
	assert.Nil(t, idx.Duplicates())
}
