package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/backoffice/pkg/collection"
)

type item struct {
	id  string
	ref string
}

func TestMapUniqueKeepsFirstOccurrence(t *testing.T) {
	items := []item{{"1", "b"}, {"2", "a"}, {"3", "b"}}
	refs := collection.Unique(collection.Map(items, func(i item) string { return i.ref }))
	assert.Equal(t, []string{"b", "a"}, refs)
}

func TestUniqueEmpty(t *testing.T) {
	assert.Empty(t, collection.Unique([]string(nil)))
}

func TestKeyByLastWins(t *testing.T) {
	byRef := collection.KeyBy([]item{{"1", "b"}, {"2", "b"}}, func(i item) string { return i.ref })
	assert.Len(t, byRef, 1)
	assert.Equal(t, "2", byRef["b"].id)
}
