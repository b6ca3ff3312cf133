package firestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTree(t *testing.T) {
	d := Document{
		ID:   "alice",
		Path: "customers/alice",
		Fields: map[string]Value{
			"name":    String("Alice"),
			"address": Map(map[string]Value{"city": String("Sofia"), "zip": Integer(1000)}),
			"points":  Array(String("1234")),
			"owner":   Reference("owners/strahil"),
		},
	}
	want := "alice\n" +
		"├ address\n" +
		"  ├ city: 'Sofia'\n" +
		"  └ zip: 1000\n" +
		"├ name: 'Alice'\n" +
		"├ owner: →(owners/strahil)\n" +
		"└ points\n" +
		"  └ [0]: '1234'"
	assert.Equal(t, want, Tree(d))
}

func TestTreeMissingDocument(t *testing.T) {
	assert.Equal(t, "ghost (missing)", Tree(Document{ID: "ghost"}))
}

func TestDocumentString(t *testing.T) {
	d := Document{ID: "alice", Fields: map[string]Value{"name": String("Alice"), "age": Integer(30)}}
	assert.Equal(t, "alice => {'age': 30, 'name': 'Alice'}", d.String())

	s, err := d.JSONString()
	assert.NoError(t, err)
	assert.Equal(t, `alice => {"age":30,"name":"Alice"}`, s)
}
