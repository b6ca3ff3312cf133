// Package firestoretest provides an in-memory firestore.Source for tests.
package firestoretest

import (
	"context"

	"github.com/toki-take-home/fsdump/internal/firestore"
	"golang.org/x/exp/slices"
	"google.golang.org/api/iterator"
)

var _ firestore.Source = (*MemorySource)(nil)

// MemorySource serves documents from memory in insertion order.
type MemorySource struct {
	Collections map[string][]firestore.Document

	// Err, if set, is returned by the iterator after FailAfter documents have been yielded.
	Err       error
	FailAfter int
}

// NewMemorySource returns an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{Collections: make(map[string][]firestore.Document)}
}

// Add appends a document with the given fields to a collection.
func (m *MemorySource) Add(collection, id string, fields map[string]firestore.Value) {
	if fields == nil {
		fields = map[string]firestore.Value{}
	}
	m.Collections[collection] = append(m.Collections[collection], firestore.Document{
		ID:     id,
		Path:   collection + "/" + id,
		Fields: fields,
	})
}

type memoryIterator struct {
	ctx       context.Context
	docs      []firestore.Document
	i         int
	err       error
	failAfter int
}

func (it *memoryIterator) Next() (firestore.Document, error) {
	if err := it.ctx.Err(); err != nil {
		return firestore.Document{}, firestore.Classify(err)
	}
	if it.err != nil && it.i >= it.failAfter {
		return firestore.Document{}, it.err
	}
	if it.i >= len(it.docs) {
		return firestore.Document{}, iterator.Done
	}
	d := it.docs[it.i]
	it.i++
	return d, nil
}

func (it *memoryIterator) Stop() {
	it.i = len(it.docs)
}

func (m *MemorySource) Documents(ctx context.Context, collection string) firestore.DocumentIterator {
	return &memoryIterator{
		ctx:       ctx,
		docs:      slices.Clone(m.Collections[collection]),
		err:       m.Err,
		failAfter: m.FailAfter,
	}
}

func (m *MemorySource) GetAll(ctx context.Context, collection string, ids []string) ([]firestore.Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]firestore.Document, len(ids))
	for i, id := range ids {
		out[i] = firestore.Document{ID: id, Path: collection + "/" + id}
		for _, d := range m.Collections[collection] {
			if d.ID == id {
				out[i] = d
				break
			}
		}
	}
	return out, nil
}

func (m *MemorySource) CollectionIDs(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]string, 0, len(m.Collections))
	for id := range m.Collections {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
