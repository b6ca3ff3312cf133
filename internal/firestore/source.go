package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// DocumentIterator yields documents one at a time.
// Next returns iterator.Done once the stream is exhausted.
type DocumentIterator interface {
	Next() (Document, error)
	Stop()
}

// Source is a read-only view of a document database.
type Source interface {
	// Documents streams every document in a collection. Each call starts a fresh query.
	Documents(ctx context.Context, collection string) DocumentIterator

	// GetAll fetches the named documents of a collection in one batch, in the order given.
	GetAll(ctx context.Context, collection string, ids []string) ([]Document, error)

	// CollectionIDs lists the top-level collections.
	CollectionIDs(ctx context.Context) ([]string, error)
}

// ClientSource reads through a Firestore client.
type ClientSource struct {
	Client *fs.Client
}

// NewClientSource wraps a client.
func NewClientSource(client *fs.Client) *ClientSource {
	return &ClientSource{Client: client}
}

type snapshotIterator struct {
	iter *fs.DocumentIterator
}

func (it *snapshotIterator) Next() (Document, error) {
	snap, err := it.iter.Next()
	if err == iterator.Done {
		return Document{}, iterator.Done
	}
	if err != nil {
		return Document{}, Classify(err)
	}
	return FromSnapshot(snap)
}

func (it *snapshotIterator) Stop() {
	it.iter.Stop()
}

// errIterator fails on every call to Next.
type errIterator struct {
	err error
}

func (it errIterator) Next() (Document, error) {
	return Document{}, it.err
}

func (it errIterator) Stop() {}

func (s *ClientSource) Documents(ctx context.Context, collection string) DocumentIterator {
	// Collection returns nil for a path with an empty segment or an even number of segments.
	col := s.Client.Collection(collection)
	if col == nil {
		return errIterator{err: fmt.Errorf("Documents: invalid collection path '%s'", collection)}
	}
	return &snapshotIterator{iter: col.Documents(ctx)}
}

func (s *ClientSource) GetAll(ctx context.Context, collection string, ids []string) ([]Document, error) {
	col := s.Client.Collection(collection)
	if col == nil {
		return nil, fmt.Errorf("GetAll: invalid collection path '%s'", collection)
	}
	refs := make([]*fs.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = col.Doc(id)
	}

	snaps, err := s.Client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("GetAll: unable to get documents from client: %w", Classify(err))
	}
	out := make([]Document, len(snaps))
	for i, snap := range snaps {
		d, err := FromSnapshot(snap)
		if err != nil {
			return nil, fmt.Errorf("GetAll: %w", err)
		}
		out[i] = d
	}
	return out, nil
}

func (s *ClientSource) CollectionIDs(ctx context.Context) ([]string, error) {
	iter := s.Client.Collections(ctx)
	ids := make([]string, 0)
	for {
		ref, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CollectionIDs: error listing collections: %w", Classify(err))
		}
		ids = append(ids, ref.ID)
	}
	return ids, nil
}
