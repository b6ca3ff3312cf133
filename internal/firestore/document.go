package firestore

import (
	"encoding/json"
	"fmt"

	fs "cloud.google.com/go/firestore"
)

// DEFAULT_COLLECTION is the collection read when none is given.
const DEFAULT_COLLECTION = "customers"

// Document is a read-only copy of one Firestore document.
type Document struct {
	// ID is the last path segment of the document.
	ID string `json:"id"`

	// Path is the full document path relative to the database root.
	Path string `json:"path"`

	// Fields holds the document data. It is nil when the document does not exist.
	Fields map[string]Value `json:"fields"`
}

// FromSnapshot copies a snapshot into a Document.
func FromSnapshot(snap *fs.DocumentSnapshot) (Document, error) {
	d := Document{ID: snap.Ref.ID, Path: RelativePath(snap.Ref.Path)}
	if !snap.Exists() {
		return d, nil
	}
	fields, err := FromData(snap.Data())
	if err != nil {
		return d, fmt.Errorf("FromSnapshot: document %s: %w", snap.Ref.Path, err)
	}
	d.Fields = fields
	return d, nil
}

// Exists reports whether the document existed when it was read.
func (d Document) Exists() bool {
	return d.Fields != nil
}

// String renders the document as "id => {fields}".
func (d Document) String() string {
	return d.ID + " => " + ReprFields(d.Fields)
}

// JSONString renders the document as "id => json".
func (d Document) JSONString() (string, error) {
	b, err := json.Marshal(d.Fields)
	if err != nil {
		return "", fmt.Errorf("JSONString: document %s: %w", d.Path, err)
	}
	return d.ID + " => " + string(b), nil
}
