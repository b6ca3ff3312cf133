package exportcollection

import (
	"context"
	"io"
	"os"

	"github.com/toki-take-home/fsdump/internal/firestore"
)

type Context struct {
	context.Context

	DryRun     bool
	NoProgress bool
	Source     firestore.Source
	Collection string
	Format     Format
	Output     string

	// Stdout receives the export when there is no Output or on a dry run.
	Stdout io.Writer

	// Progress receives the progress bar.
	Progress io.Writer
}

func NewContext(ctx context.Context) *Context {
	return &Context{
		Context:    ctx,
		Collection: firestore.DEFAULT_COLLECTION,
		Format:     FormatJSONL,
		Stdout:     os.Stdout,
		Progress:   os.Stderr,
	}
}
