package dumpcollection

import (
	"context"
	"io"
	"os"

	"github.com/toki-take-home/fsdump/internal/firestore"
)

type Context struct {
	context.Context

	Source     firestore.Source
	Collection string
	IDs        []string
	Format     Format
	Out        io.Writer
}

func NewContext(ctx context.Context) *Context {
	return &Context{
		Context:    ctx,
		Collection: firestore.DEFAULT_COLLECTION,
		Format:     FormatRepr,
		Out:        os.Stdout,
	}
}
