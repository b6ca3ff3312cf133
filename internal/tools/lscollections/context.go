package lscollections

import (
	"context"
	"io"
	"os"

	"github.com/toki-take-home/fsdump/internal/firestore"
)

type Context struct {
	context.Context

	Source firestore.Source
	Out    io.Writer
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx, Out: os.Stdout}
}
