package dumpcollection

import (
	"fmt"

	"github.com/segmentio/fasthash/jody"
	"github.com/toki-take-home/fsdump/internal/firestore"
	"github.com/toki-take-home/fsdump/internal/logger"
	"google.golang.org/api/iterator"
)

// Summary describes one completed dump.
type Summary struct {
	Documents int

	// Digest is a hash of every "id => repr" line in output order.
	// Two dumps of an unchanged collection have the same digest.
	Digest uint64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d documents, digest %016x", s.Documents, s.Digest)
}

// Dump prints every document of ctx.Collection, or only the documents named in ctx.IDs.
// Printing stops at the first error; lines already written stay written.
func Dump(ctx *Context) (Summary, error) {
	sum := Summary{Digest: jody.Init64}

	p, err := newPrinter(ctx.Format, ctx.Out)
	if err != nil {
		return sum, fmt.Errorf("Dump: %w", err)
	}

	emit := func(d firestore.Document) error {
		if err := p.Print(d); err != nil {
			return fmt.Errorf("Dump: error printing document '%s': %w", d.ID, err)
		}
		sum.Documents++
		sum.Digest = jody.AddString64(sum.Digest, d.String()+"\n")
		return nil
	}

	if len(ctx.IDs) > 0 {
		docs, err := ctx.Source.GetAll(ctx, ctx.Collection, ctx.IDs)
		if err != nil {
			return sum, fmt.Errorf("Dump: error getting documents from '%s': %w", ctx.Collection, err)
		}
		for _, d := range docs {
			if !d.Exists() {
				logger.Sugar.Warnw("document does not exist", "collection", ctx.Collection, "id", d.ID)
			}
			if err := emit(d); err != nil {
				return sum, err
			}
		}
	} else {
		iter := ctx.Source.Documents(ctx, ctx.Collection)
		defer iter.Stop()
		for {
			d, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return sum, fmt.Errorf("Dump: error reading collection '%s': %w", ctx.Collection, err)
			}
			if err := emit(d); err != nil {
				return sum, err
			}
		}
	}

	if err := p.Flush(); err != nil {
		return sum, fmt.Errorf("Dump: error flushing output: %w", err)
	}

	logger.Sugar.Infow("dumped collection",
		"collection", ctx.Collection,
		"documents", sum.Documents,
		"digest", fmt.Sprintf("%016x", sum.Digest),
	)
	return sum, nil
}
