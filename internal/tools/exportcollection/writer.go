package exportcollection

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// gsWriter closes the storage client once the object is committed.
type gsWriter struct {
	*storage.Writer
	client *storage.Client
}

func (w *gsWriter) Close() error {
	err := w.Writer.Close()
	if cerr := w.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func openFileOrGSWriter(ctx context.Context, f string) (io.WriteCloser, error) {
	u, err := url.Parse(f)
	if err != nil {
		return nil, err
	}
	var w io.WriteCloser
	switch u.Scheme {
	case "gs":
		if u.Host == "" {
			return nil, fmt.Errorf("no bucket in '%s'", f)
		}
		gsClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		bucket := gsClient.Bucket(u.Host)
		// URL path has leading slash, but GS expects path relative to bucket.
		path := strings.TrimPrefix(u.Path, "/")
		obj := bucket.Object(path)
		w = &gsWriter{Writer: obj.NewWriter(ctx), client: gsClient}

	case "file":
		fallthrough
	case "":
		w, err = os.Create(u.Path)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unable to determine how to open '%s'", f)
	}

	return w, nil
}
