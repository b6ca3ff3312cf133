package exportcollection

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toki-take-home/fsdump/internal/firestore"
	"github.com/toki-take-home/fsdump/internal/firestore/firestoretest"
	excelize "github.com/xuri/excelize/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func usage() *firestoretest.MemorySource {
	src := firestoretest.NewMemorySource()
	src.Add("usage", "1234", map[string]firestore.Value{
		"kwh":    firestore.Double(12.5),
		"point":  firestore.String("1234"),
		"active": firestore.Bool(true),
	})
	src.Add("usage", "5678", map[string]firestore.Value{
		"kwh":   firestore.Integer(3),
		"hours": firestore.Array(firestore.Integer(0), firestore.Integer(1)),
		"note":  firestore.Null(),
	})
	return src
}

func newTestContext(src firestore.Source, stdout io.Writer) *Context {
	ctx := NewContext(context.Background())
	ctx.Source = src
	ctx.Collection = "usage"
	ctx.NoProgress = true
	ctx.Progress = io.Discard
	ctx.Stdout = stdout
	return ctx
}

type exported struct {
	ID     string                     `json:"id"`
	Path   string                     `json:"path"`
	Fields map[string]json.RawMessage `json:"fields"`
}

func TestExportJSONLToStdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Export(newTestContext(usage(), &out)))

	rows := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, rows, 2)

	var first exported
	require.NoError(t, json.Unmarshal([]byte(rows[0]), &first))
	assert.Equal(t, "1234", first.ID)
	assert.Equal(t, "usage/1234", first.Path)
	assert.JSONEq(t, "12.5", string(first.Fields["kwh"]))
	assert.JSONEq(t, `"1234"`, string(first.Fields["point"]))

	var second exported
	require.NoError(t, json.Unmarshal([]byte(rows[1]), &second))
	assert.JSONEq(t, "[0,1]", string(second.Fields["hours"]))
	assert.JSONEq(t, "null", string(second.Fields["note"]))
}

func TestExportJSONLToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.jsonl")
	var out bytes.Buffer
	ctx := newTestContext(usage(), &out)
	ctx.Output = path
	require.NoError(t, Export(ctx))

	assert.Empty(t, out.String())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(b), "\n"))
}

func TestExportDryRunDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.jsonl")
	var out bytes.Buffer
	ctx := newTestContext(usage(), &out)
	ctx.Output = path
	ctx.DryRun = true
	require.NoError(t, Export(ctx))

	assert.NotEmpty(t, out.String())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestExportXLSXToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.xlsx")
	ctx := newTestContext(usage(), io.Discard)
	ctx.Format = FormatXLSX
	ctx.Output = "file://" + path
	require.NoError(t, Export(ctx))

	xl, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer xl.Close()
	sheet := xl.GetSheetName(xl.GetActiveSheetIndex())

	rows, err := xl.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "active", "hours", "kwh", "note", "point"}, rows[0])
	assert.Equal(t, []string{"1234", "TRUE", "", "12.5", "", "1234"}, rows[1])
	assert.Equal(t, []string{"5678", "", "[0, 1]", "3"}, rows[2])
}

func TestExportXLSXToStdout(t *testing.T) {
	var out bytes.Buffer
	ctx := newTestContext(usage(), &out)
	ctx.Format = FormatXLSX
	require.NoError(t, Export(ctx))

	assert.Equal(t, "id, active, hours, kwh, note, point\n1234, TRUE, , 12.5, , 1234\n5678, , [0, 1], 3\n", out.String())
}

func TestExportFailureRemovesFile(t *testing.T) {
	for _, prefix := range []string{"", "file://"} {
		t.Run("prefix "+prefix, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "usage.jsonl")
			src := usage()
			src.Err = firestore.Classify(status.Error(codes.Unavailable, "connection reset"))
			src.FailAfter = 1
			ctx := newTestContext(src, io.Discard)
			ctx.Output = prefix + path

			err := Export(ctx)
			var ne firestore.NetworkError
			assert.ErrorAs(t, err, &ne)
			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestExportEmptyCollection(t *testing.T) {
	var out bytes.Buffer
	ctx := newTestContext(usage(), &out)
	ctx.Collection = "prices"
	require.NoError(t, Export(ctx))
	assert.Empty(t, out.String())
}

func TestExportErrors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		ctx := newTestContext(usage(), io.Discard)
		ctx.Format = "csv"
		assert.ErrorContains(t, Export(ctx), "unknown format 'csv'")
	})

	t.Run("unknown scheme", func(t *testing.T) {
		ctx := newTestContext(usage(), io.Discard)
		ctx.Output = "s3://bucket/usage.jsonl"
		assert.ErrorContains(t, Export(ctx), "unable to determine how to open")
	})

	t.Run("gs without bucket", func(t *testing.T) {
		ctx := newTestContext(usage(), io.Discard)
		ctx.Output = "gs:///usage.jsonl"
		assert.ErrorContains(t, Export(ctx), "no bucket")
	})

	t.Run("read failure", func(t *testing.T) {
		src := usage()
		src.Err = firestore.Classify(status.Error(codes.Unauthenticated, "bad token"))
		ctx := newTestContext(src, io.Discard)
		err := Export(ctx)
		var ae firestore.AuthenticationError
		assert.ErrorAs(t, err, &ae)
	})
}
