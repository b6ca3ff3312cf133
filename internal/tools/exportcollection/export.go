package exportcollection

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	progressbar "github.com/schollz/progressbar/v3"
	"github.com/toki-take-home/fsdump/internal/firestore"
	"github.com/toki-take-home/fsdump/internal/logger"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/exp/slices"
	"google.golang.org/api/iterator"
)

// Format is an export file format.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatXLSX  Format = "xlsx"
)

// Export writes every document of ctx.Collection to ctx.Output, or to ctx.Stdout
// when there is no output location or on a dry run.
func Export(ctx *Context) error {
	if ctx.Format != FormatJSONL && ctx.Format != FormatXLSX {
		return fmt.Errorf("Export: unknown format '%s'", ctx.Format)
	}

	toStdout := ctx.Output == "" || ctx.DryRun
	if ctx.DryRun && ctx.Output != "" {
		logger.Sugar.Infof("DRY RUN: would write collection '%s' to %s", ctx.Collection, ctx.Output)
	}

	var out io.Writer = ctx.Stdout
	var closer io.WriteCloser
	if !toStdout {
		w, err := openFileOrGSWriter(ctx, ctx.Output)
		if err != nil {
			return fmt.Errorf("Export: failed to open '%s': %w", ctx.Output, err)
		}
		out = w
		closer = w
	}

	n, err := export(ctx, out, toStdout)
	if closer != nil {
		// A storage object is only committed on Close, so its error matters.
		if cerr := closer.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("Export: failed to finish writing '%s': %w", ctx.Output, cerr)
		}
		if f, ok := closer.(*os.File); ok && err != nil {
			if rerr := os.Remove(f.Name()); rerr != nil {
				logger.Sugar.Warnw("unable to remove incomplete export", "path", f.Name(), "error", rerr)
			}
		}
	}
	if err != nil {
		return err
	}

	logger.Sugar.Infow("exported collection", "collection", ctx.Collection, "documents", n, "format", string(ctx.Format), "output", ctx.Output)
	return nil
}

func export(ctx *Context, out io.Writer, toStdout bool) (int, error) {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(ctx.Progress),
		progressbar.OptionSetDescription(fmt.Sprintf("exporting %s", ctx.Collection)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(!ctx.NoProgress),
	)
	defer bar.Finish()

	var enc *json.Encoder
	if ctx.Format == FormatJSONL {
		enc = json.NewEncoder(out)
	}
	docs := make([]firestore.Document, 0)

	iter := ctx.Source.Documents(ctx, ctx.Collection)
	defer iter.Stop()
	n := 0
	for {
		d, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return n, fmt.Errorf("Export: error reading collection '%s': %w", ctx.Collection, err)
		}
		if enc != nil {
			if err := enc.Encode(d); err != nil {
				return n, fmt.Errorf("Export: error writing document '%s': %w", d.ID, err)
			}
		} else {
			docs = append(docs, d)
		}
		n++
		bar.Add(1)
	}

	if ctx.Format == FormatXLSX {
		xl, err := makeExcelFile(docs)
		if err != nil {
			return n, fmt.Errorf("Export: failed to make Excel file: %w", err)
		}
		if toStdout {
			// A workbook is binary, so print the rows instead.
			if err := printRows(xl, out); err != nil {
				return n, fmt.Errorf("Export: %w", err)
			}
			return n, nil
		}
		if _, err := xl.WriteTo(out); err != nil {
			return n, fmt.Errorf("Export: failed to write Excel file: %w", err)
		}
	}
	return n, nil
}

// makeExcelFile lays documents out one per row, under a header of "id" and the
// sorted union of their top-level field names.
func makeExcelFile(docs []firestore.Document) (*excelize.File, error) {
	outExcel := excelize.NewFile()
	sheetName := outExcel.GetSheetName(outExcel.GetActiveSheetIndex())

	seen := make(map[string]struct{})
	columns := make([]string, 0)
	for _, d := range docs {
		for k := range d.Fields {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
	}
	slices.Sort(columns)

	header := append([]string{"id"}, columns...)
	for col, name := range header {
		index, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := outExcel.SetCellStr(sheetName, index, name); err != nil {
			return nil, err
		}
	}

	for row, d := range docs {
		index, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return nil, err
		}
		if err := outExcel.SetCellStr(sheetName, index, d.ID); err != nil {
			return nil, err
		}
		for col, name := range columns {
			v, ok := d.Fields[name]
			if !ok || v.IsNull() {
				continue
			}
			index, err := excelize.CoordinatesToCellName(col+2, row+2)
			if err != nil {
				return nil, err
			}
			if err := outExcel.SetCellValue(sheetName, index, cellValue(v)); err != nil {
				return nil, err
			}
		}
	}
	return outExcel, nil
}

func cellValue(v firestore.Value) interface{} {
	switch v.Kind() {
	case firestore.StringKind:
		return v.StringValue()
	case firestore.IntegerKind:
		return v.IntegerValue()
	case firestore.DoubleKind:
		if f := v.DoubleValue(); !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f
		}
	case firestore.BoolKind:
		return v.BoolValue()
	}
	return firestore.Repr(v)
}

func printRows(xl *excelize.File, w io.Writer) error {
	sheetName := xl.GetSheetName(xl.GetActiveSheetIndex())
	rows, err := xl.Rows(sheetName)
	if err != nil {
		return fmt.Errorf("failed to get Excel row iterator: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to get Excel cells from row iterator: %w", err)
		}
		fmt.Fprintln(w, strings.Join(row, ", "))
	}
	return nil
}
