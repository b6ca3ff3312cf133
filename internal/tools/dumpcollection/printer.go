package dumpcollection

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/toki-take-home/fsdump/internal/firestore"
)

// Format selects how each document is written.
type Format string

const (
	FormatRepr  Format = "repr"
	FormatJSON  Format = "json"
	FormatTree  Format = "tree"
	FormatTable Format = "table"
)

type printer interface {
	Print(d firestore.Document) error
	Flush() error
}

func newPrinter(f Format, w io.Writer) (printer, error) {
	switch f {
	case FormatRepr, "":
		return &linePrinter{w: w, render: func(d firestore.Document) (string, error) { return d.String(), nil }}, nil
	case FormatJSON:
		return &linePrinter{w: w, render: firestore.Document.JSONString}, nil
	case FormatTree:
		return &linePrinter{w: w, render: func(d firestore.Document) (string, error) { return firestore.Tree(d), nil }}, nil
	case FormatTable:
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"ID", "Fields"})
		t.SetStyle(table.StyleLight)
		return &tablePrinter{t: t}, nil
	}
	return nil, fmt.Errorf("unknown format '%s'", f)
}

// linePrinter writes each document as soon as it arrives.
type linePrinter struct {
	w      io.Writer
	render func(firestore.Document) (string, error)
}

func (p *linePrinter) Print(d firestore.Document) error {
	s, err := p.render(d)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, s)
	return err
}

func (p *linePrinter) Flush() error {
	return nil
}

// tablePrinter buffers rows until Flush, since column widths depend on every row.
type tablePrinter struct {
	t    table.Writer
	rows int
}

func (p *tablePrinter) Print(d firestore.Document) error {
	p.t.AppendRow(table.Row{d.ID, firestore.ReprFields(d.Fields)})
	p.rows++
	return nil
}

func (p *tablePrinter) Flush() error {
	if p.rows == 0 {
		return nil
	}
	p.t.Render()
	return nil
}
