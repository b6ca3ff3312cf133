package main

import (
	"github.com/toki-take-home/fsdump/internal/firestore"
	"github.com/toki-take-home/fsdump/internal/tools/exportcollection"
)

type exportCmd struct {
	DryRun     bool   `help:"Print the export to stdout instead of writing it."`
	NoProgress bool   `help:"Hide the progress bar."`
	Collection string `help:"Collection to export." env:"FSDUMP_COLLECTION" default:"${default_collection}"`
	Format     string `help:"Export format: ${enum}." enum:"jsonl,xlsx" default:"jsonl"`
	Output     string `arg:"" optional:"" help:"Destination: a local path, file:// URL, or gs://bucket/object URL. Defaults to stdout."`
}

func (a *exportCmd) Run(g *globalCmd) error {
	c, cancel := g.newContext()
	defer cancel()

	client, err := firestore.NewClient(c, g.clientConfig())
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := exportcollection.NewContext(c)
	ctx.Source = firestore.NewClientSource(client)
	ctx.DryRun = a.DryRun
	ctx.NoProgress = a.NoProgress
	ctx.Collection = a.Collection
	ctx.Format = exportcollection.Format(a.Format)
	ctx.Output = a.Output
	return exportcollection.Export(ctx)
}
