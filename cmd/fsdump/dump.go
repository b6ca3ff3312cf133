package main

import (
	"github.com/toki-take-home/fsdump/internal/firestore"
	"github.com/toki-take-home/fsdump/internal/tools/dumpcollection"
	"github.com/toki-take-home/fsdump/internal/tools/lscollections"
)

type dumpCmd struct {
	Collection string   `help:"Collection to read." env:"FSDUMP_COLLECTION" default:"${default_collection}"`
	Format     string   `help:"Output format: ${enum}." enum:"repr,json,tree,table" default:"repr"`
	IDs        []string `name:"id" help:"Only print the documents with these IDs."`
	Pick       bool     `help:"Choose the collection interactively instead of using --collection."`
}

func (a *dumpCmd) Run(g *globalCmd) error {
	c, cancel := g.newContext()
	defer cancel()

	client, err := firestore.NewClient(c, g.clientConfig())
	if err != nil {
		return err
	}
	defer client.Close()
	source := firestore.NewClientSource(client)

	collection := a.Collection
	if a.Pick {
		lctx := lscollections.NewContext(c)
		lctx.Source = source
		collection, err = lscollections.SurveyCollection(lctx)
		if err != nil {
			return err
		}
	}

	ctx := dumpcollection.NewContext(c)
	ctx.Source = source
	ctx.Collection = collection
	ctx.IDs = a.IDs
	ctx.Format = dumpcollection.Format(a.Format)
	_, err = dumpcollection.Dump(ctx)
	return err
}
