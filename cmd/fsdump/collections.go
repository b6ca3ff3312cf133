package main

import (
	"github.com/toki-take-home/fsdump/internal/firestore"
	"github.com/toki-take-home/fsdump/internal/tools/lscollections"
)

type collectionsCmd struct{}

func (a *collectionsCmd) Run(g *globalCmd) error {
	c, cancel := g.newContext()
	defer cancel()

	client, err := firestore.NewClient(c, g.clientConfig())
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := lscollections.NewContext(c)
	ctx.Source = firestore.NewClientSource(client)
	return lscollections.LsCollections(ctx)
}
