package lscollections

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/exp/slices"
)

// ErrNoCollections is returned when there is nothing to choose from.
var ErrNoCollections = errors.New("database has no collections")

func LsCollections(ctx *Context) error {
	ids, err := ctx.Source.CollectionIDs(ctx)
	if err != nil {
		return fmt.Errorf("LsCollections: error getting collections: %w", err)
	}
	for _, id := range ids {
		fmt.Fprintln(ctx.Out, id)
	}
	return nil
}

// SurveyCollection asks the user to pick one of the top-level collections.
func SurveyCollection(ctx *Context, opts ...survey.AskOpt) (string, error) {
	ids, err := ctx.Source.CollectionIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("SurveyCollection: error getting collections: %w", err)
	}
	if len(ids) == 0 {
		return "", ErrNoCollections
	}
	ids = slices.Clone(ids)
	slices.Sort(ids)

	q := &survey.Select{
		Message: "Which collection do you want to read?",
		Options: ids,
	}
	var choice string
	if err := survey.AskOne(q, &choice, opts...); err != nil {
		return "", fmt.Errorf("SurveyCollection: %w", err)
	}
	return choice, nil
}
