// Package report builds the cross-category "needs reordering" view.
package report

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-stockbot/internal/model"
)

// Source is the read side of the product store the aggregator needs.
type Source interface {
	ListReorderItems(ctx context.Context) ([]model.ReorderItem, error)
}

// Group is one category's products that need reordering.
type Group struct {
	CategoryID   int64
	CategoryName string
	Items        []model.ReorderItem
}

// Formatter renders the grouped view as text.
type Formatter interface {
	ReorderEmpty() string
	ReorderReport(groups []Group) string
}

type Aggregator struct {
	source    Source
	formatter Formatter
}

func NewAggregator(source Source, formatter Formatter) *Aggregator {
	return &Aggregator{source: source, formatter: formatter}
}

// Groups returns the reorder items grouped by category, keeping the store's
// ordering of both categories and products.
func (a *Aggregator) Groups(ctx context.Context) ([]Group, error) {
	items, err := a.source.ListReorderItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reorder items: %w", err)
	}
	return GroupItems(items), nil
}

// Report renders Groups, or the empty message when nothing needs reordering.
func (a *Aggregator) Report(ctx context.Context) (string, error) {
	groups, err := a.Groups(ctx)
	if err != nil {
		return "", err
	}
	if len(groups) == 0 {
		return a.formatter.ReorderEmpty(), nil
	}
	return a.formatter.ReorderReport(groups), nil
}

func GroupItems(items []model.ReorderItem) []Group {
	var groups []Group
	index := make(map[int64]int)
	for _, it := range items {
		i, ok := index[it.CategoryID]
		if !ok {
			i = len(groups)
			index[it.CategoryID] = i
			groups = append(groups, Group{CategoryID: it.CategoryID, CategoryName: it.CategoryName})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
