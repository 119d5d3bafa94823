package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	catrepo "github.com/fekuna/omnipos-stockbot/internal/category/repository"
	"github.com/fekuna/omnipos-stockbot/internal/database/dbtest"
	"github.com/fekuna/omnipos-stockbot/internal/model"
	prodrepo "github.com/fekuna/omnipos-stockbot/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textFormatter struct{}

func (textFormatter) ReorderEmpty() string { return "nothing" }

func (textFormatter) ReorderReport(groups []Group) string {
	var b strings.Builder
	for _, g := range groups {
		b.WriteString(g.CategoryName + ":")
		for _, it := range g.Items {
			fmt.Fprintf(&b, " %s(%g/%g)", it.ProductName, it.Quantity, it.Limit)
		}
		b.WriteString(";")
	}
	return b.String()
}

type failingSource struct{}

func (failingSource) ListReorderItems(context.Context) ([]model.ReorderItem, error) {
	return nil, errors.New("db down")
}

func TestReport_GroupsByCategoryInStoreOrder(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	cats := catrepo.NewSQLRepository(db)
	products := prodrepo.NewSQLRepository(db)

	fruit, err := cats.Create(ctx, "Fruit")
	require.NoError(t, err)
	dairy, err := cats.Create(ctx, "Dairy")
	require.NoError(t, err)

	limit := func(v float64) *float64 { return &v }
	for _, p := range []*model.Product{
		{CategoryID: fruit.ID, Name: "Pear", Quantity: 1, Limit: limit(2)},
		{CategoryID: fruit.ID, Name: "Apple", Quantity: 2, Limit: limit(2)},
		{CategoryID: fruit.ID, Name: "Kiwi", Quantity: 9, Limit: limit(2)},
		{CategoryID: dairy.ID, Name: "Milk", Quantity: 4, Limit: limit(5)},
		{CategoryID: dairy.ID, Name: "Cheese", Quantity: 0},
	} {
		require.NoError(t, products.Create(ctx, p))
	}

	agg := NewAggregator(products, textFormatter{})

	groups, err := agg.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Dairy", groups[0].CategoryName)
	assert.Equal(t, "Fruit", groups[1].CategoryName)
	require.Len(t, groups[1].Items, 2)
	assert.Equal(t, "Apple", groups[1].Items[0].ProductName)

	text, err := agg.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dairy: Milk(4/5);Fruit: Apple(2/2) Pear(1/2);", text)
}

func TestReport_Empty(t *testing.T) {
	db := dbtest.New(t)
	agg := NewAggregator(prodrepo.NewSQLRepository(db), textFormatter{})

	groups, err := agg.Groups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)

	text, err := agg.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nothing", text)
}

func TestReport_SourceError(t *testing.T) {
	_, err := NewAggregator(failingSource{}, textFormatter{}).Report(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestGroupItems_NonContiguousCategoryStaysTogether(t *testing.T) {
	groups := GroupItems([]model.ReorderItem{
		{CategoryID: 1, CategoryName: "A", ProductName: "x"},
		{CategoryID: 2, CategoryName: "B", ProductName: "y"},
		{CategoryID: 1, CategoryName: "A", ProductName: "z"},
	})
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Items, 2)
	assert.Len(t, groups[1].Items, 1)
}
