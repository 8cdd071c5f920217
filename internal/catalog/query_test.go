package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	ID       int
	Name     string
	Desc     string
	Category string
	Price    float64
	Rating   float64
	Sales    uint
	IsNew    bool
}

func (p product) QueryFacets() Facets {
	return Facets{
		Category:    p.Category,
		Name:        p.Name,
		Description: p.Desc,
		Price:       p.Price,
		Rating:      p.Rating,
		Sales:       p.Sales,
		IsNew:       p.IsNew,
	}
}

func fixture() []product {
	var out []product
	for i := 1; i <= 25; i++ {
		p := product{
			ID:       i,
			Name:     fmt.Sprintf("product %d", i),
			Desc:     "a plain item",
			Category: "accessories",
			Price:    float64(i),
			Rating:   float64(i%5) + 0.5,
			Sales:    uint(i * 20),
		}
		if i <= 7 {
			p.Category = "gowns"
			p.Name = fmt.Sprintf("bachelor gown %d", i)
			p.Desc = "academic dress"
		}
		if i%10 == 0 {
			p.IsNew = true
		}
		out = append(out, p)
	}
	return out
}

func TestQueryCategoryFilterAndPaging(t *testing.T) {
	t.Parallel()

	// 7 gowns, page size 3, page 3 holds the single remainder
	res := Query(fixture(), Params{Category: "gowns", Page: 3, PageSize: 3})
	require.Len(t, res.Items, 1)
	assert.Equal(t, 7, res.Total)
	assert.Equal(t, 7, res.Items[0].ID)
}

func TestQueryPageBeyondEnd(t *testing.T) {
	t.Parallel()

	res := Query(fixture(), Params{Category: "gowns", Page: 99, PageSize: 3})
	assert.Empty(t, res.Items)
	assert.Equal(t, 7, res.Total)
}

func TestQueryPagesCoverEverything(t *testing.T) {
	t.Parallel()

	products := fixture()
	full := Query(products, Params{Category: "gowns", SortBy: SortPriceDesc, Page: 1, PageSize: 100})

	var paged []product
	for page := 1; ; page++ {
		res := Query(products, Params{Category: "gowns", SortBy: SortPriceDesc, Page: page, PageSize: 3})
		if len(res.Items) == 0 {
			break
		}
		paged = append(paged, res.Items...)
	}
	assert.Equal(t, full.Items, paged)
}

func TestQueryKeywordCaseInsensitive(t *testing.T) {
	t.Parallel()

	res := Query(fixture(), Params{Keyword: "BACHELOR", Page: 1, PageSize: 100})
	assert.Equal(t, 7, res.Total)

	res = Query(fixture(), Params{Keyword: "plain ITEM", Page: 1, PageSize: 100})
	assert.Equal(t, 18, res.Total)
}

func TestQueryKeywordNoMatch(t *testing.T) {
	t.Parallel()

	res := Query(fixture(), Params{Keyword: "XYZNOTFOUND", Page: 1, PageSize: 10})
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Total)
}

func TestQueryVirtualBuckets(t *testing.T) {
	t.Parallel()

	res := Query(fixture(), Params{Category: CategoryNew, Page: 1, PageSize: 100})
	require.Equal(t, 2, res.Total)
	for _, p := range res.Items {
		assert.True(t, p.IsNew)
	}

	res = Query(fixture(), Params{Category: CategoryBestsellers, Page: 1, PageSize: 100})
	require.NotEmpty(t, res.Items)
	for _, p := range res.Items {
		assert.Greater(t, p.Sales, uint(BestsellerSales))
	}
}

func TestQuerySortStability(t *testing.T) {
	t.Parallel()

	products := []product{
		{ID: 1, Name: "first", Price: 10},
		{ID: 2, Name: "second", Price: 5},
		{ID: 3, Name: "third", Price: 10},
		{ID: 4, Name: "fourth", Price: 10},
	}
	res := Query(products, Params{SortBy: SortPriceAsc, Page: 1, PageSize: 10})

	ids := make([]int, len(res.Items))
	for i, p := range res.Items {
		ids[i] = p.ID
	}
	// equal prices keep input order
	assert.Equal(t, []int{2, 1, 3, 4}, ids)
}

func TestQuerySortOrders(t *testing.T) {
	t.Parallel()

	products := []product{
		{ID: 1, Price: 3, Rating: 4.0, Sales: 10},
		{ID: 2, Price: 1, Rating: 5.0, Sales: 30},
		{ID: 3, Price: 2, Rating: 3.0, Sales: 20},
	}

	tests := []struct {
		sortBy string
		want   []int
	}{
		{SortPriceAsc, []int{2, 3, 1}},
		{SortPriceDesc, []int{1, 3, 2}},
		{SortRating, []int{2, 1, 3}},
		{SortSales, []int{2, 3, 1}},
		{SortDefault, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		res := Query(products, Params{SortBy: tt.sortBy, Page: 1, PageSize: 10})
		ids := make([]int, len(res.Items))
		for i, p := range res.Items {
			ids[i] = p.ID
		}
		assert.Equal(t, tt.want, ids, "sort %s", tt.sortBy)
	}
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := fixture()
	before := make([]product, len(products))
	copy(before, products)

	Query(products, Params{Category: "gowns", SortBy: SortPriceDesc, Page: 1, PageSize: 3})
	assert.Equal(t, before, products)
}

func TestQueryClampsPageAndSize(t *testing.T) {
	t.Parallel()

	res := Query(fixture(), Params{Page: 0, PageSize: 0})
	require.Len(t, res.Items, 1)
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 1, res.Items[0].ID)
}
