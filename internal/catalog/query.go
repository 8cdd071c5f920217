package catalog

import (
	"sort"
	"strings"
)

// BestsellerSales is the sales floor above which a product lands in the
// "bestsellers" bucket.
const BestsellerSales = 300

const (
	CategoryAll         = "all"
	CategoryNew         = "new"
	CategoryBestsellers = "bestsellers"
)

const (
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
	SortSales     = "sales"
)

// Entry is the view of a record the query pipeline needs. Products and
// fabrics both satisfy it.
type Entry interface {
	QueryFacets() Facets
}

type Facets struct {
	Category    string
	Name        string
	Description string
	Price       float64
	Rating      float64
	Sales       uint
	IsNew       bool
}

type Params struct {
	Category string
	Keyword  string
	SortBy   string
	Page     int
	PageSize int
}

type Result[T Entry] struct {
	Items []T
	Total int
}

// Query filters, sorts and pages entries without touching the input slice.
// Total is the filtered count before paging; a page past the end yields an
// empty item list with the same total.
func Query[T Entry](entries []T, p Params) Result[T] {
	kept := make([]T, 0, len(entries))
	keyword := strings.ToLower(strings.TrimSpace(p.Keyword))
	for _, e := range entries {
		f := e.QueryFacets()
		if !matchCategory(f, p.Category) {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(f.Name), keyword) &&
			!strings.Contains(strings.ToLower(f.Description), keyword) {
			continue
		}
		kept = append(kept, e)
	}

	sortEntries(kept, p.SortBy)

	total := len(kept)
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = 1
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return Result[T]{Items: kept[start:end], Total: total}
}

func matchCategory(f Facets, category string) bool {
	switch category {
	case "", CategoryAll:
		return true
	case CategoryNew:
		return f.IsNew
	case CategoryBestsellers:
		return f.Sales > BestsellerSales
	default:
		return f.Category == category
	}
}

// sortEntries is stable: equal keys keep their input order.
func sortEntries[T Entry](entries []T, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].QueryFacets().Price < entries[j].QueryFacets().Price
		})
	case SortPriceDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].QueryFacets().Price > entries[j].QueryFacets().Price
		})
	case SortRating:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].QueryFacets().Rating > entries[j].QueryFacets().Rating
		})
	case SortSales:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].QueryFacets().Sales > entries[j].QueryFacets().Sales
		})
	}
}
