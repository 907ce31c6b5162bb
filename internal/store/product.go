package store

import "github.com/vitrine-dev/vitrine/internal/api"

// Pagination tracks the current catalog page and the server's opaque
// continuation cursor. An empty LastKey means the server reported none.
type Pagination struct {
	CurrentPage int
	LastKey     string
}

// ProductState is the catalog slice.
type ProductState struct {
	Products         []api.Product
	Favorites        []string
	FavoritesToggled bool
	Pagination       Pagination
	Loading          bool
	Error            string
	SelectedProduct  *api.Product
	Reviewed         bool
}

// ProductIntent is the closed set of transitions on ProductState.
type ProductIntent interface {
	Intent
	productIntent()
}

// ProductLoadingSet marks a catalog request entering or leaving flight.
type ProductLoadingSet struct{ Loading bool }

// ProductErrorSet records a failed catalog request.
type ProductErrorSet struct{ Message string }

// ProductErrorReset clears the error explicitly; errors are never
// auto-cleared by unrelated intents.
type ProductErrorReset struct{}

// ProductsReplaced swaps the visible product list wholesale.
type ProductsReplaced struct{ Products []api.Product }

// PaginationSet records the page and cursor of the last successful fetch.
type PaginationSet struct {
	CurrentPage int
	LastKey     string
}

// FavoritesReplaced swaps the favorites id list wholesale. The caller is
// responsible for persisting the list before dispatching.
type FavoritesReplaced struct{ Favorites []string }

// FavoritesToggleSet flips the favorites-only view mode.
type FavoritesToggleSet struct{ Toggled bool }

// SelectedProductSet records the result of a by-id fetch. Viewing a new
// product resets the reviewed flag.
type SelectedProductSet struct{ Product api.Product }

// ProductReviewed records whether a review submission for the currently
// viewed product has succeeded.
type ProductReviewed struct{ Reviewed bool }

func (ProductLoadingSet) productIntent()  {}
func (ProductErrorSet) productIntent()    {}
func (ProductErrorReset) productIntent()  {}
func (ProductsReplaced) productIntent()   {}
func (PaginationSet) productIntent()      {}
func (FavoritesReplaced) productIntent()  {}
func (FavoritesToggleSet) productIntent() {}
func (SelectedProductSet) productIntent() {}
func (ProductReviewed) productIntent()    {}

func (ProductLoadingSet) isIntent()  {}
func (ProductErrorSet) isIntent()    {}
func (ProductErrorReset) isIntent()  {}
func (ProductsReplaced) isIntent()   {}
func (PaginationSet) isIntent()      {}
func (FavoritesReplaced) isIntent()  {}
func (FavoritesToggleSet) isIntent() {}
func (SelectedProductSet) isIntent() {}
func (ProductReviewed) isIntent()    {}

// reduceProduct computes the next catalog slice. Pure: the input state is
// never mutated.
func reduceProduct(s ProductState, in ProductIntent) ProductState {
	switch in := in.(type) {
	case ProductLoadingSet:
		s.Loading = in.Loading
	case ProductErrorSet:
		s.Error = in.Message
		s.Loading = false
	case ProductErrorReset:
		s.Error = ""
	case ProductsReplaced:
		s.Products = cloneProducts(in.Products)
	case PaginationSet:
		s.Pagination = Pagination{CurrentPage: in.CurrentPage, LastKey: in.LastKey}
	case FavoritesReplaced:
		s.Favorites = cloneStrings(in.Favorites)
	case FavoritesToggleSet:
		s.FavoritesToggled = in.Toggled
	case SelectedProductSet:
		product := in.Product
		s.SelectedProduct = &product
		s.Reviewed = false
	case ProductReviewed:
		s.Reviewed = in.Reviewed
	}
	return s
}

func cloneProducts(products []api.Product) []api.Product {
	if len(products) == 0 {
		return nil
	}
	dup := make([]api.Product, len(products))
	copy(dup, products)
	return dup
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
