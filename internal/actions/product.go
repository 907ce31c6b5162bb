package actions

import (
	"context"

	"github.com/vitrine-dev/vitrine/internal/api"
	"github.com/vitrine-dev/vitrine/internal/store"
)

const defaultCatalogError = "An unexpected error has occurred. Please try again later."

// GetProducts fetches one catalog page and replaces the visible product
// list. A zero perPage falls back to the API default. If a newer catalog
// view was applied while the request was in flight, the result is dropped
// so the newest intent always wins.
func (a *Actions) GetProducts(ctx context.Context, page, perPage int) {
	gen := a.catalogGen.Add(1)

	a.state.Dispatch(store.ProductLoadingSet{Loading: true})
	defer a.state.Dispatch(store.ProductLoadingSet{Loading: false})

	pageResp, err := a.api.ListProducts(ctx, page, perPage)
	if a.catalogGen.Load() != gen {
		a.log.Debug().Int("page", page).Msg("dropping stale catalog fetch")
		return
	}
	if err != nil {
		a.log.Error().Err(err).Int("page", page).Msg("catalog fetch failed")
		a.state.Dispatch(store.ProductErrorSet{Message: errorMessage(err, defaultCatalogError)})
		return
	}

	a.state.Dispatch(store.ProductsReplaced{Products: pageResp.Products})
	a.state.Dispatch(store.PaginationSet{CurrentPage: page, LastKey: pageResp.LastKey})
}

// GetProduct fetches a single product by id into SelectedProduct. The
// visible list and pagination are untouched.
func (a *Actions) GetProduct(ctx context.Context, id string) {
	a.state.Dispatch(store.ProductLoadingSet{Loading: true})
	defer a.state.Dispatch(store.ProductLoadingSet{Loading: false})

	product, err := a.api.GetProduct(ctx, id)
	if err != nil {
		a.log.Error().Err(err).Str("product", id).Msg("product fetch failed")
		a.state.Dispatch(store.ProductErrorSet{Message: errorMessage(err, defaultCatalogError)})
		return
	}
	a.state.Dispatch(store.SelectedProductSet{Product: product})
}

// AddToFavorites appends id to the favorites list, persists the full list,
// then dispatches the replacement. Duplicates are not filtered; the list
// keeps every append. Persisting happens before the dispatch so a crash in
// between never loses a favorite the UI already showed.
func (a *Actions) AddToFavorites(id string) {
	favorites := append(a.state.Product().Favorites, id)
	a.replaceFavorites(favorites)
}

// RemoveFromFavorites filters id out of the favorites list, persists, then
// dispatches. Removing an id also removes its duplicates.
func (a *Actions) RemoveFromFavorites(id string) {
	current := a.state.Product().Favorites
	favorites := make([]string, 0, len(current))
	for _, fav := range current {
		if fav != id {
			favorites = append(favorites, fav)
		}
	}
	a.replaceFavorites(favorites)
}

func (a *Actions) replaceFavorites(favorites []string) {
	if err := a.kv.Set(keyFavorites, favorites); err != nil {
		a.log.Error().Err(err).Msg("persisting favorites failed")
		a.state.Dispatch(store.ProductErrorSet{Message: errorMessage(err, defaultCatalogError)})
		return
	}
	a.state.Dispatch(store.FavoritesReplaced{Favorites: favorites})
}

// ToggleFavorites switches the favorites-only view. Turning it on filters
// the currently loaded page client-side; turning it off re-fetches page 1
// from the server, discarding the filtered view.
func (a *Actions) ToggleFavorites(ctx context.Context, toggled bool) {
	if toggled {
		// Applying a new view invalidates any catalog fetch still in
		// flight; a slower page fetch must not overwrite it.
		a.catalogGen.Add(1)

		snap := a.state.Product()
		favorites := make(map[string]struct{}, len(snap.Favorites))
		for _, id := range snap.Favorites {
			favorites[id] = struct{}{}
		}
		filtered := make([]api.Product, 0, len(snap.Products))
		for _, product := range snap.Products {
			if _, ok := favorites[product.ID]; ok {
				filtered = append(filtered, product)
			}
		}
		a.state.Dispatch(store.FavoritesToggleSet{Toggled: true})
		a.state.Dispatch(store.ProductsReplaced{Products: filtered})
		return
	}

	a.state.Dispatch(store.FavoritesToggleSet{Toggled: false})
	a.GetProducts(ctx, 1, api.DefaultPerPage)
}

// CreateProductReview submits a review for productID. The session token is
// sent as-is without a local presence check: a missing token simply
// surfaces the server's rejection. On success only the reviewed flag is
// set; the review list is refreshed by re-fetching the product.
func (a *Actions) CreateProductReview(ctx context.Context, productID, userID, comment string, rating int, title string) {
	var token string
	if info := a.state.User().Info; info != nil {
		token = info.Token
	}

	review := api.ReviewInput{Comment: comment, UserID: userID, Rating: rating, Title: title}
	if err := a.api.CreateReview(ctx, token, productID, review); err != nil {
		a.log.Error().Err(err).Str("product", productID).Msg("review submission failed")
		a.state.Dispatch(store.ProductErrorSet{Message: errorMessage(err, defaultCatalogError)})
		return
	}
	a.state.Dispatch(store.ProductReviewed{Reviewed: true})
}

// ResetProductError clears the catalog error explicitly.
func (a *Actions) ResetProductError() {
	a.state.Dispatch(store.ProductErrorReset{})
}
