package actions

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/vitrine-dev/vitrine/internal/api"
	"github.com/vitrine-dev/vitrine/internal/localstore"
	"github.com/vitrine-dev/vitrine/internal/store"
)

// Persisted local store keys. The cartItems key is owned by the cart
// feature; logout clears it alongside the session.
const (
	keyFavorites = "favorites"
	keyUserInfo  = "userInfo"
	keyCartItems = "cartItems"
)

// State is the store surface the action layer needs: dispatching intents
// and reading current slices. Implemented by *store.Store.
type State interface {
	store.Dispatcher
	Product() store.ProductState
	User() store.UserState
}

// Actions orchestrates the asynchronous work behind every user-initiated
// operation: remote calls, local persistence, and the intents dispatched
// in between. Methods block until the operation settles; callers run them
// from their own task (a tea.Cmd in the TUI).
type Actions struct {
	api   api.Service
	state State
	kv    localstore.KV
	log   zerolog.Logger

	// catalogGen invalidates in-flight catalog fetches when a newer
	// catalog view is applied, making last-intent-wins deterministic.
	catalogGen atomic.Uint64
}

// New wires the action layer to its collaborators.
func New(service api.Service, state State, kv localstore.KV, log zerolog.Logger) *Actions {
	return &Actions{api: service, state: state, kv: kv, log: log}
}

// SeedFromStore rehydrates the externally persisted slices for store.New.
// Unreadable values degrade to empty state rather than failing startup.
func SeedFromStore(kv localstore.KV, log zerolog.Logger) store.Seed {
	var seed store.Seed

	if _, err := kv.Get(keyFavorites, &seed.Favorites); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable persisted favorites")
		seed.Favorites = nil
	}

	var info api.UserInfo
	ok, err := kv.Get(keyUserInfo, &info)
	if err != nil {
		log.Warn().Err(err).Msg("discarding unreadable persisted session")
	} else if ok {
		seed.UserInfo = &info
	}

	if _, err := kv.Get(keyCartItems, &seed.CartItems); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable persisted cart")
		seed.CartItems = nil
	}
	return seed
}

// errorMessage converts a request failure into a single human-readable
// string: the server's structured message when present, then the error
// text, then the action's fixed default.
func errorMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return fallback
}
