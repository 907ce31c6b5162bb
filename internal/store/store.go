package store

import (
	"sync"

	"github.com/vitrine-dev/vitrine/internal/api"
)

// Intent describes "what happened"; reducers consume intents to compute
// the next state. The interface is sealed: only types in this package can
// be dispatched.
type Intent interface {
	isIntent()
}

// Dispatcher is the write half of the store, consumed by the action layer
// and by test doubles that record dispatch order.
type Dispatcher interface {
	Dispatch(in Intent)
}

// Ensure Store implements Dispatcher at compile time.
var _ Dispatcher = (*Store)(nil)

// Seed carries externally persisted state back into the initial slices on
// startup.
type Seed struct {
	Favorites []string
	UserInfo  *api.UserInfo
	CartItems []CartItem
}

// Store holds the application state slices and applies intents one at a
// time. It is explicitly constructed and passed by reference; there is no
// ambient singleton.
type Store struct {
	mu      sync.RWMutex
	product ProductState
	user    UserState
	cart    CartState
}

// New builds a store with default slices, rehydrated from the seed.
func New(seed Seed) *Store {
	s := &Store{
		product: ProductState{
			Favorites:  cloneStrings(seed.Favorites),
			Pagination: Pagination{CurrentPage: 1},
		},
		cart: CartState{Items: cloneCartItems(seed.CartItems)},
	}
	if seed.UserInfo != nil {
		info := *seed.UserInfo
		s.user.Info = &info
	}
	return s
}

// Dispatch applies one intent to its slice. Updates are serialized, so
// whichever dispatch arrives first wins; ordering across concurrently
// running actions is the action layer's business.
func (s *Store) Dispatch(in Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch in := in.(type) {
	case ProductIntent:
		s.product = reduceProduct(s.product, in)
	case UserIntent:
		s.user = reduceUser(s.user, in)
	case CartIntent:
		s.cart = reduceCart(s.cart, in)
	}
}

// Product returns an independent copy of the catalog slice.
func (s *Store) Product() ProductState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.product
	snap.Products = cloneProducts(s.product.Products)
	snap.Favorites = cloneStrings(s.product.Favorites)
	if s.product.SelectedProduct != nil {
		product := *s.product.SelectedProduct
		snap.SelectedProduct = &product
	}
	return snap
}

// User returns an independent copy of the session slice.
func (s *Store) User() UserState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.user
	snap.Orders = cloneOrders(s.user.Orders)
	if s.user.Info != nil {
		info := *s.user.Info
		snap.Info = &info
	}
	return snap
}

// Cart returns an independent copy of the cart slice.
func (s *Store) Cart() CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return CartState{Items: cloneCartItems(s.cart.Items)}
}

func cloneCartItems(items []CartItem) []CartItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]CartItem, len(items))
	copy(dup, items)
	return dup
}
