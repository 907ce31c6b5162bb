package store

// CartItem is the persisted shape of one cart line under the cartItems
// key. The cart feature itself lives elsewhere; this slice only exists so
// logout can clear it.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

// CartState is the cart collaborator's slice.
type CartState struct {
	Items []CartItem
}

// CartIntent is the closed set of transitions on CartState.
type CartIntent interface {
	Intent
	cartIntent()
}

// CartCleared empties the cart; dispatched by logout.
type CartCleared struct{}

func (CartCleared) cartIntent() {}
func (CartCleared) isIntent()   {}

func reduceCart(s CartState, in CartIntent) CartState {
	switch in.(type) {
	case CartCleared:
		s.Items = nil
	}
	return s
}
