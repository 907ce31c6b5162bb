package store

import "github.com/vitrine-dev/vitrine/internal/api"

// UserState is the session slice. A non-nil Info signals an authenticated
// session.
type UserState struct {
	Info                 *api.UserInfo
	Loading              bool
	Error                string
	ServerResponseMsg    string
	ServerResponseStatus int
	Orders               []api.Order
}

// UserIntent is the closed set of transitions on UserState.
type UserIntent interface {
	Intent
	userIntent()
}

// UserLoadingSet marks a session request entering or leaving flight.
// Entering flight resets the transient request-lifecycle fields so stale
// messages from a previous request never survive into a new one.
type UserLoadingSet struct{ Loading bool }

// UserErrorSet records a failed session request.
type UserErrorSet struct{ Message string }

// UserLoggedIn stores the full login response. The caller persists the
// record before dispatching.
type UserLoggedIn struct{ Info api.UserInfo }

// UserLoggedOut clears the session. Always local and always succeeds.
type UserLoggedOut struct{}

// EmailVerified flips the active flag on the in-memory session record if
// one exists.
type EmailVerified struct{}

// ServerResponseMsgSet records an informational server message (register,
// password reset flows).
type ServerResponseMsgSet struct{ Message string }

// ServerResponseStatusSet records the HTTP status paired with the message.
type ServerResponseStatusSet struct{ Status int }

// OrdersReplaced swaps the order history wholesale.
type OrdersReplaced struct{ Orders []api.Order }

// UserStateReset clears the transient fields; used when a form screen is
// left or re-entered.
type UserStateReset struct{}

func (UserLoadingSet) userIntent()          {}
func (UserErrorSet) userIntent()            {}
func (UserLoggedIn) userIntent()            {}
func (UserLoggedOut) userIntent()           {}
func (EmailVerified) userIntent()           {}
func (ServerResponseMsgSet) userIntent()    {}
func (ServerResponseStatusSet) userIntent() {}
func (OrdersReplaced) userIntent()          {}
func (UserStateReset) userIntent()          {}

func (UserLoadingSet) isIntent()          {}
func (UserErrorSet) isIntent()            {}
func (UserLoggedIn) isIntent()            {}
func (UserLoggedOut) isIntent()           {}
func (EmailVerified) isIntent()           {}
func (ServerResponseMsgSet) isIntent()    {}
func (ServerResponseStatusSet) isIntent() {}
func (OrdersReplaced) isIntent()          {}
func (UserStateReset) isIntent()          {}

// reduceUser computes the next session slice. Pure: the input state is
// never mutated.
func reduceUser(s UserState, in UserIntent) UserState {
	switch in := in.(type) {
	case UserLoadingSet:
		s.Loading = in.Loading
		if in.Loading {
			s.Error = ""
			s.ServerResponseMsg = ""
			s.ServerResponseStatus = 0
		}
	case UserErrorSet:
		s.Error = in.Message
		s.Loading = false
	case UserLoggedIn:
		info := in.Info
		s.Info = &info
		s.Error = ""
	case UserLoggedOut:
		s.Info = nil
		s.Orders = nil
	case EmailVerified:
		if s.Info != nil {
			info := *s.Info
			info.Active = true
			s.Info = &info
		}
	case ServerResponseMsgSet:
		s.ServerResponseMsg = in.Message
	case ServerResponseStatusSet:
		s.ServerResponseStatus = in.Status
	case OrdersReplaced:
		s.Orders = cloneOrders(in.Orders)
	case UserStateReset:
		s.Error = ""
		s.ServerResponseMsg = ""
		s.ServerResponseStatus = 0
	}
	return s
}

func cloneOrders(orders []api.Order) []api.Order {
	if len(orders) == 0 {
		return nil
	}
	dup := make([]api.Order, len(orders))
	copy(dup, orders)
	return dup
}
