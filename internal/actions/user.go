package actions

import (
	"context"

	"github.com/vitrine-dev/vitrine/internal/api"
	"github.com/vitrine-dev/vitrine/internal/store"
)

const (
	defaultLoginError      = "Login failed. Please try again."
	defaultRegisterError   = "Registration failed. Please try again."
	defaultVerifyError     = "Email verification failed. Please try again."
	defaultResetMailError  = "Failed to send password reset email. Please try again."
	defaultResetError      = "Password reset failed. Please try again."
	defaultOrdersError     = "Failed to fetch user orders. Please try again."
	defaultRegisterMessage = "Registration successful! Please verify your email."
	defaultResetMailMsg    = "Password reset email sent successfully."
	defaultResetMsg        = "Password reset successfully."
)

// Login exchanges credentials for a session. The full server response is
// persisted under the userInfo key before the login intent is dispatched,
// so a reload right after seeing the logged-in UI still finds the session.
// Loading is cleared on every exit path.
func (a *Actions) Login(ctx context.Context, email, password string) {
	a.state.Dispatch(store.UserLoadingSet{Loading: true})
	defer a.state.Dispatch(store.UserLoadingSet{Loading: false})

	info, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.log.Error().Err(err).Str("email", email).Msg("login failed")
		a.state.Dispatch(store.UserErrorSet{Message: errorMessage(err, defaultLoginError)})
		return
	}
	if err := a.kv.Set(keyUserInfo, info); err != nil {
		a.log.Error().Err(err).Msg("persisting session failed")
		a.state.Dispatch(store.UserErrorSet{Message: errorMessage(err, defaultLoginError)})
		return
	}
	a.state.Dispatch(store.UserLoggedIn{Info: info})
}

// Logout clears the session and the cart. Purely local and synchronous;
// it always succeeds regardless of any in-flight request. Persisted keys
// are removed before the intents are dispatched.
func (a *Actions) Logout() {
	if err := a.kv.Remove(keyUserInfo); err != nil {
		a.log.Warn().Err(err).Msg("removing persisted session failed")
	}
	if err := a.kv.Remove(keyCartItems); err != nil {
		a.log.Warn().Err(err).Msg("removing persisted cart failed")
	}
	a.state.Dispatch(store.CartCleared{})
	a.state.Dispatch(store.UserLoggedOut{})
}

// Register creates an account. Success only records the server's message;
// no session is established, so registration must never be treated as a
// login.
func (a *Actions) Register(ctx context.Context, fullName, email, password string) {
	a.state.Dispatch(store.UserLoadingSet{Loading: true})
	defer a.state.Dispatch(store.UserLoadingSet{Loading: false})

	msg, err := a.api.Register(ctx, fullName, email, password)
	if err != nil {
		a.log.Error().Err(err).Str("email", email).Msg("registration failed")
		a.state.Dispatch(store.UserErrorSet{Message: errorMessage(err, defaultRegisterError)})
		return
	}
	if msg == "" {
		msg = defaultRegisterMessage
	}
	a.state.Dispatch(store.ServerResponseMsgSet{Message: msg})
}

// VerifyEmail confirms the account behind the verification token. On
// success the persisted session record, if one exists, gets its active
// flag patched in place. This is a narrow exception to server-as-source-
// of-truth: only the flag is touched, no fresh record is fetched.
func (a *Actions) VerifyEmail(ctx context.Context, token string) {
	a.state.Dispatch(store.UserLoadingSet{Loading: true})
	defer a.state.Dispatch(store.UserLoadingSet{Loading: false})

	if err := a.api.VerifyEmail(ctx, token); err != nil {
		a.log.Error().Err(err).Msg("email verification failed")
		a.state.Dispatch(store.UserErrorSet{Message: errorMessage(err, defaultVerifyError)})
		return
	}

	var info api.UserInfo
	if ok, err := a.kv.Get(keyUserInfo, &info); err == nil && ok {
		info.Active = true
		if err := a.kv.Set(keyUserInfo, info); err != nil {
			a.log.Warn().Err(err).Msg("patching persisted session failed")
		}
	}
	a.state.Dispatch(store.EmailVerified{})
}

// SendResetEmail asks the server to mail a password reset link. Only the
// transient response message and status are populated; session state is
// untouched.
func (a *Actions) SendResetEmail(ctx context.Context, email string) {
	a.state.Dispatch(store.UserLoadingSet{Loading: true})
	defer a.state.Dispatch(store.UserLoadingSet{Loading: false})

	msg, status, err := a.api.RequestPasswordReset(ctx, email)
	if err != nil {
		a.log.Error().Err(err).Str("email", email).Msg("reset email request failed")
		a.state.Dispatch(store.UserErrorSet{Message: errorMessage(err, defaultResetMailError)})
		return
	}
	if msg == "" {
		msg = defaultResetMailMsg
	}
	a.state.Dispatch(store.ServerResponseMsgSet{Message: msg})
	a.state.Dispatch(store.ServerResponseStatusSet{Status: status})
}

// ResetPassword sets a new password using the emailed reset token. Like
// SendResetEmail, a stateless request/response pair.
func (a *Actions) ResetPassword(ctx context.Context, password, token string) {
	a.state.Dispatch(store.UserLoadingSet{Loading: true})
	defer a.state.Dispatch(store.UserLoadingSet{Loading: false})

	msg, status, err := a.api.ResetPassword(ctx, password, token)
	if err != nil {
		a.log.Error().Err(err).Msg("password reset failed")
		a.state.Dispatch(store.UserErrorSet{Message: errorMessage(err, defaultResetError)})
		return
	}
	if msg == "" {
		msg = defaultResetMsg
	}
	a.state.Dispatch(store.ServerResponseMsgSet{Message: msg})
	a.state.Dispatch(store.ServerResponseStatusSet{Status: status})
}

// GetUserOrders replaces the order history for the authenticated user.
func (a *Actions) GetUserOrders(ctx context.Context) {
	a.state.Dispatch(store.UserLoadingSet{Loading: true})
	defer a.state.Dispatch(store.UserLoadingSet{Loading: false})

	info := a.state.User().Info
	if info == nil {
		a.state.Dispatch(store.UserErrorSet{Message: defaultOrdersError})
		return
	}

	orders, err := a.api.GetUserOrders(ctx, info.Token, info.ID)
	if err != nil {
		a.log.Error().Err(err).Str("user", info.ID).Msg("orders fetch failed")
		a.state.Dispatch(store.UserErrorSet{Message: errorMessage(err, defaultOrdersError)})
		return
	}
	a.state.Dispatch(store.OrdersReplaced{Orders: orders})
}

// ResetUserState clears the transient session fields (error, server
// message, status) without touching the session itself.
func (a *Actions) ResetUserState() {
	a.state.Dispatch(store.UserStateReset{})
}
