package actions

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitrine-dev/vitrine/internal/api"
	"github.com/vitrine-dev/vitrine/internal/localstore"
	"github.com/vitrine-dev/vitrine/internal/store"
)

// stubService implements api.Service with per-method function fields.
type stubService struct {
	listProducts func(page, perPage int) (api.ProductPage, error)
	getProduct   func(id string) (api.Product, error)
	createReview func(token, productID string, review api.ReviewInput) error
	login        func(email, password string) (api.UserInfo, error)
	register     func(fullName, email, password string) (string, error)
	verifyEmail  func(token string) error
	requestReset func(email string) (string, int, error)
	resetPass    func(password, token string) (string, int, error)
	userOrders   func(token, userID string) ([]api.Order, error)
}

var _ api.Service = (*stubService)(nil)

func (s *stubService) ListProducts(_ context.Context, page, perPage int) (api.ProductPage, error) {
	return s.listProducts(page, perPage)
}
func (s *stubService) GetProduct(_ context.Context, id string) (api.Product, error) {
	return s.getProduct(id)
}
func (s *stubService) CreateReview(_ context.Context, token, productID string, review api.ReviewInput) error {
	return s.createReview(token, productID, review)
}
func (s *stubService) Login(_ context.Context, email, password string) (api.UserInfo, error) {
	return s.login(email, password)
}
func (s *stubService) Register(_ context.Context, fullName, email, password string) (string, error) {
	return s.register(fullName, email, password)
}
func (s *stubService) VerifyEmail(_ context.Context, token string) error {
	return s.verifyEmail(token)
}
func (s *stubService) RequestPasswordReset(_ context.Context, email string) (string, int, error) {
	return s.requestReset(email)
}
func (s *stubService) ResetPassword(_ context.Context, password, token string) (string, int, error) {
	return s.resetPass(password, token)
}
func (s *stubService) GetUserOrders(_ context.Context, token, userID string) ([]api.Order, error) {
	return s.userOrders(token, userID)
}

// eventLog records the interleaving of persistence calls and dispatches
// so tests can assert ordering. Safe for concurrent appends.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	dup := make([]string, len(l.events))
	copy(dup, l.events)
	return dup
}

// tracingState wraps the real store and records the order of dispatches.
type tracingState struct {
	*store.Store
	log *eventLog
}

func (s *tracingState) Dispatch(in store.Intent) {
	s.log.add(fmt.Sprintf("dispatch:%T", in))
	s.Store.Dispatch(in)
}

// tracingKV wraps a localstore.KV and records mutations into the same log.
type tracingKV struct {
	inner localstore.KV
	log   *eventLog
}

func (kv *tracingKV) Get(key string, dest any) (bool, error) { return kv.inner.Get(key, dest) }
func (kv *tracingKV) Set(key string, value any) error {
	kv.log.add("persist:" + key)
	return kv.inner.Set(key, value)
}
func (kv *tracingKV) Remove(key string) error {
	kv.log.add("remove:" + key)
	return kv.inner.Remove(key)
}

type fixture struct {
	actions *Actions
	store   *store.Store
	kv      *localstore.Store
	log     *eventLog
}

func newFixture(t *testing.T, service api.Service, seed store.Seed) fixture {
	t.Helper()

	kv, err := localstore.Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("open localstore: %v", err)
	}
	log := &eventLog{}
	st := store.New(seed)
	a := New(service,
		&tracingState{Store: st, log: log},
		&tracingKV{inner: kv, log: log},
		zerolog.Nop())
	return fixture{actions: a, store: st, kv: kv, log: log}
}

func indexOf(events []string, value string) int {
	for i, e := range events {
		if e == value {
			return i
		}
	}
	return -1
}

func TestGetProducts_SuccessSetsPageAndClearsLoading(t *testing.T) {
	service := &stubService{
		listProducts: func(page, perPage int) (api.ProductPage, error) {
			if page != 2 || perPage != 10 {
				t.Fatalf("request = page %d perPage %d, want 2/10", page, perPage)
			}
			return api.ProductPage{
				Products: []api.Product{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				LastKey:  "k2",
			}, nil
		},
	}
	f := newFixture(t, service, store.Seed{})

	f.actions.GetProducts(context.Background(), 2, 10)

	snap := f.store.Product()
	if len(snap.Products) != 3 {
		t.Fatalf("products = %d, want 3", len(snap.Products))
	}
	if snap.Pagination.CurrentPage != 2 || snap.Pagination.LastKey != "k2" {
		t.Fatalf("pagination = %#v, want page 2 lastKey k2", snap.Pagination)
	}
	if snap.Loading {
		t.Fatalf("loading = true after settle, want false")
	}
	if snap.Error != "" {
		t.Fatalf("error = %q, want empty", snap.Error)
	}

	events := f.log.all()
	if len(events) == 0 || events[0] != "dispatch:store.ProductLoadingSet" {
		t.Fatalf("events = %v, want loading-begin first", events)
	}
	if events[len(events)-1] != "dispatch:store.ProductLoadingSet" {
		t.Fatalf("events = %v, want loading-clear last", events)
	}
}

func TestGetProducts_AbsentProductArrayMeansEmpty(t *testing.T) {
	service := &stubService{
		listProducts: func(page, perPage int) (api.ProductPage, error) {
			return api.ProductPage{}, nil
		},
	}
	f := newFixture(t, service, store.Seed{})
	f.store.Dispatch(store.ProductsReplaced{Products: []api.Product{{ID: "stale"}}})

	f.actions.GetProducts(context.Background(), 1, 10)

	snap := f.store.Product()
	if len(snap.Products) != 0 {
		t.Fatalf("products = %#v, want empty", snap.Products)
	}
	if snap.Pagination.CurrentPage != 1 || snap.Pagination.LastKey != "" {
		t.Fatalf("pagination = %#v, want page 1 no lastKey", snap.Pagination)
	}
}

func TestGetProducts_ErrorMessagePriority(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server message wins",
			err:  &api.APIError{StatusCode: 500, Message: "catalog offline"},
			want: "catalog offline",
		},
		{
			name: "error text when no structured message",
			err:  errors.New("execute request: connection refused"),
			want: "execute request: connection refused",
		},
		{
			name: "status fallback for empty structured message",
			err:  &api.APIError{StatusCode: 502},
			want: "api returned status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubService{
				listProducts: func(page, perPage int) (api.ProductPage, error) {
					return api.ProductPage{}, tt.err
				},
			}
			f := newFixture(t, service, store.Seed{})

			f.actions.GetProducts(context.Background(), 1, 10)

			snap := f.store.Product()
			if snap.Error != tt.want {
				t.Fatalf("error = %q, want %q", snap.Error, tt.want)
			}
			if snap.Loading {
				t.Fatalf("loading = true after failure, want false")
			}
		})
	}
}

func TestGetProduct_SetsSelectionOnly(t *testing.T) {
	service := &stubService{
		getProduct: func(id string) (api.Product, error) {
			return api.Product{ID: id, Name: "Kettle"}, nil
		},
	}
	f := newFixture(t, service, store.Seed{})
	f.store.Dispatch(store.ProductsReplaced{Products: []api.Product{{ID: "x"}}})
	f.store.Dispatch(store.PaginationSet{CurrentPage: 3, LastKey: "k3"})

	f.actions.GetProduct(context.Background(), "p9")

	snap := f.store.Product()
	if snap.SelectedProduct == nil || snap.SelectedProduct.Name != "Kettle" {
		t.Fatalf("selectedProduct = %#v, want Kettle", snap.SelectedProduct)
	}
	if len(snap.Products) != 1 || snap.Pagination.CurrentPage != 3 {
		t.Fatalf("list or pagination touched: %#v", snap)
	}
}

func TestAddToFavorites_PersistsBeforeDispatchAndKeepsDuplicates(t *testing.T) {
	f := newFixture(t, &stubService{}, store.Seed{})

	f.actions.AddToFavorites("p1")
	f.actions.AddToFavorites("p1")

	snap := f.store.Product()
	if len(snap.Favorites) != 2 || snap.Favorites[0] != "p1" || snap.Favorites[1] != "p1" {
		t.Fatalf("favorites = %v, want literal duplicate [p1 p1]", snap.Favorites)
	}

	var persisted []string
	ok, err := f.kv.Get("favorites", &persisted)
	if err != nil || !ok {
		t.Fatalf("persisted favorites = (%v, %v), want present", ok, err)
	}
	if len(persisted) != 2 {
		t.Fatalf("persisted = %v, want duplicate entry", persisted)
	}

	// The write-through must precede the dispatch: a crash in between
	// must not lose the favorite on reload.
	events := f.log.all()
	persistIdx := indexOf(events, "persist:favorites")
	dispatchIdx := indexOf(events, "dispatch:store.FavoritesReplaced")
	if persistIdx == -1 || dispatchIdx == -1 || persistIdx > dispatchIdx {
		t.Fatalf("events = %v, want persist before dispatch", events)
	}
}

func TestFavorites_RoundTripAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	kv, err := localstore.Open(path)
	if err != nil {
		t.Fatalf("open localstore: %v", err)
	}
	st := store.New(store.Seed{})
	a := New(&stubService{}, &tracingState{Store: st, log: &eventLog{}}, kv, zerolog.Nop())

	a.AddToFavorites("p7")

	// Reload: reopen the file and rehydrate a fresh store from it.
	reopened, err := localstore.Open(path)
	if err != nil {
		t.Fatalf("reopen localstore: %v", err)
	}
	seed := SeedFromStore(reopened, zerolog.Nop())
	fresh := store.New(seed)

	favorites := fresh.Product().Favorites
	if len(favorites) != 1 || favorites[0] != "p7" {
		t.Fatalf("rehydrated favorites = %v, want [p7]", favorites)
	}
}

func TestRemoveFromFavorites_FiltersAllCopies(t *testing.T) {
	f := newFixture(t, &stubService{}, store.Seed{Favorites: []string{"a", "b", "a"}})

	f.actions.RemoveFromFavorites("a")

	snap := f.store.Product()
	if len(snap.Favorites) != 1 || snap.Favorites[0] != "b" {
		t.Fatalf("favorites = %v, want [b]", snap.Favorites)
	}
	var persisted []string
	if ok, _ := f.kv.Get("favorites", &persisted); !ok || len(persisted) != 1 {
		t.Fatalf("persisted = %v, want [b]", persisted)
	}
}

func TestToggleFavorites_OnFiltersLoadedPageOffRefetches(t *testing.T) {
	serverPage := []api.Product{{ID: "s1"}, {ID: "s2"}}
	var fetchedPages []int
	service := &stubService{
		listProducts: func(page, perPage int) (api.ProductPage, error) {
			fetchedPages = append(fetchedPages, page)
			return api.ProductPage{Products: serverPage}, nil
		},
	}
	f := newFixture(t, service, store.Seed{Favorites: []string{"p2"}})
	f.store.Dispatch(store.ProductsReplaced{Products: []api.Product{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}})

	f.actions.ToggleFavorites(context.Background(), true)

	snap := f.store.Product()
	if !snap.FavoritesToggled {
		t.Fatalf("favoritesToggled = false, want true")
	}
	if len(snap.Products) != 1 || snap.Products[0].ID != "p2" {
		t.Fatalf("products = %#v, want filtered [p2]", snap.Products)
	}
	if len(fetchedPages) != 0 {
		t.Fatalf("toggle on fetched %v, want purely client-side filter", fetchedPages)
	}

	f.actions.ToggleFavorites(context.Background(), false)

	snap = f.store.Product()
	if snap.FavoritesToggled {
		t.Fatalf("favoritesToggled = true, want false")
	}
	// Back to the server-fetched page-1 state, not the pre-toggle list.
	if len(snap.Products) != 2 || snap.Products[0].ID != "s1" {
		t.Fatalf("products = %#v, want server page [s1 s2]", snap.Products)
	}
	if len(fetchedPages) != 1 || fetchedPages[0] != 1 {
		t.Fatalf("fetched pages = %v, want [1]", fetchedPages)
	}
}

func TestToggleFavorites_InvalidatesInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	service := &stubService{
		listProducts: func(page, perPage int) (api.ProductPage, error) {
			close(started)
			<-release
			return api.ProductPage{Products: []api.Product{{ID: "slow1"}, {ID: "slow2"}}, LastKey: "k9"}, nil
		},
	}
	f := newFixture(t, service, store.Seed{Favorites: []string{"p2"}})
	f.store.Dispatch(store.ProductsReplaced{Products: []api.Product{{ID: "p1"}, {ID: "p2"}}})

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.actions.GetProducts(context.Background(), 3, 10)
	}()

	<-started
	f.actions.ToggleFavorites(context.Background(), true)
	close(release)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("GetProducts did not settle")
	}

	snap := f.store.Product()
	if len(snap.Products) != 1 || snap.Products[0].ID != "p2" {
		t.Fatalf("products = %#v, want toggled view to survive stale fetch", snap.Products)
	}
	if snap.Pagination.LastKey == "k9" {
		t.Fatalf("stale fetch updated pagination")
	}
	if snap.Loading {
		t.Fatalf("loading = true after stale fetch settled, want false")
	}
}

func TestCreateProductReview_SendsWithoutTokenAndSurfacesRejection(t *testing.T) {
	var gotToken string
	requested := false
	service := &stubService{
		createReview: func(token, productID string, review api.ReviewInput) error {
			requested = true
			gotToken = token
			return &api.APIError{StatusCode: 401, Message: "not authorized, no token"}
		},
	}
	f := newFixture(t, service, store.Seed{})

	f.actions.CreateProductReview(context.Background(), "p1", "u1", "nice", 5, "Great")

	if !requested {
		t.Fatalf("request not sent; no local token pre-check is expected")
	}
	if gotToken != "" {
		t.Fatalf("token = %q, want empty", gotToken)
	}
	snap := f.store.Product()
	if snap.Error != "not authorized, no token" {
		t.Fatalf("error = %q, want server rejection", snap.Error)
	}
	if snap.Reviewed {
		t.Fatalf("reviewed = true after rejection, want false")
	}
}

func TestCreateProductReview_SuccessSetsReviewedFlag(t *testing.T) {
	var got api.ReviewInput
	var gotToken, gotProduct string
	service := &stubService{
		createReview: func(token, productID string, review api.ReviewInput) error {
			gotToken, gotProduct, got = token, productID, review
			return nil
		},
	}
	f := newFixture(t, service, store.Seed{UserInfo: &api.UserInfo{ID: "u1", Token: "abc"}})

	f.actions.CreateProductReview(context.Background(), "p1", "u1", "nice", 5, "Great")

	if gotToken != "abc" || gotProduct != "p1" {
		t.Fatalf("sent token %q product %q, want abc/p1", gotToken, gotProduct)
	}
	want := api.ReviewInput{Comment: "nice", UserID: "u1", Rating: 5, Title: "Great"}
	if got != want {
		t.Fatalf("review = %#v, want %#v", got, want)
	}
	if !f.store.Product().Reviewed {
		t.Fatalf("reviewed = false, want true")
	}
}

func TestLogin_PersistsSessionBeforeDispatch(t *testing.T) {
	service := &stubService{
		login: func(email, password string) (api.UserInfo, error) {
			if email != "a@b.com" || password != "secret" {
				t.Fatalf("credentials = %q/%q", email, password)
			}
			return api.UserInfo{ID: "u1", FullName: "A B", Token: "abc"}, nil
		},
	}
	f := newFixture(t, service, store.Seed{})

	f.actions.Login(context.Background(), "a@b.com", "secret")

	user := f.store.User()
	if user.Info == nil || user.Info.Token != "abc" || user.Info.FullName != "A B" {
		t.Fatalf("user info = %#v, want token abc", user.Info)
	}
	if user.Loading {
		t.Fatalf("loading = true after settle, want false")
	}

	var persisted api.UserInfo
	if ok, _ := f.kv.Get("userInfo", &persisted); !ok || persisted.Token != "abc" {
		t.Fatalf("persisted session = %#v, want token abc", persisted)
	}

	events := f.log.all()
	persistIdx := indexOf(events, "persist:userInfo")
	dispatchIdx := indexOf(events, "dispatch:store.UserLoggedIn")
	if persistIdx == -1 || dispatchIdx == -1 || persistIdx > dispatchIdx {
		t.Fatalf("events = %v, want persist before dispatch", events)
	}
}

func TestLogin_FailureSetsErrorAndClearsLoading(t *testing.T) {
	service := &stubService{
		login: func(email, password string) (api.UserInfo, error) {
			return api.UserInfo{}, &api.APIError{StatusCode: 401, Message: "invalid credentials"}
		},
	}
	f := newFixture(t, service, store.Seed{})

	f.actions.Login(context.Background(), "a@b.com", "wrong")

	user := f.store.User()
	if user.Error != "invalid credentials" {
		t.Fatalf("error = %q, want invalid credentials", user.Error)
	}
	if user.Info != nil {
		t.Fatalf("info = %#v, want nil", user.Info)
	}
	if user.Loading {
		t.Fatalf("loading = true after failure, want false")
	}
}

func TestLogout_ClearsEverythingAndIsLocal(t *testing.T) {
	f := newFixture(t, &stubService{}, store.Seed{
		UserInfo:  &api.UserInfo{ID: "u1", Token: "abc"},
		CartItems: []store.CartItem{{ProductID: "p1", Qty: 1}},
	})
	if err := f.kv.Set("userInfo", api.UserInfo{Token: "abc"}); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	if err := f.kv.Set("cartItems", []store.CartItem{{ProductID: "p1"}}); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	f.actions.Logout()

	if f.store.User().Info != nil {
		t.Fatalf("user info survived logout")
	}
	if len(f.store.Cart().Items) != 0 {
		t.Fatalf("cart items survived logout")
	}
	var dest any
	if ok, _ := f.kv.Get("userInfo", &dest); ok {
		t.Fatalf("persisted userInfo survived logout")
	}
	if ok, _ := f.kv.Get("cartItems", &dest); ok {
		t.Fatalf("persisted cartItems survived logout")
	}

	events := f.log.all()
	cartIdx := indexOf(events, "dispatch:store.CartCleared")
	outIdx := indexOf(events, "dispatch:store.UserLoggedOut")
	if cartIdx == -1 || outIdx == -1 || cartIdx > outIdx {
		t.Fatalf("events = %v, want cart clear before logout dispatch", events)
	}
}

func TestRegister_SetsMessageWithoutSession(t *testing.T) {
	service := &stubService{
		register: func(fullName, email, password string) (string, error) {
			return "", nil // server replied 2xx with no message
		},
	}
	f := newFixture(t, service, store.Seed{})

	f.actions.Register(context.Background(), "A B", "a@b.com", "secret")

	user := f.store.User()
	if user.Info != nil {
		t.Fatalf("registration established a session: %#v", user.Info)
	}
	if !strings.Contains(user.ServerResponseMsg, "verify your email") {
		t.Fatalf("serverResponseMsg = %q, want verification prompt", user.ServerResponseMsg)
	}
	var dest any
	if ok, _ := f.kv.Get("userInfo", &dest); ok {
		t.Fatalf("registration persisted a session")
	}
}

func TestVerifyEmail_PatchesPersistedActiveFlag(t *testing.T) {
	service := &stubService{
		verifyEmail: func(token string) error {
			if token != "vtoken" {
				t.Fatalf("token = %q, want vtoken", token)
			}
			return nil
		},
	}
	f := newFixture(t, service, store.Seed{UserInfo: &api.UserInfo{ID: "u1", Token: "abc"}})
	if err := f.kv.Set("userInfo", api.UserInfo{ID: "u1", Token: "abc"}); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	f.actions.VerifyEmail(context.Background(), "vtoken")

	if !f.store.User().Info.Active {
		t.Fatalf("in-memory active flag not set")
	}
	var persisted api.UserInfo
	if ok, _ := f.kv.Get("userInfo", &persisted); !ok || !persisted.Active {
		t.Fatalf("persisted record = %#v, want active true", persisted)
	}
}

func TestVerifyEmail_NoPersistedRecordIsFine(t *testing.T) {
	service := &stubService{verifyEmail: func(token string) error { return nil }}
	f := newFixture(t, service, store.Seed{})

	f.actions.VerifyEmail(context.Background(), "vtoken")

	var dest any
	if ok, _ := f.kv.Get("userInfo", &dest); ok {
		t.Fatalf("verification created a persisted record")
	}
	if f.store.User().Error != "" {
		t.Fatalf("error = %q, want empty", f.store.User().Error)
	}
}

func TestPasswordResetFlows_PopulateMessageAndStatus(t *testing.T) {
	service := &stubService{
		requestReset: func(email string) (string, int, error) {
			return "email sent", 200, nil
		},
		resetPass: func(password, token string) (string, int, error) {
			return "", 200, nil // empty message falls back to the default
		},
	}
	f := newFixture(t, service, store.Seed{})

	f.actions.SendResetEmail(context.Background(), "a@b.com")
	user := f.store.User()
	if user.ServerResponseMsg != "email sent" || user.ServerResponseStatus != 200 {
		t.Fatalf("state = %q/%d, want email sent/200", user.ServerResponseMsg, user.ServerResponseStatus)
	}
	if user.Info != nil {
		t.Fatalf("reset request touched session state")
	}

	f.actions.ResetPassword(context.Background(), "hunter2", "rst")
	user = f.store.User()
	if user.ServerResponseMsg != "Password reset successfully." {
		t.Fatalf("serverResponseMsg = %q, want default reset message", user.ServerResponseMsg)
	}
}

func TestGetUserOrders_ReplacesOrders(t *testing.T) {
	service := &stubService{
		userOrders: func(token, userID string) ([]api.Order, error) {
			if token != "abc" || userID != "u1" {
				t.Fatalf("request = %q/%q, want abc/u1", token, userID)
			}
			return []api.Order{{ID: "o1"}, {ID: "o2"}}, nil
		},
	}
	f := newFixture(t, service, store.Seed{UserInfo: &api.UserInfo{ID: "u1", Token: "abc"}})

	f.actions.GetUserOrders(context.Background())

	user := f.store.User()
	if len(user.Orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(user.Orders))
	}
	if user.Loading {
		t.Fatalf("loading = true after settle, want false")
	}
}

func TestGetUserOrders_AnonymousFails(t *testing.T) {
	f := newFixture(t, &stubService{}, store.Seed{})

	f.actions.GetUserOrders(context.Background())

	user := f.store.User()
	if user.Error == "" {
		t.Fatalf("error empty, want orders failure message")
	}
	if user.Loading {
		t.Fatalf("loading = true after settle, want false")
	}
}

func TestResetActions_ClearTransientFields(t *testing.T) {
	f := newFixture(t, &stubService{}, store.Seed{})
	f.store.Dispatch(store.ProductErrorSet{Message: "boom"})
	f.store.Dispatch(store.UserErrorSet{Message: "boom"})
	f.store.Dispatch(store.ServerResponseMsgSet{Message: "msg"})

	f.actions.ResetProductError()
	f.actions.ResetUserState()

	if f.store.Product().Error != "" {
		t.Fatalf("product error not cleared")
	}
	user := f.store.User()
	if user.Error != "" || user.ServerResponseMsg != "" {
		t.Fatalf("user transient fields not cleared: %+v", user)
	}
}
