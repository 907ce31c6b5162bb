// Package ui provides the Bubble Tea TUI for Vitrine.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrine-dev/vitrine/internal/actions"
	"github.com/vitrine-dev/vitrine/internal/logtail"
	"github.com/vitrine-dev/vitrine/internal/prefs"
	"github.com/vitrine-dev/vitrine/internal/store"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewDetail
	ViewAccount
	ViewOrders
	ViewLog
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Actions     *actions.Actions
	Store       *store.Store
	ThemeName   string
	PrefsPath   string
	LogPath     string
	PerPage     int
	RefreshTick time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	actions   *actions.Actions
	store     *store.Store
	prefsPath string
	perPage   int
	tick      time.Duration

	// UI state
	keys        keyMap
	theme       Theme
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data snapshots, re-read from the store on every tick and after
	// every settled action.
	product store.ProductState
	user    store.UserState

	// Catalog state
	selectedRow int

	// Activity log view
	logPath  string
	logLines []string
	logErr   error

	// Forms
	account accountForm
	review  reviewForm
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.RefreshTick
	if tick == 0 {
		tick = 500 * time.Millisecond
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 10
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Noir"
	}
	theme := GetTheme(themeName)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:         ctx,
		actions:     opts.Actions,
		store:       opts.Store,
		prefsPath:   prefsPath,
		perPage:     perPage,
		tick:        tick,
		keys:        DefaultKeyMap(),
		theme:       theme,
		styles:      theme.Styles(),
		currentView: ViewCatalog,
		logPath:     opts.LogPath,
		account:     newAccountForm(),
		review:      newReviewForm(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.tick),
		// Fetch page 1 immediately on start.
		m.actionCmd(func(ctx context.Context) {
			m.actions.GetProducts(ctx, 1, m.perPage)
		}),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.refreshSnapshots()
		if m.currentView == ViewLog {
			m.refreshLog()
		}
		return m, tickCmd(m.tick)

	case actionSettledMsg:
		m.refreshSnapshots()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) refreshSnapshots() {
	if m.store == nil {
		return
	}
	m.product = m.store.Product()
	m.user = m.store.User()
	if count := len(m.product.Products); count > 0 && m.selectedRow >= count {
		m.selectedRow = count - 1
	}
}

// logTailLines bounds how much of the activity log is kept in memory.
const logTailLines = 200

// refreshLog re-reads the tail of the activity log file.
func (m *Model) refreshLog() {
	if m.logPath == "" {
		m.logLines, m.logErr = nil, nil
		return
	}
	lines, err := logtail.Read(m.logPath, logTailLines)
	m.logLines, m.logErr = logtail.FormatLines(lines), err
}

// Messages

type tickMsg time.Time

// actionSettledMsg signals that an asynchronous action finished and the
// snapshots should be re-read.
type actionSettledMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// actionCmd runs one action on its own task. The dispatches the action
// makes become visible through the periodic snapshot refresh while it
// runs, and immediately once it settles.
func (m Model) actionCmd(fn func(context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		fn(ctx)
		return actionSettledMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	if err != nil && opts.Context != nil && opts.Context.Err() != nil {
		// Signal-driven shutdown is a clean exit.
		return nil
	}
	return err
}
