package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrine-dev/vitrine/internal/prefs"
)

// handleKey dispatches keyboard input by current view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, even inside a form.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Forms capture all typing, so route to them before the
	// single-letter shortcuts.
	if m.currentView == ViewAccount {
		return m.handleAccountKey(msg)
	}
	if m.currentView == ViewDetail && m.review.open {
		return m.handleReviewKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme()

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewCatalog
		return m, nil

	case key.Matches(msg, m.keys.ViewAccount):
		m.currentView = ViewAccount
		return m, nil

	case key.Matches(msg, m.keys.ViewOrders):
		m.currentView = ViewOrders
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.GetUserOrders(ctx)
		})

	case key.Matches(msg, m.keys.ViewLog):
		m.currentView = ViewLog
		m.refreshLog()
		return m, nil
	}

	switch m.currentView {
	case ViewCatalog:
		return m.handleCatalogKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.product.Products

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(products)-1 {
			m.selectedRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		// Paging is disabled while the favorites filter is on; the
		// filtered view is a single local page.
		if m.product.FavoritesToggled {
			return m, nil
		}
		page := m.product.Pagination.CurrentPage + 1
		m.selectedRow = 0
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.GetProducts(ctx, page, m.perPage)
		})

	case key.Matches(msg, m.keys.PrevPage):
		if m.product.FavoritesToggled || m.product.Pagination.CurrentPage <= 1 {
			return m, nil
		}
		page := m.product.Pagination.CurrentPage - 1
		m.selectedRow = 0
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.GetProducts(ctx, page, m.perPage)
		})

	case key.Matches(msg, m.keys.Favorite):
		if m.selectedRow >= len(products) {
			return m, nil
		}
		id := products[m.selectedRow].ID
		faved := false
		for _, f := range m.product.Favorites {
			if f == id {
				faved = true
				break
			}
		}
		return m, m.actionCmd(func(context.Context) {
			if faved {
				m.actions.RemoveFromFavorites(id)
			} else {
				m.actions.AddToFavorites(id)
			}
		})

	case key.Matches(msg, m.keys.ToggleFaves):
		toggled := !m.product.FavoritesToggled
		m.selectedRow = 0
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.ToggleFavorites(ctx, toggled)
		})

	case key.Matches(msg, m.keys.Open):
		if m.selectedRow >= len(products) {
			return m, nil
		}
		id := products[m.selectedRow].ID
		m.currentView = ViewDetail
		m.review.hide()
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.GetProduct(ctx, id)
		})

	case key.Matches(msg, m.keys.ClearError):
		return m, m.actionCmd(func(context.Context) {
			m.actions.ResetProductError()
		})
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Review):
		m.review.show()
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if m.product.SelectedProduct == nil {
			return m, nil
		}
		id := m.product.SelectedProduct.ID
		faved := false
		for _, f := range m.product.Favorites {
			if f == id {
				faved = true
				break
			}
		}
		return m, m.actionCmd(func(context.Context) {
			if faved {
				m.actions.RemoveFromFavorites(id)
			} else {
				m.actions.AddToFavorites(id)
			}
		})
	}
	return m, nil
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.review.hide()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.review.next()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.product.SelectedProduct == nil {
			m.review.hide()
			return m, nil
		}
		productID := m.product.SelectedProduct.ID
		userID := ""
		if m.user.Info != nil {
			userID = m.user.Info.ID
		}
		comment := m.review.comment()
		rating := m.review.rating()
		title := m.review.title()
		m.review.hide()
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.CreateProductReview(ctx, productID, userID, comment, rating, title)
		})
	}

	return m, m.review.update(msg)
}

func (m Model) handleAccountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewCatalog
		return m, m.actionCmd(func(context.Context) {
			m.actions.ResetUserState()
		})

	case key.Matches(msg, m.keys.NextField):
		m.account.next()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitAccountForm()
	}

	// Mode switching uses ctrl-shortcuts so plain letters keep going
	// to the focused text field.
	switch msg.String() {
	case "ctrl+l":
		m.account.setMode(accountLogin)
		return m, nil
	case "ctrl+r":
		m.account.setMode(accountRegister)
		return m, nil
	case "ctrl+e":
		m.account.setMode(accountVerify)
		return m, nil
	case "ctrl+f":
		m.account.setMode(accountSendReset)
		return m, nil
	case "ctrl+n":
		m.account.setMode(accountResetPassword)
		return m, nil
	case "ctrl+o":
		if m.user.Info != nil {
			return m, m.actionCmd(func(context.Context) {
				m.actions.Logout()
			})
		}
		return m, nil
	}

	return m, m.account.update(msg)
}

func (m Model) submitAccountForm() (tea.Model, tea.Cmd) {
	switch m.account.mode {
	case accountLogin:
		email, password := m.account.value(0), m.account.value(1)
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.Login(ctx, email, password)
		})

	case accountRegister:
		name, email, password := m.account.value(0), m.account.value(1), m.account.value(2)
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.Register(ctx, name, email, password)
		})

	case accountVerify:
		token := m.account.value(0)
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.VerifyEmail(ctx, token)
		})

	case accountSendReset:
		email := m.account.value(0)
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.SendResetEmail(ctx, email)
		})

	case accountResetPassword:
		token, password := m.account.value(0), m.account.value(1)
		return m, m.actionCmd(func(ctx context.Context) {
			m.actions.ResetPassword(ctx, password, token)
		})
	}
	return m, nil
}

// cycleTheme advances to the next theme and persists the choice.
func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	name := NextTheme(m.theme.Name)
	m.theme = GetTheme(name)
	m.styles = m.theme.Styles()

	path := m.prefsPath
	perPage := m.perPage
	return m, func() tea.Msg {
		p, _ := prefs.Load(path)
		p.Theme = name
		p.PerPage = perPage
		_ = prefs.Save(path, p)
		return nil
	}
}
