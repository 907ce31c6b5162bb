package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the header, current view and footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	switch m.currentView {
	case ViewCatalog:
		content = m.renderCatalog()
	case ViewDetail:
		content = m.renderDetail()
	case ViewAccount:
		content = m.renderAccount()
	case ViewOrders:
		content = m.renderOrders()
	case ViewLog:
		content = m.renderLog()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// renderHeader renders the title bar with the signed-in user and the
// loading indicator.
func (m Model) renderHeader() string {
	parts := []string{m.styles.Logo.Render("vitrine")}

	switch m.currentView {
	case ViewCatalog:
		if m.product.FavoritesToggled {
			parts = append(parts, m.styles.AccentText.Render("Favorites"))
		} else {
			parts = append(parts, m.styles.Text.Render(fmt.Sprintf("Catalog p.%d", m.product.Pagination.CurrentPage)))
		}
	case ViewDetail:
		parts = append(parts, m.styles.Text.Render("Product"))
	case ViewAccount:
		parts = append(parts, m.styles.Text.Render("Account"))
	case ViewOrders:
		parts = append(parts, m.styles.Text.Render("Orders"))
	case ViewLog:
		parts = append(parts, m.styles.Text.Render("Activity log"))
	}

	if m.product.Loading || m.user.Loading {
		parts = append(parts, m.styles.WarningText.Render("Working..."))
	}

	if m.user.Info != nil {
		parts = append(parts, m.styles.SuccessText.Render(m.user.Info.FullName))
	} else {
		parts = append(parts, m.styles.MutedText.Render("Not signed in"))
	}

	return m.styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	var hints string
	switch {
	case m.currentView == ViewAccount:
		hints = "tab Next field  enter Submit  ^l Login  ^r Register  ^e Verify  ^f Forgot  ^n New password  ^o Sign out  esc Back"
	case m.currentView == ViewDetail && m.review.open:
		hints = "tab Next field  enter Submit review  esc Cancel"
	case m.currentView == ViewDetail:
		hints = "r Review  f Favorite  esc Back  ? Help"
	case m.currentView == ViewOrders, m.currentView == ViewLog:
		hints = "esc Back  ? Help"
	default:
		hints = "j/k Move  n/p Page  f Favorite  v Favorites  enter Open  a Account  o Orders  ? Help"
	}
	return m.styles.Footer.Width(m.width).Render(hints)
}

// renderCatalog renders the product table.
func (m Model) renderCatalog() string {
	var b strings.Builder

	if m.product.Error != "" {
		b.WriteString(m.styles.DangerText.Render(m.product.Error))
		b.WriteString(m.styles.MutedText.Render("  (x to dismiss)"))
		b.WriteString("\n\n")
	}

	products := m.product.Products
	if len(products) == 0 {
		if m.product.Loading {
			b.WriteString(m.styles.MutedText.Render("Fetching products..."))
		} else if m.product.FavoritesToggled {
			b.WriteString(m.styles.MutedText.Render("No favorites on this page."))
		} else {
			b.WriteString(m.styles.MutedText.Render("No products."))
		}
		return m.styles.Panel.Render(b.String())
	}

	faved := make(map[string]struct{}, len(m.product.Favorites))
	for _, id := range m.product.Favorites {
		faved[id] = struct{}{}
	}

	header := fmt.Sprintf("  %-30s %-14s %8s %6s %6s", "NAME", "BRAND", "PRICE", "RATING", "STOCK")
	b.WriteString(m.styles.MutedText.Render(header))
	b.WriteString("\n")

	for i, p := range products {
		marker := " "
		if _, ok := faved[p.ID]; ok {
			marker = "*"
		}
		row := fmt.Sprintf("%s %-30s %-14s %8.2f %6.1f %6d",
			marker, truncate(p.Name, 30), truncate(p.Brand, 14), p.Price, p.Rating, p.Stock)
		if i == m.selectedRow {
			b.WriteString(m.styles.Selected.Render(row))
		} else {
			b.WriteString(m.styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	if !m.product.FavoritesToggled && m.product.Pagination.LastKey != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("More pages available (n)."))
	}

	return m.styles.Panel.Render(b.String())
}

// renderDetail renders the selected product with its reviews and,
// when open, the review form.
func (m Model) renderDetail() string {
	p := m.product.SelectedProduct
	if p == nil {
		msg := "Loading product..."
		if !m.product.Loading {
			msg = "No product selected."
		}
		return m.styles.Panel.Render(m.styles.MutedText.Render(msg))
	}

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render(p.Name))
	if p.ProductIsNew {
		b.WriteString("  ")
		b.WriteString(m.styles.SuccessText.Render("NEW"))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("%s / %s", p.Brand, p.Category)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render(p.Description))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render(fmt.Sprintf("Price %.2f   Rating %.1f (%d reviews)   Stock %d",
		p.Price, p.Rating, p.NumberOfReviews, p.Stock)))
	b.WriteString("\n")

	if m.product.Error != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.DangerText.Render(m.product.Error))
		b.WriteString("\n")
	}
	if m.product.Reviewed {
		b.WriteString("\n")
		b.WriteString(m.styles.SuccessText.Render("Review submitted."))
		b.WriteString("\n")
	}

	if len(p.Reviews) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("Reviews"))
		b.WriteString("\n")
		for _, r := range p.Reviews {
			b.WriteString(m.styles.Text.Render(fmt.Sprintf("  %d/5 %s", r.Rating, r.Title)))
			b.WriteString("\n")
			if r.Comment != "" {
				b.WriteString(m.styles.MutedText.Render("    " + r.Comment))
				b.WriteString("\n")
			}
		}
	}

	if m.review.open {
		b.WriteString("\n")
		b.WriteString(m.renderForm("Write a review", m.review.labels, m.review.inputs, m.review.focusIdx))
	}

	return m.styles.Panel.Render(b.String())
}

// renderAccount renders the active account form, or the profile when
// signed in.
func (m Model) renderAccount() string {
	var b strings.Builder

	if m.user.Error != "" {
		b.WriteString(m.styles.DangerText.Render(m.user.Error))
		b.WriteString("\n\n")
	}
	if m.user.ServerResponseMsg != "" {
		style := m.styles.SuccessText
		if m.user.ServerResponseStatus >= 400 {
			style = m.styles.DangerText
		}
		b.WriteString(style.Render(m.user.ServerResponseMsg))
		b.WriteString("\n\n")
	}

	// A signed-in user still reaches the verify form via ctrl+e.
	if m.user.Info != nil && m.account.mode != accountVerify {
		info := m.user.Info
		b.WriteString(m.styles.AccentText.Render(info.FullName))
		b.WriteString("\n")
		b.WriteString(m.styles.Text.Render(info.Email))
		b.WriteString("\n")
		if info.Active {
			b.WriteString(m.styles.SuccessText.Render("Email verified"))
		} else {
			b.WriteString(m.styles.WarningText.Render("Email not verified (ctrl+e to verify)"))
		}
		b.WriteString("\n\n")
		b.WriteString(m.styles.MutedText.Render("ctrl+o to sign out"))
		return m.styles.Panel.Render(b.String())
	}

	titles := map[accountMode]string{
		accountLogin:         "Sign in",
		accountRegister:      "Create account",
		accountVerify:        "Verify email",
		accountSendReset:     "Forgot password",
		accountResetPassword: "Set new password",
	}
	b.WriteString(m.renderForm(titles[m.account.mode], m.account.labels, m.account.inputs, m.account.focusIdx))

	return m.styles.Panel.Render(b.String())
}

// renderOrders renders the signed-in user's order history.
func (m Model) renderOrders() string {
	var b strings.Builder

	if m.user.Error != "" {
		b.WriteString(m.styles.DangerText.Render(m.user.Error))
		b.WriteString("\n\n")
	}

	orders := m.user.Orders
	if len(orders) == 0 {
		if m.user.Loading {
			b.WriteString(m.styles.MutedText.Render("Fetching orders..."))
		} else {
			b.WriteString(m.styles.MutedText.Render("No orders."))
		}
		return m.styles.Panel.Render(b.String())
	}

	for _, o := range orders {
		status := m.styles.WarningText.Render("pending")
		if o.IsDelivered {
			status = m.styles.SuccessText.Render("delivered")
		}
		when := ""
		if t := o.ParsedCreatedAt(); !t.IsZero() {
			when = t.Format("2006-01-02")
		}
		b.WriteString(m.styles.Text.Render(fmt.Sprintf("%s  %8.2f  %s  ", when, o.TotalPrice, o.PaymentMethod)))
		b.WriteString(status)
		b.WriteString("\n")
		for _, it := range o.OrderItems {
			b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("    %dx %s @ %.2f", it.Qty, it.Name, it.Price)))
			b.WriteString("\n")
		}
	}

	return m.styles.Panel.Render(b.String())
}

// renderLog renders the tail of the activity log file.
func (m Model) renderLog() string {
	if m.logErr != nil {
		return m.styles.Panel.Render(m.styles.DangerText.Render(m.logErr.Error()))
	}
	if len(m.logLines) == 0 {
		return m.styles.Panel.Render(m.styles.MutedText.Render("Log is empty."))
	}

	lines := m.logLines
	// Keep only what fits between header and footer.
	if max := m.height - 6; max > 0 && len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return m.styles.Panel.Render(m.styles.MutedText.Render(strings.Join(lines, "\n")))
}

// renderForm renders labelled text inputs with the focused field
// highlighted.
func (m Model) renderForm(title string, labels []string, inputs []textinput.Model, focusIdx int) string {
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render(title))
	b.WriteString("\n")
	for i, in := range inputs {
		label := labels[i]
		if i == focusIdx {
			b.WriteString(m.styles.Text.Render("> " + label))
		} else {
			b.WriteString(m.styles.MutedText.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}

// renderHelp renders the full key binding reference.
func (m Model) renderHelp() string {
	lines := []string{
		m.styles.AccentText.Render("vitrine key bindings"),
		"",
		"  j/k, up/down   Move selection",
		"  n/p            Next / previous page",
		"  enter          Open product",
		"  f              Toggle favorite",
		"  v              Favorites-only view",
		"  x              Dismiss catalog error",
		"  a              Account view",
		"  o              Orders view",
		"  L              Activity log",
		"  r              Write a review (product view)",
		"  T              Cycle theme",
		"  esc            Back to catalog",
		"  q, ctrl+c      Quit",
		"",
		m.styles.MutedText.Render("Press any key to close."),
	}
	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
