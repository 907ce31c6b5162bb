package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// accountMode selects which account form is shown.
type accountMode int

const (
	accountLogin accountMode = iota
	accountRegister
	accountVerify
	accountSendReset
	accountResetPassword
)

// accountForm holds the inputs for the login, registration and password
// reset forms. The inputs slice is rebuilt whenever the mode changes.
type accountForm struct {
	mode     accountMode
	inputs   []textinput.Model
	labels   []string
	focusIdx int
}

func newAccountForm() accountForm {
	f := accountForm{}
	f.setMode(accountLogin)
	return f
}

// setMode switches the form layout and resets all fields.
func (f *accountForm) setMode(mode accountMode) {
	f.mode = mode
	f.focusIdx = 0

	switch mode {
	case accountLogin:
		f.labels = []string{"Email", "Password"}
		f.inputs = []textinput.Model{
			newFormInput("you@example.com", 100),
			newPasswordInput(),
		}
	case accountRegister:
		f.labels = []string{"Name", "Email", "Password"}
		f.inputs = []textinput.Model{
			newFormInput("Full name", 100),
			newFormInput("you@example.com", 100),
			newPasswordInput(),
		}
	case accountVerify:
		f.labels = []string{"Verification token"}
		f.inputs = []textinput.Model{
			newFormInput("Token from the welcome email", 200),
		}
	case accountSendReset:
		f.labels = []string{"Email"}
		f.inputs = []textinput.Model{
			newFormInput("you@example.com", 100),
		}
	case accountResetPassword:
		f.labels = []string{"Reset token", "New password"}
		f.inputs = []textinput.Model{
			newFormInput("Token from the reset email", 200),
			newPasswordInput(),
		}
	}

	f.inputs[0].Focus()
}

// next moves focus to the following field.
func (f *accountForm) next() {
	f.inputs[f.focusIdx].Blur()
	f.focusIdx = (f.focusIdx + 1) % len(f.inputs)
	f.inputs[f.focusIdx].Focus()
}

// update forwards a key to the focused field.
func (f *accountForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focusIdx], cmd = f.inputs[f.focusIdx].Update(msg)
	return cmd
}

// value returns the trimmed content of field i.
func (f *accountForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// reviewForm holds the inputs for submitting a product review.
type reviewForm struct {
	open     bool
	inputs   []textinput.Model
	labels   []string
	focusIdx int
}

func newReviewForm() reviewForm {
	title := newFormInput("Short summary", 100)
	rating := newFormInput("1-5", 1)
	comment := newFormInput("What did you think?", 500)
	return reviewForm{
		labels: []string{"Title", "Rating", "Comment"},
		inputs: []textinput.Model{title, rating, comment},
	}
}

func (f *reviewForm) show() {
	f.open = true
	f.focusIdx = 0
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[0].Focus()
}

func (f *reviewForm) hide() {
	f.open = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *reviewForm) next() {
	f.inputs[f.focusIdx].Blur()
	f.focusIdx = (f.focusIdx + 1) % len(f.inputs)
	f.inputs[f.focusIdx].Focus()
}

func (f *reviewForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focusIdx], cmd = f.inputs[f.focusIdx].Update(msg)
	return cmd
}

// rating parses the rating field, clamping to the 1-5 range the API
// accepts. An unparsable value falls back to 5.
func (f *reviewForm) rating() int {
	n, err := strconv.Atoi(strings.TrimSpace(f.inputs[1].Value()))
	if err != nil {
		return 5
	}
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

func (f *reviewForm) title() string {
	return strings.TrimSpace(f.inputs[0].Value())
}

func (f *reviewForm) comment() string {
	return strings.TrimSpace(f.inputs[2].Value())
}

func newFormInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func newPasswordInput() textinput.Model {
	ti := newFormInput("Password", 100)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	return ti
}
