package app

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

const loginTip = "Tip: Any non-empty username/password will sign you in (demo mode)."

type loginForm struct {
	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      string
}

func newLoginForm() *loginForm {
	username := textinput.New()
	username.Prompt = ""
	username.Placeholder = "Username"
	username.Focus()

	password := textinput.New()
	password.Prompt = ""
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &loginForm{username: username, password: password}
}

func (f *loginForm) Credentials() (string, string) {
	return f.username.Value(), f.password.Value()
}

func (f *loginForm) Reset() {
	f.username.SetValue("")
	f.password.SetValue("")
	f.busy = false
	f.err = ""
	f.setFocus(0)
}

func (f *loginForm) setFocus(idx int) {
	f.focus = idx
	if idx == 0 {
		f.username.Focus()
		f.password.Blur()
		return
	}
	f.password.Focus()
	f.username.Blur()
}

// Update reports whether the form was submitted.
func (f *loginForm) Update(msg tea.KeyPressMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		f.setFocus(1 - f.focus)
		return false, nil
	case "enter":
		if f.busy {
			return false, nil
		}
		return true, nil
	}
	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return false, cmd
}

func (f *loginForm) View(width int) string {
	inner := 36
	if width > 0 && width-8 < inner {
		inner = max(12, width-8)
	}
	f.username.SetWidth(inner)
	f.password.SetWidth(inner)

	var b strings.Builder
	b.WriteString(loginTitleStyle.Render("Sign in to Notes"))
	b.WriteString("\n\n")
	if f.err != "" {
		b.WriteString(errorStyle.Width(inner).Render(f.err))
		b.WriteString("\n\n")
	}
	b.WriteString(f.fieldLabel("Username", 0))
	b.WriteString("\n")
	b.WriteString(f.username.View())
	b.WriteString("\n\n")
	b.WriteString(f.fieldLabel("Password", 1))
	b.WriteString("\n")
	b.WriteString(f.password.View())
	b.WriteString("\n\n")
	label := "Sign in"
	if f.busy {
		label = "Signing in…"
	}
	b.WriteString(buttonPrimaryStyle.Render(label))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(truncateToWidth(loginTip, inner)))
	return loginFrameStyle.Render(b.String())
}

func (f *loginForm) fieldLabel(label string, idx int) string {
	if f.focus == idx {
		return fieldFocusStyle.Render(label)
	}
	return fieldLabelStyle.Render(label)
}
