package app

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Quit       key.Binding
	Search     key.Binding
	Blur       key.Binding
	SwitchPane key.Binding
	Up         key.Binding
	Down       key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Preview    key.Binding
	Copy       key.Binding
	Reload     key.Binding
	Logout     key.Binding
}

type editorKeyMap struct {
	Save      key.Binding
	Cancel    key.Binding
	Delete    key.Binding
	NextField key.Binding
	PrevField key.Binding
	NextCat   key.Binding
	PrevCat   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Blur:       key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "leave search")),
		SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "categories/notes")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Preview:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Logout:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
	}
}

func defaultEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Delete:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		NextCat:   key.NewBinding(key.WithKeys("right", "l", "space"), key.WithHelp("→", "next category")),
		PrevCat:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous category")),
	}
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
