package app

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"notesapp/internal/logging"
	"notesapp/internal/projection"
	"notesapp/internal/types"
)

const (
	sidebarWidth     = 20
	minMainWidth     = 30
	minContentHeight = 6
	selectHelperText = "Select a note to edit or create a new one."
	searchHint       = "Search notes by title, content, or tag…"
)

type screen int

const (
	screenLogin screen = iota
	screenNotes
)

type focusArea int

const (
	focusGrid focusArea = iota
	focusSidebar
)

// SessionService is the part of the session manager the UI drives.
type SessionService interface {
	Login(ctx context.Context, username, password string) (*types.Session, error)
	Logout(ctx context.Context)
	Current() *types.Session
}

// NoteService is the part of the note synchronizer the UI drives.
type NoteService interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, draft types.Note) (types.Note, error)
	Save(ctx context.Context, note types.Note) (types.Note, error)
	Remove(ctx context.Context, id string) error
	NewDraft(activeCategory string) types.Note
	Notes() []types.Note
	Categories() []string
}

type Options struct {
	Sessions       SessionService
	Notes          NoteService
	Logger         logging.Logger
	SearchDebounce time.Duration
}

type Model struct {
	sessions SessionService
	notes    NoteService
	logger   logging.Logger
	now      func() time.Time
	keys     keyMap

	width  int
	height int
	screen screen
	focus  focusArea

	login   *loginForm
	sidebar *categorySidebar
	search  textinput.Model

	searchFocused bool
	debouncer     *projection.Debouncer
	filter        projection.Filter

	visible    []types.Note
	selectedID string
	selected   int

	editor  *noteEditor
	preview bool
	loading bool
	busy    bool
	status  string
	errText string
}

func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	delay := opts.SearchDebounce
	if delay <= 0 {
		delay = projection.DefaultSearchDebounce
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = searchHint

	m := &Model{
		sessions:  opts.Sessions,
		notes:     opts.Notes,
		logger:    logger,
		now:       time.Now,
		keys:      defaultKeyMap(),
		login:     newLoginForm(),
		sidebar:   newCategorySidebar(sidebarWidth, minContentHeight),
		search:    search,
		debouncer: projection.NewDebouncer("", delay),
		filter:    projection.DefaultFilter(),
	}
	if opts.Sessions != nil && opts.Sessions.Current() != nil {
		m.screen = screenNotes
	}
	m.refresh()
	return m
}

// changeNotifier is implemented by note services that announce revisions.
type changeNotifier interface {
	Subscribe() (<-chan uint64, func())
}

func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if notifier, ok := opts.Notes.(changeNotifier); ok {
		changes, stop := notifier.Subscribe()
		defer stop()
		go func() {
			for rev := range changes {
				p.Send(notesChangedMsg{revision: rev})
			}
		}()
	}
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	if m.screen == screenNotes {
		m.loading = true
		return loadNotesCmd(m.notes)
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.screen == screenLogin:
			return m, m.handleLoginKey(msg)
		case m.editor != nil:
			return m, m.handleEditorKey(msg)
		case m.searchFocused:
			return m, m.handleSearchKey(msg)
		default:
			return m, m.handleNotesKey(msg)
		}
	case loginResultMsg:
		return m, m.onLoginResult(msg)
	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err, "Failed to load notes")
		}
		m.refresh()
		return m, nil
	case noteCreatedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err, "Failed to create note")
			return m, nil
		}
		m.selectedID = msg.note.ID
		m.refresh()
		m.editor = newNoteEditor(msg.note)
		return m, nil
	case noteSavedMsg:
		if m.editor != nil {
			m.editor.busy = false
		}
		if msg.err != nil {
			m.setError(msg.err, "Failed to save note")
			return m, nil
		}
		m.editor = nil
		m.selectedID = msg.note.ID
		m.status = "Saved"
		m.refresh()
		return m, nil
	case noteRemovedMsg:
		if m.editor != nil {
			m.editor.busy = false
		}
		if msg.err != nil {
			m.setError(msg.err, "Failed to delete note")
			return m, nil
		}
		if m.editor != nil && m.editor.NoteID() == msg.id {
			m.editor = nil
		}
		m.status = "Deleted"
		m.refresh()
		return m, nil
	case notesChangedMsg:
		m.refresh()
		return m, nil
	case searchSettleMsg:
		if value := m.debouncer.Value(msg.at); value != m.filter.Search {
			m.filter.Search = value
			m.refresh()
		}
		return m, nil
	case clipboardResultMsg:
		if msg.err != nil {
			m.setError(msg.err, "Copy failed")
			return m, nil
		}
		if msg.method == clipboardMethodOSC52 {
			m.status = "Copied note (OSC52)"
		} else {
			m.status = "Copied note"
		}
		return m, nil
	}
	return m, m.forwardToFocusedInput(msg)
}

func (m *Model) handleLoginKey(msg tea.KeyPressMsg) tea.Cmd {
	submit, cmd := m.login.Update(msg)
	if !submit {
		return cmd
	}
	username, password := m.login.Credentials()
	m.login.busy = true
	m.login.err = ""
	return loginCmd(m.sessions, username, password)
}

func (m *Model) onLoginResult(msg loginResultMsg) tea.Cmd {
	m.login.busy = false
	if msg.err != nil {
		m.login.err = msg.err.Error()
		if m.login.err == "" {
			m.login.err = "Login failed"
		}
		return nil
	}
	m.login.Reset()
	m.screen = screenNotes
	m.errText = ""
	m.loading = true
	return loadNotesCmd(m.notes)
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Blur) {
		m.searchFocused = false
		m.search.Blur()
		return nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.searchChanged())
}

// searchChanged records the new raw text and schedules a settle check once
// the quiet period has passed.
func (m *Model) searchChanged() tea.Cmd {
	m.debouncer.Set(m.search.Value(), m.now())
	return searchSettleCmd(m.debouncer.Delay())
}

func (m *Model) handleEditorKey(msg tea.KeyPressMsg) tea.Cmd {
	action, cmd := m.editor.HandleKey(msg)
	switch action {
	case editorActionCancel:
		m.editor = nil
		return nil
	case editorActionSave:
		m.editor.busy = true
		m.errText = ""
		return saveNoteCmd(m.notes, m.editor.Note())
	case editorActionDelete:
		m.editor.busy = true
		m.errText = ""
		return removeNoteCmd(m.notes, m.editor.NoteID())
	}
	return cmd
}

func (m *Model) handleNotesKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.searchFocused = true
		return m.search.Focus()
	case key.Matches(msg, m.keys.SwitchPane):
		m.setFocus(1 - m.focus)
		return nil
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return nil
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return nil
	case key.Matches(msg, m.keys.New):
		if m.busy || m.loading {
			return nil
		}
		m.busy = true
		m.errText = ""
		return createNoteCmd(m.notes, m.notes.NewDraft(m.filter.Category))
	case key.Matches(msg, m.keys.Edit):
		if m.focus == focusSidebar {
			m.setFocus(focusGrid)
			return nil
		}
		if note, ok := m.selectedNote(); ok {
			m.editor = newNoteEditor(note)
		}
		return nil
	case key.Matches(msg, m.keys.Delete):
		note, ok := m.selectedNote()
		if !ok {
			return nil
		}
		m.errText = ""
		return removeNoteCmd(m.notes, note.ID)
	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
		return nil
	case key.Matches(msg, m.keys.Copy):
		note, ok := m.selectedNote()
		if !ok {
			return nil
		}
		return copyCmd(note.Content)
	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return nil
		}
		m.loading = true
		m.errText = ""
		return loadNotesCmd(m.notes)
	case key.Matches(msg, m.keys.Logout):
		m.logout()
		return nil
	}
	return nil
}

func (m *Model) logout() {
	m.sessions.Logout(context.Background())
	m.screen = screenLogin
	m.login.Reset()
	m.editor = nil
	m.preview = false
	m.errText = ""
	m.status = ""
	m.filter = projection.DefaultFilter()
	m.search.SetValue("")
	m.debouncer = projection.NewDebouncer("", m.debouncer.Delay())
	m.setFocus(focusGrid)
	m.refresh()
}

func (m *Model) forwardToFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.screen == screenLogin:
		if m.login.focus == 0 {
			m.login.username, cmd = m.login.username.Update(msg)
		} else {
			m.login.password, cmd = m.login.password.Update(msg)
		}
	case m.searchFocused:
		m.search, cmd = m.search.Update(msg)
	}
	return cmd
}

func (m *Model) setFocus(area focusArea) {
	m.focus = area
	m.sidebar.SetFocused(area == focusSidebar)
}

func (m *Model) moveSelection(delta int) {
	if m.focus == focusSidebar {
		if category := m.sidebar.Move(delta); category != "" && category != m.filter.Category {
			m.filter.Category = category
			m.refresh()
		}
		return
	}
	if len(m.visible) == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), len(m.visible)-1)
	m.selectedID = m.visible[m.selected].ID
}

func (m *Model) selectedNote() (types.Note, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return types.Note{}, false
	}
	return m.visible[m.selected], true
}

// refresh recomputes the projection and keeps the selection on the same
// note when it is still visible.
func (m *Model) refresh() {
	var all []types.Note
	categories := []string{types.CategoryAll}
	if m.notes != nil {
		all = m.notes.Notes()
		categories = m.notes.Categories()
	}
	m.visible = m.filter.Apply(all)
	m.sidebar.SetCategories(categories, m.filter.Category)

	m.selected = 0
	for i, note := range m.visible {
		if note.ID == m.selectedID {
			m.selected = i
			break
		}
	}
	if len(m.visible) > 0 {
		m.selectedID = m.visible[m.selected].ID
	}
}

func (m *Model) setError(err error, fallback string) {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = fallback
	}
	m.errText = msg
	m.status = ""
	m.logger.Warn("ui action failed", logging.F("fallback", fallback), logging.Err(err))
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	width := m.width
	if width <= 0 {
		width = 100
	}
	height := m.height
	if height <= 0 {
		height = 30
	}
	if m.screen == screenLogin {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.login.View(width))
	}

	navbar := m.renderNavbar(width)
	footer := m.renderFooter(width)
	bodyHeight := max(minContentHeight, height-lipgloss.Height(navbar)-lipgloss.Height(footer))

	m.sidebar.SetSize(sidebarWidth, bodyHeight-1)
	mainWidth := max(minMainWidth, width-sidebarWidth-1)
	main := m.renderMain(mainWidth, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, padLines(m.sidebar.View(), sidebarWidth), " ", main)
	return lipgloss.JoinVertical(lipgloss.Left, navbar, body, footer)
}

func (m *Model) renderNavbar(width int) string {
	brand := brandStyle.Render("N") + " " + navbarStyle.Bold(true).Render("Notes")
	user := ""
	if m.sessions != nil {
		if current := m.sessions.Current(); current != nil {
			user = helpStyle.Render("Hi, " + current.DisplayName)
		}
	}
	newLabel := buttonPrimaryStyle.Render("+ New note (n)")
	if m.loading || m.busy {
		newLabel = buttonDisabledStyle.Render("+ New note (n)")
	}
	searchWidth := max(10, width-lipgloss.Width(brand)-lipgloss.Width(user)-lipgloss.Width(newLabel)-6)
	m.search.SetWidth(searchWidth)
	return lipgloss.JoinHorizontal(lipgloss.Center, brand, "  ", m.search.View(), "  ", user, " ", newLabel)
}

func (m *Model) renderMain(width, height int) string {
	var sections []string
	if m.errText != "" {
		sections = append(sections, errorStyle.Render(truncateToWidth("Error: "+m.errText, width)))
	}
	switch {
	case m.editor != nil:
		sections = append(sections, m.editor.View(width))
	case m.preview:
		if note, ok := m.selectedNote(); ok {
			content := renderMarkdown(note.Content, max(10, width-4))
			if content == "" {
				content = helpStyle.Render("(empty note)")
			}
			sections = append(sections, previewFrameStyle.Width(width).Render(content))
		}
	default:
		sections = append(sections, helpStyle.Render(selectHelperText))
	}

	used := 0
	for _, section := range sections {
		used += lipgloss.Height(section)
	}
	gridHeight := max(cardHeight, height-used-1)
	switch {
	case len(m.visible) > 0:
		sections = append(sections, renderGrid(m.visible, m.selected, width, gridHeight, m.focus == focusGrid))
	case !m.loading:
		sections = append(sections, helpStyle.Render(projection.EmptyListText))
	default:
		sections = append(sections, statusStyle.Render("Loading notes…"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderFooter(width int) string {
	var help string
	switch {
	case m.editor != nil:
	case m.searchFocused:
		help = helpLine(m.keys.Blur)
	default:
		help = helpLine(m.keys.Search, m.keys.SwitchPane, m.keys.New, m.keys.Edit, m.keys.Delete, m.keys.Preview, m.keys.Copy, m.keys.Reload, m.keys.Logout, m.keys.Quit)
	}
	line := help
	if m.status != "" {
		line = m.status + "  " + help
	}
	return statusStyle.Render(truncateToWidth(line, width))
}
