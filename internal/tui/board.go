package tui

import (
	"fmt"
	"strings"

	"shopscore/internal/board"
	"shopscore/internal/models"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type BoardModel struct {
	svc      *board.Service
	editor   textarea.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	posts    []models.BoardPost
	posted   bool
	warning  string
	err      error
	width    int
	height   int
}

func NewBoardModel(svc *board.Service) *BoardModel {
	editor := textarea.New()
	editor.Placeholder = "Share a bargain, a recipe, anything… (markdown welcome)"
	editor.CharLimit = 1000
	editor.ShowLineNumbers = false
	editor.SetWidth(60)
	editor.SetHeight(4)
	editor.Focus()

	return &BoardModel{
		svc:      svc,
		editor:   editor,
		viewport: viewport.New(60, 12),
		renderer: newMarkdownRenderer(76),
	}
}

func newMarkdownRenderer(wrap int) *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return renderer
}

func (m *BoardModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := max(40, width-6)
	m.editor.SetWidth(w)
	m.viewport.Width = w
	m.viewport.Height = max(5, height-16)
	m.renderer = newMarkdownRenderer(w - 4)
	m.refreshViewport()
}

// Reload re-reads the board and redraws the post list.
func (m *BoardModel) Reload() {
	posts, warning, err := m.svc.List()
	if err != nil {
		m.err = err
		return
	}
	m.posts = posts
	m.warning = warning
	m.refreshViewport()
}

func (m *BoardModel) refreshViewport() {
	m.viewport.SetContent(m.renderPosts())
}

func (m *BoardModel) renderPosts() string {
	if len(m.posts) == 0 {
		return infoStyle.Render("No posts yet.")
	}

	var b strings.Builder
	for i, p := range m.posts {
		b.WriteString(labelStyle.Render(fmt.Sprintf("#%d", i+1)))
		b.WriteString("\n")
		b.WriteString(m.renderText(p.Text))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *BoardModel) renderText(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+s":
		m.submit()
		return m, nil
	case "pgup":
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
		return m, nil
	case "pgdown":
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
		return m, nil
	}

	m.posted = false
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(keyMsg)
	return m, cmd
}

func (m *BoardModel) submit() {
	m.err = nil
	m.posted = false

	_, warning, err := m.svc.Post(m.editor.Value())
	if err != nil {
		m.err = err
		return
	}
	m.editor.Reset()
	m.posted = true
	m.Reload()
	if warning != "" {
		m.warning = warning
	}
	m.viewport.GotoTop()
}

func (m *BoardModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render(fmt.Sprintf("💬 Bulletin board (%d posts)", len(m.posts)))

	sections := []string{title, m.editor.View()}
	switch {
	case m.err != nil:
		sections = append(sections, errorStyle.Render(fmt.Sprintf("❌ %v", m.err)))
	case m.posted:
		sections = append(sections, successStyle.Render("✅ Posted!"))
	}
	if m.warning != "" {
		sections = append(sections, warningStyle.Render("⚠ "+m.warning))
	}
	sections = append(sections, m.viewport.View())
	sections = append(sections, adaptiveHelpStyle.Render("Ctrl+S: Post • PgUp/PgDn: Scroll posts • Esc: Back to menu"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
