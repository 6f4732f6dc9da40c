package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuEntry struct {
	label  string
	screen Screen
}

// menuEntries maps each mode to its screen; MenuScreen on an entry means exit.
var menuEntries = []menuEntry{
	{"📝 Register a product", RegisterScreen},
	{"📋 Browse the catalog", CatalogScreen},
	{"🛒 Evaluate a purchase", EvaluateScreen},
	{"💬 Bulletin board", BoardScreen},
	{"🚪 Exit", MenuScreen},
}

type MenuModel struct {
	cursor int
	width  int
	height int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(len(menuEntries)-1, m.cursor+1)
	case "enter", " ":
		entry := menuEntries[m.cursor]
		if entry.screen == MenuScreen {
			return m, tea.Quit
		}
		return m, ChangeScreen(entry.screen)
	}
	return m, nil
}

func (m *MenuModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Align(lipgloss.Center).Render("🥕 Shopping Helper")

	var menu strings.Builder
	for i, entry := range menuEntries {
		if i == m.cursor {
			menu.WriteString("> " + selectedMenuItemStyle.Render(entry.label) + "\n")
		} else {
			menu.WriteString("  " + menuItemStyle.Render(entry.label) + "\n")
		}
	}

	help := adaptiveHelpStyle.Align(lipgloss.Center).Render("↑/↓ or j/k: Navigate • Enter: Select • q: Quit")
	content := lipgloss.JoinVertical(lipgloss.Center, title, menu.String(), help)

	if m.width > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
