package tui

import (
	"fmt"
	"strconv"
	"strings"

	"shopscore/internal/compare"
	"shopscore/internal/models"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	cmpCategory = iota
	cmpName
	cmpPrice
	cmpPerformance
	cmpWeightA
	cmpWeightB
	cmpFieldCount
)

const weightStep = 0.05

// CompareModel is the standalone comparator program: one shared item list, two users' weights.
type CompareModel struct {
	comparator  *compare.Comparator
	categoryIdx int
	nameInput   textinput.Model
	priceInput  textinput.Model
	performance int
	weightA     compare.Weights
	weightB     compare.Weights
	focused     int
	selected    int
	barA        progress.Model
	barB        progress.Model
	err         error
	quitting    bool
	width       int
	height      int
}

func NewCompareModel(c *compare.Comparator) *CompareModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "item name"
	nameInput.CharLimit = 80

	priceInput := textinput.New()
	priceInput.Placeholder = "0.00"
	priceInput.CharLimit = 12

	m := &CompareModel{
		comparator:  c,
		nameInput:   nameInput,
		priceInput:  priceInput,
		performance: 5,
		weightA:     compare.NewWeights(0.5),
		weightB:     compare.NewWeights(0.5),
		focused:     cmpCategory,
		barA:        progress.New(progress.WithSolidFill("#7ccf8a"), progress.WithoutPercentage(), progress.WithWidth(20)),
		barB:        progress.New(progress.WithSolidFill("#00aadd"), progress.WithoutPercentage(), progress.WithWidth(20)),
	}
	m.updateInputFocus()
	return m
}

func (m *CompareModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *CompareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *CompareModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "down":
		m.focused = cycle(m.focused, 1, cmpFieldCount)
		m.updateInputFocus()
		return m, nil
	case "shift+tab", "up":
		m.focused = cycle(m.focused, -1, cmpFieldCount)
		m.updateInputFocus()
		return m, nil
	case "enter":
		m.addItem()
		return m, nil
	case "pgup":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "pgdown":
		if m.selected < m.comparator.Len()-1 {
			m.selected++
		}
		return m, nil
	case "ctrl+d":
		m.removeSelected()
		return m, nil
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.focused {
		case cmpCategory:
			m.categoryIdx = cycle(m.categoryIdx, delta, len(models.Categories))
			return m, nil
		case cmpPerformance:
			m.performance = clampRating(m.performance + delta)
			return m, nil
		case cmpWeightA:
			m.weightA = compare.NewWeights(m.weightA.Price + float64(delta)*weightStep)
			return m, nil
		case cmpWeightB:
			m.weightB = compare.NewWeights(m.weightB.Price + float64(delta)*weightStep)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case cmpName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case cmpPrice:
		m.priceInput, cmd = m.priceInput.Update(msg)
	}
	return m, cmd
}

func (m *CompareModel) updateInputFocus() {
	if m.focused == cmpName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
	if m.focused == cmpPrice {
		m.priceInput.Focus()
	} else {
		m.priceInput.Blur()
	}
}

// addItem takes the name as typed; the comparator does not require one.
func (m *CompareModel) addItem() {
	m.err = nil
	price, err := parsePrice("price", m.priceInput.Value())
	if err != nil {
		m.err = err
		return
	}
	m.comparator.AddItem(models.Categories[m.categoryIdx], m.nameInput.Value(), price, m.performance)
	m.nameInput.SetValue("")
	m.priceInput.SetValue("")
}

func (m *CompareModel) removeSelected() {
	ranked := m.comparator.Rank(m.weightA, m.weightB)
	if m.selected < 0 || m.selected >= len(ranked) {
		return
	}
	m.comparator.RemoveItem(ranked[m.selected].Item.ID)
	if m.selected >= m.comparator.Len() {
		m.selected = max(0, m.comparator.Len()-1)
	}
}

func (m *CompareModel) label(field int, text string) string {
	if field == m.focused {
		return focusedLabelStyle.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}

func weightLine(w compare.Weights) string {
	return valueStyle.Render(fmt.Sprintf("price %.2f / value %.2f", w.Price, w.Value()))
}

func (m *CompareModel) View() string {
	if m.quitting {
		return ""
	}
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("⚖️  Price / value comparator")

	categories := make([]string, 0, len(models.Categories))
	for i, c := range models.Categories {
		style := menuItemStyle.Margin(0).Padding(0, 1)
		if i == m.categoryIdx {
			style = selectedMenuItemStyle.Margin(0).Padding(0, 1)
		}
		categories = append(categories, style.Render(c))
	}

	form := adaptiveFormStyle.Render(
		m.label(cmpCategory, "Category:") + "\n" + strings.Join(categories, " ") + "\n\n" +
			m.label(cmpName, "Name:") + "\n" + m.nameInput.View() + "\n\n" +
			m.label(cmpPrice, "Price (円):") + "\n" + m.priceInput.View() + "\n\n" +
			m.label(cmpPerformance, "Performance (1-10):") + "\n" + valueStyle.Render(fmt.Sprintf("%s %d", ratingBar(m.performance), m.performance)) + "\n\n" +
			m.label(cmpWeightA, "User A weights:") + "\n" + weightLine(m.weightA) + "\n\n" +
			m.label(cmpWeightB, "User B weights:") + "\n" + weightLine(m.weightB),
	)

	sections := []string{title, form}
	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("❌ %v", m.err)))
	}
	sections = append(sections, m.renderRanking())
	sections = append(sections, adaptiveHelpStyle.Render("Tab: Navigate • ←/→: Adjust • Enter: Add item • PgUp/PgDn: Select • Ctrl+D: Remove • Esc: Quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *CompareModel) renderRanking() string {
	ranked := m.comparator.Rank(m.weightA, m.weightB)
	if len(ranked) == 0 {
		return infoStyle.Render("Add items to compare them.")
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Ranking (by user A)"))
	for i, r := range ranked {
		cursor := " "
		if i == m.selected {
			cursor = ">"
		}
		name := r.Item.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "\n%s %2d. 【%s】 %-16s %10s  perf %2s  A %s %s  B %s %s",
			cursor, i+1, r.Item.Category, name, formatPrice(r.Item.Price), strconv.Itoa(r.Item.Performance),
			m.barA.ViewAs(r.ScoreA), formatScore(r.ScoreA),
			m.barB.ViewAs(r.ScoreB), formatScore(r.ScoreB))
	}
	return b.String()
}

// Ranked returns the current ranking, used to print a summary after the program exits.
func (m *CompareModel) Ranked() []compare.Ranked {
	return m.comparator.Rank(m.weightA, m.weightB)
}
