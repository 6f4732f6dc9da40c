package tui

import (
	"errors"
	"fmt"
	"strings"

	"shopscore/internal/catalog"
	"shopscore/internal/models"
	"shopscore/internal/scoring"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	evalName = iota
	evalPrice
	evalShelfLife
	evalFieldCount
)

type EvaluateModel struct {
	svc        *catalog.Service
	nameInput  textinput.Model
	priceInput textinput.Model
	shelfInput textinput.Model
	focused    int
	record     *models.ProductRecord
	result     *scoring.Result
	err        error
	width      int
	height     int
}

func NewEvaluateModel(svc *catalog.Service) *EvaluateModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "registered product name"
	nameInput.CharLimit = 80
	nameInput.Focus()

	priceInput := textinput.New()
	priceInput.Placeholder = "0.00"
	priceInput.CharLimit = 12

	shelfInput := textinput.New()
	shelfInput.Placeholder = "0"
	shelfInput.CharLimit = 6

	return &EvaluateModel{
		svc:        svc,
		nameInput:  nameInput,
		priceInput: priceInput,
		shelfInput: shelfInput,
		focused:    evalName,
	}
}

func (m *EvaluateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *EvaluateModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *EvaluateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.focused = cycle(m.focused, 1, evalFieldCount)
		m.updateInputFocus()
		return m, nil
	case "shift+tab", "up":
		m.focused = cycle(m.focused, -1, evalFieldCount)
		m.updateInputFocus()
		return m, nil
	case "enter":
		m.evaluate()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focused {
	case evalName:
		m.nameInput, cmd = m.nameInput.Update(keyMsg)
	case evalPrice:
		m.priceInput, cmd = m.priceInput.Update(keyMsg)
	case evalShelfLife:
		m.shelfInput, cmd = m.shelfInput.Update(keyMsg)
	}
	return m, cmd
}

func (m *EvaluateModel) updateInputFocus() {
	inputs := []*textinput.Model{&m.nameInput, &m.priceInput, &m.shelfInput}
	for i, input := range inputs {
		if i == m.focused {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *EvaluateModel) evaluate() {
	m.record = nil
	m.result = nil
	m.err = nil

	record, err := m.svc.Find(m.nameInput.Value())
	if err != nil {
		m.err = err
		return
	}
	m.record = &record

	price, err := parsePrice("price", m.priceInput.Value())
	if err != nil {
		m.err = err
		return
	}
	shelfLife, err := parseDays("shelf_life", m.shelfInput.Value())
	if err != nil {
		m.err = err
		return
	}

	result, err := scoring.Evaluate(record, price, shelfLife)
	if err != nil {
		m.err = err
		return
	}
	m.result = &result
}

func (m *EvaluateModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("🛒 Evaluate a purchase")

	form := adaptiveFormStyle.Render(
		labelStyle.Render("Product name:") + "\n" + m.nameInput.View() + "\n\n" +
			labelStyle.Render("Price today (円):") + "\n" + m.priceInput.View() + "\n\n" +
			labelStyle.Render("Shelf life today (days):") + "\n" + m.shelfInput.View(),
	)

	sections := []string{title, form}
	if m.record != nil {
		sections = append(sections, renderRecord(*m.record))
	}

	var notFound *models.NotFoundError
	switch {
	case errors.As(m.err, &notFound):
		sections = append(sections, errorStyle.Render("❌ That product is not registered."))
	case errors.Is(m.err, scoring.ErrDivisionGuard):
		sections = append(sections, errorStyle.Render("❌ A value needed for the score is 0. Price and shelf life must be non-zero."))
	case m.err != nil:
		sections = append(sections, errorStyle.Render(fmt.Sprintf("❌ %v", m.err)))
	case m.result != nil:
		sections = append(sections, renderResult(*m.result))
	}

	sections = append(sections, adaptiveHelpStyle.Render("Tab/Shift+Tab: Navigate • Enter: Evaluate • Esc: Back to menu"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderRecord(p models.ProductRecord) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Registered product:"))
	fmt.Fprintf(&b, "\n  Category:   %s", p.Category)
	fmt.Fprintf(&b, "\n  Name:       %s", p.ProductName)
	fmt.Fprintf(&b, "\n  Price:      %s", formatPrice(p.Price))
	fmt.Fprintf(&b, "\n  Shelf life: %d days", p.ShelfLife)
	fmt.Fprintf(&b, "\n  Ease:       %d / 10", p.Ease)
	if p.Comment != "" {
		fmt.Fprintf(&b, "\n  Comment:    %s", p.Comment)
	}
	return b.String()
}

func renderResult(r scoring.Result) string {
	score := titleStyle.Margin(1, 0, 0, 0).Render("Score: " + formatScore(r.Score))

	var decision string
	if r.Decision == scoring.Buy {
		decision = successStyle.Render("【Recommended】Buy it!")
	} else {
		decision = warningStyle.Render("【Reconsider】It may not be worth it")
	}

	return lipgloss.JoinVertical(lipgloss.Left, score, decision, infoStyle.Render("※ "+scoring.Formula))
}
