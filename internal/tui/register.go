package tui

import (
	"fmt"
	"strings"

	"shopscore/internal/catalog"
	"shopscore/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	regCategory = iota
	regName
	regPrice
	regShelfLife
	regEase
	regComment
	regFieldCount
)

const defaultEase = 5

// recentLimit caps how many registered products are listed under the form.
const recentLimit = 8

type RegisterModel struct {
	svc          *catalog.Service
	categoryIdx  int
	nameInput    textinput.Model
	priceInput   textinput.Model
	shelfInput   textinput.Model
	commentInput textinput.Model
	ease         int
	focused      int
	saved        *models.ProductRecord
	err          error
	recent       []models.ProductRecord
	total        int
	warning      string
	width        int
	height       int
}

func NewRegisterModel(svc *catalog.Service) *RegisterModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "e.g. 大根"
	nameInput.CharLimit = 80

	priceInput := textinput.New()
	priceInput.Placeholder = "0.00"
	priceInput.CharLimit = 12

	shelfInput := textinput.New()
	shelfInput.Placeholder = "0"
	shelfInput.CharLimit = 6

	commentInput := textinput.New()
	commentInput.Placeholder = "optional"
	commentInput.CharLimit = 200

	m := &RegisterModel{
		svc:          svc,
		nameInput:    nameInput,
		priceInput:   priceInput,
		shelfInput:   shelfInput,
		commentInput: commentInput,
		ease:         defaultEase,
		focused:      regCategory,
	}
	m.updateInputFocus()
	return m
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Reload refreshes the list of registered products shown below the form.
func (m *RegisterModel) Reload() {
	listing, err := m.svc.List(catalog.SortNone, false)
	if err != nil {
		m.err = err
		return
	}
	m.total = len(listing.Records)
	m.warning = listing.Warning
	start := max(0, len(listing.Records)-recentLimit)
	m.recent = listing.Records[start:]
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.focused = cycle(m.focused, 1, regFieldCount)
		m.updateInputFocus()
		return m, nil
	case "shift+tab", "up":
		m.focused = cycle(m.focused, -1, regFieldCount)
		m.updateInputFocus()
		return m, nil
	case "enter":
		m.submit()
		return m, nil
	case "left", "right":
		delta := 1
		if keyMsg.String() == "left" {
			delta = -1
		}
		switch m.focused {
		case regCategory:
			m.categoryIdx = cycle(m.categoryIdx, delta, len(models.Categories))
			return m, nil
		case regEase:
			m.ease = clampRating(m.ease + delta)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case regName:
		m.nameInput, cmd = m.nameInput.Update(keyMsg)
	case regPrice:
		m.priceInput, cmd = m.priceInput.Update(keyMsg)
	case regShelfLife:
		m.shelfInput, cmd = m.shelfInput.Update(keyMsg)
	case regComment:
		m.commentInput, cmd = m.commentInput.Update(keyMsg)
	}
	return m, cmd
}

func (m *RegisterModel) updateInputFocus() {
	inputs := map[int]*textinput.Model{
		regName:      &m.nameInput,
		regPrice:     &m.priceInput,
		regShelfLife: &m.shelfInput,
		regComment:   &m.commentInput,
	}
	for field, input := range inputs {
		if field == m.focused {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *RegisterModel) submit() {
	m.saved = nil
	m.err = nil

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

	reg, err := m.svc.Register(catalog.Input{
		Category:  models.Categories[m.categoryIdx],
		Name:      m.nameInput.Value(),
		Price:     price,
		ShelfLife: shelfLife,
		Ease:      m.ease,
		Comment:   m.commentInput.Value(),
	})
	if err != nil {
		m.err = err
		return
	}

	m.saved = &reg.Record
	m.reset()
	m.Reload()
	// Reload reads the freshly saved file, so the overwrite notice has to be set after it.
	if reg.Warning != "" {
		m.warning = reg.Warning
	}
}

func (m *RegisterModel) reset() {
	m.categoryIdx = 0
	m.ease = defaultEase
	m.nameInput.SetValue("")
	m.priceInput.SetValue("")
	m.shelfInput.SetValue("")
	m.commentInput.SetValue("")
	m.focused = regCategory
	m.updateInputFocus()
}

func (m *RegisterModel) label(field int, text string) string {
	if field == m.focused {
		return focusedLabelStyle.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m *RegisterModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📝 Register a product")

	var categories []string
	for i, c := range models.Categories {
		if i == m.categoryIdx {
			categories = append(categories, selectedMenuItemStyle.Margin(0).Padding(0, 1).Render(c))
		} else {
			categories = append(categories, menuItemStyle.Margin(0).Padding(0, 1).Render(c))
		}
	}

	form := adaptiveFormStyle.Render(
		m.label(regCategory, "Category:") + "\n" + strings.Join(categories, " ") + "\n\n" +
			m.label(regName, "Product name:") + "\n" + m.nameInput.View() + "\n\n" +
			m.label(regPrice, "Price (円):") + "\n" + m.priceInput.View() + "\n\n" +
			m.label(regShelfLife, "Shelf life (days):") + "\n" + m.shelfInput.View() + "\n\n" +
			m.label(regEase, "Ease of use (1-10):") + "\n" + valueStyle.Render(fmt.Sprintf("%s %d", ratingBar(m.ease), m.ease)) + "\n\n" +
			m.label(regComment, "Comment:") + "\n" + m.commentInput.View(),
	)

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("❌ %v", m.err))
	case m.saved != nil:
		status = successStyle.Render(fmt.Sprintf("✅ Saved 【%s】", m.saved.ProductName))
	}

	sections := []string{title, form}
	if status != "" {
		sections = append(sections, status)
	}
	if m.warning != "" {
		sections = append(sections, warningStyle.Render("⚠ "+m.warning))
	}
	sections = append(sections, m.renderRecent())
	sections = append(sections, adaptiveHelpStyle.Render("Tab/Shift+Tab: Navigate • ←/→: Change category or rating • Enter: Save • Esc: Back to menu"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *RegisterModel) renderRecent() string {
	if m.total == 0 {
		return infoStyle.Render("No products registered yet.")
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Registered products (%d)", m.total)))
	for _, p := range m.recent {
		fmt.Fprintf(&b, "\n【%s】 %s - price: %s, shelf life: %d days, ease: %d",
			p.Category, p.ProductName, formatPrice(p.Price), p.ShelfLife, p.Ease)
	}
	if m.total > len(m.recent) {
		fmt.Fprintf(&b, "\n… and %d more in the catalog", m.total-len(m.recent))
	}
	return b.String()
}
