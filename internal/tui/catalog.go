package tui

import (
	"fmt"
	"strconv"

	"shopscore/internal/catalog"
	"shopscore/internal/models"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type CatalogModel struct {
	svc        *catalog.Service
	table      table.Model
	records    []models.ProductRecord
	sortIdx    int
	descending bool
	confirming bool
	status     string
	warning    string
	err        error
	width      int
	height     int
}

func NewCatalogModel(svc *catalog.Service) *CatalogModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Category", Width: 10},
			{Title: "Product", Width: 24},
			{Title: "Price", Width: 12},
			{Title: "Shelf life", Width: 10},
			{Title: "Ease", Width: 5},
			{Title: "Comment", Width: 30},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return &CatalogModel{
		svc:   svc,
		table: t,
	}
}

func (m *CatalogModel) Init() tea.Cmd {
	return nil
}

func (m *CatalogModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 0 {
		m.table.SetHeight(max(5, height-14))
	}
}

func (m *CatalogModel) sortKey() catalog.SortKey {
	return catalog.SortKeys[m.sortIdx]
}

// Reload re-reads the store using the current sort settings.
func (m *CatalogModel) Reload() {
	listing, err := m.svc.List(m.sortKey(), m.descending)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.warning = listing.Warning
	m.records = listing.Records
	m.confirming = false

	rows := make([]table.Row, 0, len(m.records))
	for _, p := range m.records {
		rows = append(rows, table.Row{
			p.Category,
			p.ProductName,
			formatPrice(p.Price),
			strconv.Itoa(p.ShelfLife) + "d",
			strconv.Itoa(p.Ease),
			p.Comment,
		})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m *CatalogModel) selected() (models.ProductRecord, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.records) {
		return models.ProductRecord{}, false
	}
	return m.records[c], true
}

func (m *CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming {
		switch keyMsg.String() {
		case "y", "Y":
			m.deleteSelected()
		case "n", "N":
			m.confirming = false
			m.status = ""
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "s":
		m.sortIdx = cycle(m.sortIdx, 1, len(catalog.SortKeys))
		m.status = ""
		m.Reload()
		return m, nil
	case "r":
		m.descending = !m.descending
		m.status = ""
		m.Reload()
		return m, nil
	case "d", "delete":
		if p, ok := m.selected(); ok {
			m.confirming = true
			m.status = fmt.Sprintf("Delete every 【%s】 in %s? (y/n)", p.ProductName, p.Category)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(keyMsg)
	return m, cmd
}

func (m *CatalogModel) deleteSelected() {
	p, ok := m.selected()
	m.confirming = false
	if !ok {
		return
	}
	removed, err := m.svc.Delete(p.ProductName, p.Category)
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Deleted %d record(s) of 【%s】", removed, p.ProductName)
	m.Reload()
}

func (m *CatalogModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render(fmt.Sprintf("📋 Catalog (%d products)", len(m.records)))

	order := "ascending"
	if m.descending {
		order = "descending"
	}
	key := string(m.sortKey())
	if key == "" {
		key = "registration order"
	}
	sortInfo := infoStyle.Render(fmt.Sprintf("Sorted by %s, %s", key, order))

	sections := []string{title, sortInfo}
	if m.warning != "" {
		sections = append(sections, warningStyle.Render("⚠ "+m.warning))
	}
	if len(m.records) == 0 {
		sections = append(sections, warningStyle.Render("No products registered yet."))
	} else {
		sections = append(sections, m.table.View())
	}

	switch {
	case m.err != nil:
		sections = append(sections, errorStyle.Render(fmt.Sprintf("❌ %v", m.err)))
	case m.confirming:
		sections = append(sections, warningStyle.Render(m.status))
	case m.status != "":
		sections = append(sections, successStyle.Render(m.status))
	}

	sections = append(sections, adaptiveHelpStyle.Render("↑/↓: Select • s: Sort key • r: Reverse order • d: Delete • Esc: Back to menu"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
