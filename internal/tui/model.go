package tui

import (
	"fmt"

	"shopscore/internal/board"
	"shopscore/internal/catalog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type Screen int

const (
	MenuScreen Screen = iota
	RegisterScreen
	CatalogScreen
	EvaluateScreen
	BoardScreen
)

// Services are the handles every screen works through. Nothing else is shared between screens.
type Services struct {
	Catalog *catalog.Service
	Board   *board.Service
	Logger  *zap.Logger
}

// Options carries change notifications for the store files; either channel may be nil.
type Options struct {
	ProductsChanged <-chan struct{}
	BoardChanged    <-chan struct{}
}

type Model struct {
	currentScreen Screen
	menuModel     *MenuModel
	registerModel *RegisterModel
	catalogModel  *CatalogModel
	evaluateModel *EvaluateModel
	boardModel    *BoardModel
	opts          Options
	logger        *zap.Logger
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(svc Services, opts Options) Model {
	logger := svc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{
		currentScreen: MenuScreen,
		menuModel:     NewMenuModel(),
		registerModel: NewRegisterModel(svc.Catalog),
		catalogModel:  NewCatalogModel(svc.Catalog),
		evaluateModel: NewEvaluateModel(svc.Catalog),
		boardModel:    NewBoardModel(svc.Board),
		opts:          opts,
		logger:        logger,
	}
}

type storeKind int

const (
	productsStore storeKind = iota
	boardStore
)

// StoreChangedMsg reports that a store file was rewritten.
type StoreChangedMsg struct {
	kind storeKind
}

func waitForChange(ch <-chan struct{}, kind storeKind) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StoreChangedMsg{kind: kind}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.opts.ProductsChanged, productsStore),
		waitForChange(m.opts.BoardChanged, boardStore),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuModel.SetSize(msg.Width, msg.Height)
		m.registerModel.SetSize(msg.Width, msg.Height)
		m.catalogModel.SetSize(msg.Width, msg.Height)
		m.evaluateModel.SetSize(msg.Width, msg.Height)
		m.boardModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			if m.currentScreen == MenuScreen {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			if m.currentScreen != MenuScreen {
				m.currentScreen = MenuScreen
				m.err = nil
				return m, nil
			}
		}

	case ScreenChangeMsg:
		m.currentScreen = msg.Screen
		m.err = nil
		m.logger.Debug("Screen changed", zap.Int("screen", int(msg.Screen)))
		return m, m.enterScreen(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case StoreChangedMsg:
		switch msg.kind {
		case productsStore:
			m.logger.Debug("Product store changed on disk")
			m.catalogModel.Reload()
			m.registerModel.Reload()
			return m, waitForChange(m.opts.ProductsChanged, productsStore)
		case boardStore:
			m.logger.Debug("Board store changed on disk")
			m.boardModel.Reload()
			return m, waitForChange(m.opts.BoardChanged, boardStore)
		}
		return m, nil
	}

	switch m.currentScreen {
	case MenuScreen:
		newMenuModel, cmd := m.menuModel.Update(msg)
		m.menuModel = newMenuModel.(*MenuModel)
		return m, cmd
	case RegisterScreen:
		newRegisterModel, cmd := m.registerModel.Update(msg)
		m.registerModel = newRegisterModel.(*RegisterModel)
		return m, cmd
	case CatalogScreen:
		newCatalogModel, cmd := m.catalogModel.Update(msg)
		m.catalogModel = newCatalogModel.(*CatalogModel)
		return m, cmd
	case EvaluateScreen:
		newEvaluateModel, cmd := m.evaluateModel.Update(msg)
		m.evaluateModel = newEvaluateModel.(*EvaluateModel)
		return m, cmd
	case BoardScreen:
		newBoardModel, cmd := m.boardModel.Update(msg)
		m.boardModel = newBoardModel.(*BoardModel)
		return m, cmd
	}

	return m, cmd
}

func (m Model) enterScreen(screen Screen) tea.Cmd {
	switch screen {
	case RegisterScreen:
		m.registerModel.Reload()
		return m.registerModel.Init()
	case CatalogScreen:
		m.catalogModel.Reload()
		return m.catalogModel.Init()
	case EvaluateScreen:
		return m.evaluateModel.Init()
	case BoardScreen:
		m.boardModel.Reload()
		return m.boardModel.Init()
	}
	return nil
}

func (m Model) View() string {
	if m.quitting {
		return "Happy shopping! 🛒\n"
	}

	var content string
	switch m.currentScreen {
	case MenuScreen:
		content = m.menuModel.View()
	case RegisterScreen:
		content = m.registerModel.View()
	case CatalogScreen:
		content = m.catalogModel.View()
	case EvaluateScreen:
		content = m.evaluateModel.View()
	case BoardScreen:
		content = m.boardModel.View()
	}

	if m.err != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, errorStyle.Margin(1, 0).Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return content
}

// CurrentScreen reports which screen has focus.
func (m Model) CurrentScreen() Screen {
	return m.currentScreen
}

type ScreenChangeMsg struct {
	Screen Screen
}

type ErrorMsg struct {
	Err error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
