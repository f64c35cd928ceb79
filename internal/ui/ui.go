package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/memegacha/internal/services"
	"github.com/desertthunder/memegacha/internal/shared"
	"github.com/desertthunder/memegacha/internal/tasks"
	"github.com/desertthunder/memegacha/internal/web"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	RollView
	SeenView
	ExhaustedView
)

// ModelOpts contains the dependencies of a [Model].
type ModelOpts struct {
	Roller *tasks.Roller
	Source services.CatalogSource
	Logger *log.Logger
	Opener func(url string) error // defaults to [shared.OpenBrowser]
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	roller   *tasks.Roller
	source   services.CatalogSource
	logger   *log.Logger
	opener   func(string) error
	width    int
	height   int
	seenList list.Model

	booting      bool
	progressChan chan tasks.ProgressUpdate
	bootDone     chan error
	progress     tasks.ProgressUpdate
	bootErr      error

	status string
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model. The roller is booted by [Model.Init].
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Opener == nil {
		opts.Opener = shared.OpenBrowser
	}

	return &Model{
		ctx:    ctx,
		view:   LoadingView,
		roller: opts.Roller,
		source: opts.Source,
		logger: opts.Logger,
		opener: opts.Opener,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// ViewState returns the active view.
func (m *Model) ViewState() ViewState {
	return m.view
}

// Init starts fetching the catalog and hydrating the seen-set.
func (m *Model) Init() tea.Cmd {
	return m.startBoot()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.view == SeenView {
			m.seenList.SetSize(msg.Width-4, msg.Height-6)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoadingView:
			return m.handleLoadingKeys(msg)
		case RollView:
			return m.handleRollKeys(msg)
		case SeenView:
			return m.handleSeenKeys(msg)
		case ExhaustedView:
			return m.handleExhaustedKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	if m.view == SeenView {
		var cmd tea.Cmd
		m.seenList, cmd = m.seenList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgBootProgress:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgBootComplete:
		m.booting = false
		m.progressChan = nil
		m.bootDone = nil

		if err := msg.err(); err != nil {
			m.bootErr = err
			m.logger.Error("boot failed", "source", m.source.Name(), "error", err)
			return m, nil
		}

		m.bootErr = nil
		m.view = RollView
		if m.roller.Current() == nil && len(m.roller.Entries()) > 0 {
			m.view = ExhaustedView
		}
		return m, nil

	case MsgBrowserOpened:
		if err := msg.err(); err != nil {
			m.logger.Warn("failed to open browser", "error", err)
			m.status = styles.warn.Render("Could not open a browser")
			return m, nil
		}
		m.status = "Opened in browser"
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case RollView:
		return m.renderRoll()
	case SeenView:
		return m.renderSeen()
	case ExhaustedView:
		return m.renderExhausted()
	default:
		return ""
	}
}

func (m *Model) handleLoadingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.retry) && !m.booting && m.bootErr != nil:
		return m, m.startBoot()
	}
	return m, nil
}

func (m *Model) handleRollKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.roll):
		m.roll()
	case key.Matches(msg, m.keys.reset):
		m.reset()
	case key.Matches(msg, m.keys.seen):
		m.openSeenList()
	case key.Matches(msg, m.keys.open):
		return m, m.openCurrent()
	}
	return m, nil
}

func (m *Model) handleSeenKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.seenList.FilterState() != list.Filtering {
		switch {
		case msg.String() == "ctrl+c" || msg.String() == "q":
			return m, tea.Quit
		case key.Matches(msg, m.keys.back):
			m.view = RollView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.seenList, cmd = m.seenList.Update(msg)
	return m, cmd
}

// handleExhaustedKeys dismisses the modal on any key; nothing else happens.
func (m *Model) handleExhaustedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.view = RollView
	return m, nil
}

func (m *Model) roll() {
	_, err := m.roller.Roll()
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrExhausted):
		m.view = ExhaustedView
	default:
		m.logger.Error("roll failed", "error", err)
		m.status = styles.err.Render(err.Error())
	}
}

func (m *Model) reset() {
	if _, err := m.roller.Reset(); err != nil {
		m.logger.Error("reset failed", "error", err)
		m.status = styles.err.Render(err.Error())
		return
	}
	m.status = styles.ok.Render("Progress reset")
}

func (m *Model) openSeenList() {
	titles := m.roller.Seen().Titles()
	m.seenList = list.New(seenItems(titles, m.roller.Entries()), list.NewDefaultDelegate(), 0, 0)
	m.seenList.Title = fmt.Sprintf("Seen (%d)", len(titles))
	m.seenList.SetShowHelp(false)
	m.seenList.SetSize(max(m.width-4, 20), max(m.height-6, 10))
	m.view = SeenView
}

func (m *Model) openCurrent() tea.Cmd {
	current := m.roller.Current()
	if current == nil {
		return nil
	}
	url := services.ToEmbedURL(current.Item.Link)
	opener := m.opener
	return func() tea.Msg {
		return browserOpenedMsg(url, opener(url))
	}
}

func (m *Model) startBoot() tea.Cmd {
	m.booting = true
	m.bootErr = nil
	m.progress = tasks.ProgressUpdate{}
	m.progressChan = make(chan tasks.ProgressUpdate, 8)
	m.bootDone = make(chan error, 1)

	prog, done := m.progressChan, m.bootDone
	go func() {
		done <- m.roller.Boot(m.ctx, m.source, prog)
		close(prog)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	prog, done := m.progressChan, m.bootDone
	return func() tea.Msg {
		if prog == nil {
			return bootCompleteMsg(nil)
		}

		update, ok := <-prog
		if !ok {
			return bootCompleteMsg(<-done)
		}
		return bootProgressMsg(update)
	}
}

func (m *Model) header() string {
	p := m.roller.Progress()
	title := styles.title.Render(web.Title)
	readout := styles.help.Render(fmt.Sprintf("Collected: %d/%d --- %d%% complete", p.Collected, p.Total, p.Percent))
	return fmt.Sprintf("%s\n%s", title, readout)
}

func (m *Model) renderLoading() string {
	title := styles.title.Render(web.Title)

	if m.bootErr != nil {
		msg := styles.err.Render(fmt.Sprintf("Could not load the catalog: %v", m.bootErr))
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.retry, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, styles.card.Render("Loading your roll..."), msg, helpView)
	}

	phase := m.progress.Message
	if phase == "" {
		phase = "Loading your roll..."
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, styles.card.Render(phase), helpView)
}

func (m *Model) renderCard() string {
	current := m.roller.Current()
	if current == nil {
		if len(m.roller.Entries()) == 0 {
			return styles.card.Render("The catalog is empty.")
		}
		return styles.card.Render("Loading your roll...")
	}

	name := lipgloss.NewStyle().Bold(true).Render(current.Title)
	meta := fmt.Sprintf("%s %d  %s %s  %s %s",
		styles.help.Render("Year"), current.Item.Year,
		styles.help.Render("Age"), current.Item.Age,
		styles.help.Render("Rarity"), RarityStyle(current.Item.Rarity).Render(current.Item.Rarity.String()),
	)
	link := styles.help.Render("▶ " + services.ToEmbedURL(current.Item.Link))

	return styles.card.Render(fmt.Sprintf("%s\n\n%s\n%s", name, meta, link))
}

func (m *Model) renderSeenPreview() string {
	titles, truncated := m.roller.SeenPreview()
	if len(titles) == 0 {
		return ""
	}
	preview := "Seen so far: " + strings.Join(titles, ", ")
	if truncated {
		preview += "..."
	}
	return styles.help.Render(preview)
}

func (m *Model) renderRoll() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.renderCard())
	b.WriteString("\n\n")

	if preview := m.renderSeenPreview(); preview != "" {
		b.WriteString(preview)
		b.WriteString("\n\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	helpKeys := []key.Binding{m.keys.roll, m.keys.reset, m.keys.seen, m.keys.open, m.keys.quit}
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderSeen() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.seenList.View(), helpView)
}

func (m *Model) renderExhausted() string {
	modal := styles.modal.Render(fmt.Sprintf("%s\n\n%s", web.ExhaustedMessage, styles.help.Render("press any key")))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return fmt.Sprintf("%s\n\n%s", m.header(), modal)
}
