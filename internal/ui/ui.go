package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/notify"
	"github.com/sonatafm/podium/internal/player"
	"github.com/sonatafm/podium/internal/resources"
	"github.com/sonatafm/podium/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	BrowseView
	DetailView
)

const browsePageSize = 50

// LiveEvents is the subset of the live feed the TUI consumes.
type LiveEvents interface {
	Subscribe() (<-chan models.LiveEvent, func())
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	catalog *resources.Catalog
	deck    *player.Deck
	center  *notify.Center

	view    ViewState
	section Section
	width   int
	height  int

	menu    list.Model
	browser list.Model
	detail  string

	state player.State
	toast *notify.Toast
	err   error

	help help.Model
	keys keyMap

	playerEvents <-chan struct{}
	toastEvents  <-chan notify.Toast
	liveEvents   <-chan models.LiveEvent
	cancels      []func()
}

// NewModel creates a new TUI model with the provided dependencies. The live
// feed is optional; pass nil when the websocket endpoint is not configured.
func NewModel(ctx context.Context, catalog *resources.Catalog, deck *player.Deck, center *notify.Center, feed LiveEvents) *Model {
	items := make([]list.Item, len(sections))
	for i, s := range sections {
		items[i] = sectionItem{section: s}
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Sonata Console"
	menu.SetShowHelp(false)

	m := &Model{
		ctx:     ctx,
		catalog: catalog,
		deck:    deck,
		center:  center,
		view:    MenuView,
		menu:    menu,
		state:   deck.Snapshot(),
		help:    help.New(),
		keys:    newKeyMap(),
	}

	events, cancel := deck.Subscribe()
	m.playerEvents = events
	m.cancels = append(m.cancels, cancel)

	toasts, cancel := center.Subscribe()
	m.toastEvents = toasts
	m.cancels = append(m.cancels, cancel)

	if feed != nil {
		live, cancel := feed.Subscribe()
		m.liveEvents = live
		m.cancels = append(m.cancels, cancel)
	}

	return m
}

// Close releases the model's event subscriptions.
func (m *Model) Close() {
	for _, cancel := range m.cancels {
		cancel()
	}
	m.cancels = nil
}

// Init arms the event listeners and the progress clock.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForPlayer(), m.waitForToast(), m.waitForLive(), m.tick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-8)
		if m.browser.Width() == 0 {
			m.browser.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleTransportKeys(msg); handled {
			return m, cmd
		}
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		return m.handleAppMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleAppMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSectionLoaded:
		payload := msg.data.(sectionPayload)
		if payload.err != nil {
			m.err = payload.err
			m.view = MenuView
			return m, nil
		}
		m.err = nil
		m.section = payload.section
		m.browser = list.New(payload.items, list.NewDefaultDelegate(), 0, 0)
		m.browser.Title = string(payload.section)
		m.browser.SetShowHelp(false)
		m.browser.SetSize(m.width-4, m.height-8)
		m.view = BrowseView
		return m, nil

	case MsgPlayerChanged:
		m.state = m.deck.Snapshot()
		return m, m.waitForPlayer()

	case MsgToast:
		toast := msg.data.(notify.Toast)
		m.toast = &toast
		return m, m.waitForToast()

	case MsgLiveEvent:
		event := msg.data.(models.LiveEvent)
		var cmd tea.Cmd
		if m.view == BrowseView && m.section == SectionLive {
			cmd = m.loadSection(SectionLive)
		}
		m.toast = &notify.Toast{
			Level:   notify.LevelInfo,
			Message: fmt.Sprintf("stream %s is %s (%d listening)", event.StreamID, event.Status, event.Listeners),
			At:      event.At,
		}
		return m, tea.Batch(m.waitForLive(), cmd)

	case MsgTick:
		if m.state.Playing {
			m.state = m.deck.Snapshot()
		}
		return m, m.tick()
	}

	return m, nil
}

// handleTransportKeys dispatches the playback keys that work in every view.
// Keystrokes typed into an active list filter are never treated as transport.
func (m *Model) handleTransportKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.view == BrowseView && m.browser.FilterState() == list.Filtering {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.play):
		if err := m.deck.TogglePlayPause(); err != nil {
			m.err = err
		}
		return nil, true
	case key.Matches(msg, m.keys.next):
		if err := m.deck.Next(); err != nil {
			m.err = err
		}
		return nil, true
	case key.Matches(msg, m.keys.prev):
		if err := m.deck.Previous(); err != nil {
			m.err = err
		}
		return nil, true
	case key.Matches(msg, m.keys.volUp):
		m.adjustVolume(0.1)
		return nil, true
	case key.Matches(msg, m.keys.volDown):
		m.adjustVolume(-0.1)
		return nil, true
	}
	return nil, false
}

func (m *Model) adjustVolume(delta float64) {
	if err := m.deck.SetVolume(m.state.Volume + delta); err != nil {
		m.err = err
		return
	}
	m.state = m.deck.Snapshot()
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.enter) {
		if item, ok := m.menu.SelectedItem().(sectionItem); ok {
			return m, m.loadSection(item.section)
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = MenuView
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadSection(m.section)
	case key.Matches(msg, m.keys.queue):
		if item := m.browser.SelectedItem(); item != nil {
			if playable, ok := playableFrom(item); ok {
				m.deck.AddToQueue(playable)
				m.center.Push(notify.LevelInfo, fmt.Sprintf("queued %q", playable.PlayableTitle()))
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m.openSelected()
	}

	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		m.view = BrowseView
		m.detail = ""
	}
	return m, nil
}

// openSelected starts playback for songs and episodes and opens the detail
// pane for everything else. Playing an item loads the whole visible listing
// into the queue so next and previous walk the browser order.
func (m *Model) openSelected() (tea.Model, tea.Cmd) {
	selected := m.browser.SelectedItem()
	if selected == nil {
		return m, nil
	}

	if _, ok := playableFrom(selected); ok {
		queue := make([]models.Playable, 0, len(m.browser.Items()))
		for _, item := range m.browser.Items() {
			if playable, ok := playableFrom(item); ok {
				queue = append(queue, playable)
			}
		}
		if err := m.deck.PlayQueue(queue, m.browser.Index()); err != nil {
			m.err = err
		}
		return m, nil
	}

	m.detail = renderDetail(selected)
	m.view = DetailView
	return m, nil
}

func playableFrom(item list.Item) (models.Playable, bool) {
	switch it := item.(type) {
	case songItem:
		return it.track, true
	case episodeItem:
		return it.episode, true
	}
	return nil, false
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MenuView:
		m.menu, cmd = m.menu.Update(msg)
	case BrowseView:
		m.browser, cmd = m.browser.Update(msg)
	}
	return m, cmd
}

// loadSection fetches the first page of a section and converts it to list items.
func (m *Model) loadSection(section Section) tea.Cmd {
	return func() tea.Msg {
		filter := resources.Filter{PageSize: browsePageSize}

		switch section {
		case SectionSongs:
			page, err := m.catalog.ListSongs(m.ctx, filter)
			if err != nil {
				return sectionLoadedMsg(section, nil, err)
			}
			items := make([]list.Item, len(page.Results))
			for i, t := range page.Results {
				items[i] = songItem{track: t}
			}
			return sectionLoadedMsg(section, items, nil)

		case SectionAlbums:
			page, err := m.catalog.ListAlbums(m.ctx, filter)
			if err != nil {
				return sectionLoadedMsg(section, nil, err)
			}
			items := make([]list.Item, len(page.Results))
			for i, a := range page.Results {
				items[i] = albumItem{album: a}
			}
			return sectionLoadedMsg(section, items, nil)

		case SectionPodcasts:
			page, err := m.catalog.ListPodcasts(m.ctx, filter)
			if err != nil {
				return sectionLoadedMsg(section, nil, err)
			}
			items := make([]list.Item, len(page.Results))
			for i, p := range page.Results {
				items[i] = podcastItem{podcast: p}
			}
			return sectionLoadedMsg(section, items, nil)

		case SectionEpisodes:
			page, err := m.catalog.ListEpisodes(m.ctx, filter)
			if err != nil {
				return sectionLoadedMsg(section, nil, err)
			}
			items := make([]list.Item, len(page.Results))
			for i, e := range page.Results {
				items[i] = episodeItem{episode: e}
			}
			return sectionLoadedMsg(section, items, nil)

		case SectionLive:
			page, err := m.catalog.ListLiveStreams(m.ctx, filter)
			if err != nil {
				return sectionLoadedMsg(section, nil, err)
			}
			items := make([]list.Item, len(page.Results))
			for i, s := range page.Results {
				items[i] = streamItem{stream: s}
			}
			return sectionLoadedMsg(section, items, nil)

		case SectionUsers:
			page, err := m.catalog.ListUsers(m.ctx, filter)
			if err != nil {
				return sectionLoadedMsg(section, nil, err)
			}
			items := make([]list.Item, len(page.Results))
			for i, u := range page.Results {
				items[i] = userItem{user: u}
			}
			return sectionLoadedMsg(section, items, nil)

		case SectionPlans:
			page, err := m.catalog.ListPlans(m.ctx, filter)
			if err != nil {
				return sectionLoadedMsg(section, nil, err)
			}
			items := make([]list.Item, len(page.Results))
			for i, p := range page.Results {
				items[i] = planItem{plan: p}
			}
			return sectionLoadedMsg(section, items, nil)
		}

		return sectionLoadedMsg(section, nil, fmt.Errorf("unknown section %q", section))
	}
}

func (m *Model) waitForPlayer() tea.Cmd {
	events := m.playerEvents
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return playerChangedMsg()
	}
}

func (m *Model) waitForToast() tea.Cmd {
	toasts := m.toastEvents
	return func() tea.Msg {
		toast, ok := <-toasts
		if !ok {
			return nil
		}
		return toastMsg(toast)
	}
}

func (m *Model) waitForLive() tea.Cmd {
	if m.liveEvents == nil {
		return nil
	}
	events := m.liveEvents
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return liveEventMsg(event)
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg()
	})
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case MenuView:
		body = m.menu.View()
	case BrowseView:
		body = m.browser.View()
	case DetailView:
		body = m.renderDetailView()
	}

	return fmt.Sprintf("%s\n%s\n%s", body, m.renderStatus(), m.renderPlayerBar())
}

func (m *Model) renderDetailView() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.detail, helpView)
}

func (m *Model) renderStatus() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("error: %v", m.err))
	}
	if m.toast != nil {
		line := fmt.Sprintf("[%s] %s", m.toast.Level, m.toast.Message)
		switch m.toast.Level {
		case notify.LevelError:
			return styles.err.Render(line)
		case notify.LevelSuccess:
			return styles.ok.Render(line)
		default:
			return styles.warn.Render(line)
		}
	}
	return ""
}

// renderPlayerBar summarizes the active channel in a single line.
func (m *Model) renderPlayerBar() string {
	if m.state.Current == nil {
		return styles.bar.Render("nothing playing • " + m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	icon := "⏸"
	if m.state.Playing {
		icon = "▶"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s [%s]", icon, m.state.Current.PlayableTitle(), m.deck.Active())
	fmt.Fprintf(&b, "  %s / %s", shared.FormatDuration(int(m.state.Position)), shared.FormatDuration(int(m.state.Duration)))
	fmt.Fprintf(&b, "  vol %d%%", int(m.state.Volume*100))
	if len(m.state.Queue) > 1 {
		fmt.Fprintf(&b, "  queue %d/%d", m.state.Index+1, len(m.state.Queue))
	}
	return styles.bar.Render(b.String())
}

func renderDetail(item list.Item) string {
	switch it := item.(type) {
	case albumItem:
		a := it.album
		lines := []string{
			styles.title.Render(a.Title),
			fmt.Sprintf("Artist:    %s", a.ArtistName),
			fmt.Sprintf("Genre:     %s", a.Genre),
			fmt.Sprintf("Tracks:    %d", a.TotalTracks),
			fmt.Sprintf("Runtime:   %s", shared.FormatDuration(a.Duration)),
			fmt.Sprintf("Published: %v", a.IsPublished),
		}
		if a.Description != "" {
			lines = append(lines, "", a.Description)
		}
		return strings.Join(lines, "\n")

	case podcastItem:
		p := it.podcast
		lines := []string{
			styles.title.Render(p.Title),
			fmt.Sprintf("Host:      %s", p.ArtistName),
			fmt.Sprintf("Category:  %s", p.Category),
			fmt.Sprintf("Episodes:  %d", p.TotalEpisodes),
			fmt.Sprintf("Published: %v", p.IsPublished),
		}
		if p.Description != "" {
			lines = append(lines, "", p.Description)
		}
		return strings.Join(lines, "\n")

	case streamItem:
		s := it.stream
		return strings.Join([]string{
			styles.title.Render(s.Title),
			fmt.Sprintf("Artist:    %s", s.ArtistName),
			fmt.Sprintf("Status:    %s", s.Status),
			fmt.Sprintf("Listeners: %d", s.ListenerCount),
			fmt.Sprintf("Scheduled: %s", s.ScheduledAt.Format(time.RFC1123)),
		}, "\n")

	case userItem:
		u := it.user
		return strings.Join([]string{
			styles.title.Render(u.DisplayName()),
			fmt.Sprintf("Email:  %s", u.Email),
			fmt.Sprintf("Role:   %s", u.Role),
			fmt.Sprintf("Active: %v", u.IsActive),
			fmt.Sprintf("Joined: %s", u.CreatedAt.Format(time.RFC1123)),
		}, "\n")

	case planItem:
		p := it.plan
		return strings.Join([]string{
			styles.title.Render(p.Name),
			fmt.Sprintf("Price:    %.2f %s", p.Price, p.Currency),
			fmt.Sprintf("Term:     %d days", p.DurationDays),
			fmt.Sprintf("Ad-free:  %v", p.AdsFree),
			fmt.Sprintf("Active:   %v", p.IsActive),
		}, "\n")
	}

	return ""
}
