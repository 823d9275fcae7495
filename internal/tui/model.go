// Package tui is the terminal microsite browser: profile header, artwork
// grid, "more works" strip and news, with the gallery lightbox on top.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/gallery"
)

const (
	cellWidth     = 26
	fetchTimeout  = 10 * time.Second
	newsMinHeight = 4
	// newsPostLines is title, teaser and the blank line between posts.
	newsPostLines = 3
)

// Fetcher loads a microsite. *client.Client implements it.
type Fetcher interface {
	Microsite(ctx context.Context, username string) (*domain.Microsite, error)
}

type section int

const (
	sectionGallery section = iota
	sectionMore
	sectionNews
	sectionCount
)

type (
	siteMsg struct {
		site *domain.Microsite
		err  error
	}
	tickMsg time.Time
)

// Model is a bubbletea model for one artist's microsite.
type Model struct {
	fetcher  Fetcher
	username string
	refresh  time.Duration

	site    *domain.Microsite
	err     error
	loading bool
	fetched time.Time

	section section
	cursor  [sectionCount]int

	// lightbox is the collection the viewer was opened with, re-derived
	// from every refreshed site.
	viewer      *gallery.Viewer
	keys        *gallery.KeySource
	lightbox    []gallery.MediaItem
	lightboxSrc section

	width    int
	height   int
	news     viewport.Model
	spinner  spinner.Model
	help     help.Model
	pageKeys pageKeys
	boxKeys  lightboxKeys
	styles   styles
}

type Option func(*Model)

// WithRefresh re-fetches the microsite every d. Zero disables the tick.
func WithRefresh(d time.Duration) Option {
	return func(m *Model) { m.refresh = d }
}

func New(fetcher Fetcher, username string, opts ...Option) Model {
	keys := gallery.NewKeySource()
	m := Model{
		fetcher:  fetcher,
		username: domain.NormalizeUsername(username),
		loading:  true,
		keys:     keys,
		viewer:   gallery.NewViewer(gallery.WithKeySource(keys)),
		news:     viewport.New(80, newsMinHeight),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:     help.New(),
		pageKeys: defaultPageKeys(),
		boxKeys:  defaultLightboxKeys(),
		styles:   defaultStyles(),
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick(), m.spinner.Tick)
}

func (m Model) fetch() tea.Cmd {
	fetcher, username := m.fetcher, m.username
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		site, err := fetcher.Microsite(ctx, username)
		return siteMsg{site: site, err: err}
	}
}

func (m Model) tick() tea.Cmd {
	if m.refresh <= 0 {
		return nil
	}
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.news.Width = msg.Width
		m.news.Height = max(newsMinHeight, msg.Height/3)
		m.syncNews()
		return m, nil

	case siteMsg:
		return m.applySite(msg), nil

	case tickMsg:
		m.loading = true
		return m, tea.Batch(m.fetch(), m.tick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.viewer.IsOpen() {
			return m.updateLightbox(msg)
		}
		return m.updatePage(msg)

	case tea.MouseMsg:
		// A click on the left half of the open lightbox goes back, on the
		// right half forward.
		if !m.viewer.IsOpen() || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.X < m.width/2 {
			m.viewer.Previous(m.lightbox)
		} else {
			m.viewer.Next(m.lightbox)
		}
		m.followViewer()
		return m, nil
	}
	return m, nil
}

// applySite swaps in a fetched site. An open lightbox is reconciled with
// the same listing re-derived from the new data, so a shrunken gallery
// closes it instead of leaving it on a missing item.
func (m Model) applySite(msg siteMsg) Model {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.err = nil
	m.site = msg.site
	m.fetched = time.Now()

	if m.viewer.IsOpen() {
		m.lightbox = m.listing(m.lightboxSrc)
		m.viewer.Reconcile(m.lightbox)
		if !m.viewer.IsOpen() {
			m.lightbox = nil
		}
	}

	for s := sectionGallery; s < sectionCount; s++ {
		m.cursor[s] = clamp(m.cursor[s], m.sectionLen(s))
	}
	m.syncNews()
	return m
}

func (m Model) updateLightbox(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" || msg.String() == "q" {
		m.viewer.Close()
		return m, tea.Quit
	}
	m.keys.Dispatch(msg.String())
	m.followViewer()
	return m, nil
}

// followViewer keeps the cursor on the item being viewed and drops the
// lightbox snapshot once the viewer has closed.
func (m *Model) followViewer() {
	st := m.viewer.State()
	if !st.IsOpen {
		m.lightbox = nil
		return
	}
	if m.lightboxSrc != sectionNews {
		m.cursor[m.lightboxSrc] = st.CurrentIndex
		return
	}
	// The news cursor is on posts, not on images.
	if it, ok := m.viewer.CurrentItem(m.lightbox); ok {
		for i, p := range m.site.News {
			if p.ID == it.ID {
				m.cursor[sectionNews] = i
				break
			}
		}
	}
	m.syncNews()
}

func (m Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.pageKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.Refresh):
		m.loading = true
		return m, m.fetch()
	case key.Matches(msg, k.Section):
		step := section(1)
		if msg.String() == "shift+tab" {
			step = sectionCount - 1
		}
		m.section = (m.section + step) % sectionCount
	case key.Matches(msg, k.Open):
		m.open()
	case key.Matches(msg, k.Left):
		m.move(-1)
	case key.Matches(msg, k.Right):
		m.move(1)
	case key.Matches(msg, k.Up):
		m.move(-m.rowStep())
	case key.Matches(msg, k.Down):
		m.move(m.rowStep())
	}
	m.syncNews()
	return m, nil
}

// open starts the lightbox at the cursor, indexed within the listing that
// is on screen. On the news list the index is that of the post's image
// among the posts that have one; a post without an image does not open.
func (m *Model) open() {
	items := m.listing(m.section)
	index := m.cursor[m.section]
	if m.section == sectionNews {
		index = -1
		if m.site != nil && m.cursor[sectionNews] < len(m.site.News) {
			id := m.site.News[m.cursor[sectionNews]].ID
			for i, it := range items {
				if it.ID == id {
					index = i
					break
				}
			}
		}
	}
	m.viewer.Open(items, index)
	if m.viewer.IsOpen() {
		m.lightbox = items
		m.lightboxSrc = m.section
	}
}

func (m *Model) move(delta int) {
	n := m.sectionLen(m.section)
	if n == 0 {
		return
	}
	next := m.cursor[m.section] + delta
	if next < 0 || next >= n {
		return
	}
	m.cursor[m.section] = next
}

func (m Model) listing(s section) []gallery.MediaItem {
	if m.site == nil {
		return nil
	}
	switch s {
	case sectionGallery:
		return m.site.Media
	case sectionMore:
		return m.site.MoreWorks()
	case sectionNews:
		return m.site.NewsMedia()
	}
	return nil
}

func (m Model) sectionLen(s section) int {
	if s == sectionNews {
		if m.site == nil {
			return 0
		}
		return len(m.site.News)
	}
	return len(m.listing(s))
}

func (m Model) columns() int {
	return max(1, m.width/cellWidth)
}

// rowStep is how far up and down move the cursor: a grid row, or one post.
func (m Model) rowStep() int {
	if m.section == sectionNews {
		return 1
	}
	return m.columns()
}

// syncNews re-renders the news list and scrolls the selected post into view.
func (m *Model) syncNews() {
	m.news.SetContent(m.renderNews())
	top := m.cursor[sectionNews] * newsPostLines
	switch {
	case top < m.news.YOffset:
		m.news.SetYOffset(top)
	case top+newsPostLines-1 > m.news.YOffset+m.news.Height:
		m.news.SetYOffset(top + newsPostLines - 1 - m.news.Height)
	}
}

// Viewer exposes the lightbox state.
func (m Model) Viewer() *gallery.Viewer {
	return m.viewer
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
