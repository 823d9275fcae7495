package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/utafrali/artfolio/internal/gallery"
)

func (m Model) View() string {
	if m.site == nil {
		if m.err != nil {
			return m.styles.Error.Render("error: "+m.err.Error()) + "\n\n" + m.help.View(m.pageKeys) + "\n"
		}
		return m.spinner.View() + " loading " + m.username + "...\n"
	}
	if m.viewer.IsOpen() {
		return m.viewLightbox()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.sectionTitle(sectionGallery, "Gallery"))
	b.WriteString("\n")
	b.WriteString(m.viewGrid(sectionGallery))
	b.WriteString("\n")
	b.WriteString(m.sectionTitle(sectionMore, "More works"))
	b.WriteString("\n")
	b.WriteString(m.viewGrid(sectionMore))
	b.WriteString("\n")
	b.WriteString(m.sectionTitle(sectionNews, "News"))
	b.WriteString("\n")
	if len(m.site.News) == 0 {
		b.WriteString(m.styles.Empty.Render("No news yet."))
	} else {
		b.WriteString(m.news.View())
	}
	b.WriteString("\n\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.pageKeys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewHeader() string {
	a := m.site.Artist
	name := a.Name
	if name == "" {
		name = a.Username
	}
	lines := []string{
		m.styles.Name.Render(name) + "  " + m.styles.Handle.Render("@"+a.Username),
	}
	meta := make([]string, 0, 2)
	if a.Location != "" {
		meta = append(meta, a.Location)
	}
	if a.Style != "" {
		meta = append(meta, a.Style)
	}
	if len(meta) > 0 {
		lines = append(lines, m.styles.Meta.Render(strings.Join(meta, " · ")))
	}
	if a.BioShort != "" {
		lines = append(lines, a.BioShort)
	}
	return strings.Join(lines, "\n")
}

func (m Model) sectionTitle(s section, title string) string {
	if m.section == s {
		return m.styles.SectionOn.Render("▸ " + title)
	}
	return m.styles.Section.Render("  " + title)
}

func (m Model) viewGrid(s section) string {
	items := m.listing(s)
	if len(items) == 0 {
		return m.styles.Empty.Render("Nothing here yet.")
	}

	cols := m.columns()
	rows := make([]string, 0, len(items)/cols+1)
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			style := m.styles.Cell
			if m.section == s && m.cursor[s] == i {
				style = m.styles.CellOn
			}
			cells = append(cells, style.Render(cellLabel(items[i])))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cellLabel(it gallery.MediaItem) string {
	label := truncate(it.Title, cellWidth-4)
	if it.Year > 0 {
		label += "\n" + strconv.Itoa(it.Year)
	}
	return label
}

func (m Model) viewLightbox() string {
	it, ok := m.viewer.CurrentItem(m.lightbox)
	if !ok {
		return ""
	}
	st := m.viewer.State()

	lines := []string{
		m.styles.Title.Render(it.Title),
		m.styles.Counter.Render(fmt.Sprintf("%d / %d", st.CurrentIndex+1, len(m.lightbox))),
		"",
	}
	var details []string
	if it.Year > 0 {
		details = append(details, strconv.Itoa(it.Year))
	}
	if it.Medium != "" {
		details = append(details, it.Medium)
	}
	if it.Dimensions != "" {
		details = append(details, it.Dimensions)
	}
	if len(details) > 0 {
		lines = append(lines, m.styles.Meta.Render(strings.Join(details, " · ")))
	}
	if it.Description != "" {
		lines = append(lines, "", it.Description)
	}
	lines = append(lines, "", m.styles.Handle.Render(it.ImageURL))

	box := m.styles.Lightbox.Width(max(20, m.width-6)).Render(strings.Join(lines, "\n"))
	return box + "\n" + m.help.View(m.boxKeys) + "\n"
}

func (m Model) renderNews() string {
	if m.site == nil {
		return ""
	}
	var b strings.Builder
	for i, p := range m.site.News {
		if i > 0 {
			b.WriteString("\n")
		}
		title := m.styles.NewsTitle
		if m.section == sectionNews && m.cursor[sectionNews] == i {
			title = m.styles.NewsTitleOn
		}
		b.WriteString(title.Render(p.Title))
		if p.FeaturedImageURL != "" {
			b.WriteString("  " + m.styles.NewsDate.Render("[image]"))
		}
		if p.PublishedAt != nil {
			b.WriteString("  " + m.styles.NewsDate.Render(p.PublishedAt.Format("2 Jan 2006")))
		}
		b.WriteString("\n")
		b.WriteString(truncate(p.Content, max(20, m.width-2)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStatus() string {
	var parts []string
	if m.loading {
		parts = append(parts, m.spinner.View()+" refreshing")
	} else if !m.fetched.IsZero() {
		parts = append(parts, "updated "+m.fetched.Format("15:04:05"))
	}
	if m.err != nil {
		parts = append(parts, m.styles.Error.Render(m.err.Error()))
	}
	return m.styles.StatusLine.Render(strings.Join(parts, "  "))
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
