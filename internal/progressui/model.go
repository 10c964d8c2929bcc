// Package progressui provides the Bubble Tea progress dashboard.
package progressui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Vartika-Seth/Sukoon/internal/model"
	"github.com/Vartika-Seth/Sukoon/internal/stats"
)

const (
	tabOverview = iota
	tabPractices
	tabJournal
	tabLibrary
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	accentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Source is the record history shown by the dashboard.
type Source interface {
	Sessions() []model.Session
	Journals() []model.JournalEntry
	Bookmarks() []model.Bookmark
}

// Model implements the Bubble Tea progress UI.
type Model struct {
	src Source
	now func() time.Time

	progress  stats.Progress
	sessions  []model.Session
	journals  []model.JournalEntry
	bookmarks []model.Bookmark

	tabs          []string
	activeTab     int
	viewports     []viewport.Model
	practiceTable table.Model
	tableLayout   tableLayout

	width  int
	height int

	searchMode  bool
	searchInput textinput.Model
	query       string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a progress UI model. A nil now uses time.Now.
func NewModel(src Source, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{
		src:  src,
		now:  now,
		tabs: []string{"Overview", "Practices", "Journal", "Library"},
	}
	m.searchInput = textinput.New()
	m.searchInput.Prompt = "Search journal: "
	m.searchInput.Placeholder = "word or practice"
	m.searchInput.Cursor.SetMode(cursor.CursorBlink)
	m.practiceTable = buildPracticeTable(nil, 0, 1)
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			m.searchMode = true
			m.activeTab = tabJournal
			m.practiceTable.Blur()
			m.searchInput.SetValue(m.query)
			return m, m.searchInput.Focus()
		case "r":
			m.refresh()
			return m, nil
		case "g", "home":
			if m.activeTab == tabPractices {
				m.practiceTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabPractices {
				m.practiceTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabPractices {
				var cmd tea.Cmd
				m.practiceTable, cmd = m.practiceTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) refresh() {
	m.sessions = m.src.Sessions()
	m.journals = m.src.Journals()
	m.bookmarks = m.src.Bookmarks()
	m.progress = stats.BuildProgress(m.src, m.now())
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.applyPracticeTable(width, bodyHeight, true)
	m.renderTabContents()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setTableSize(m.width, vpHeight)
	m.searchInput.Width = max(10, m.width-lipgloss.Width(m.searchInput.Prompt)-2)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabPractices {
		m.practiceTable.Focus()
	} else {
		m.practiceTable.Blur()
	}
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		m.query = strings.TrimSpace(m.searchInput.Value())
		m.renderTabContents()
		m.viewports[tabJournal].GotoTop()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	if m.searchMode {
		return tabs + "\n" + m.searchInput.View()
	}
	summary := fmt.Sprintf("Sessions: %d  Journal: %d  Bookmarks: %d", m.progress.Sessions, m.progress.Journals, len(m.bookmarks))
	if m.query != "" {
		summary += fmt.Sprintf("  Search: %q", m.query)
	}
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.searchMode {
		return headerStyle.Render("enter: apply  esc: cancel  (empty clears the search)")
	}
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Search: /  Refresh: r  Quit: q")
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabPractices {
		if len(m.sessions) == 0 {
			return fitLines("No sessions found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.practiceTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.progress, width))
	m.viewports[tabJournal].SetContent(renderJournal(filterJournals(m.journals, m.query), width))
	m.viewports[tabLibrary].SetContent(renderLibrary(m.bookmarks, width))
}

func renderOverview(p stats.Progress, width int) string {
	cards := renderSummaryCards(p, width)
	rec := accentStyle.Render(fmt.Sprintf("Suggestion: %s %s", p.Recommendation.Type.Icon(), p.Recommendation.Type.Name())) +
		"\n" + truncateLine(p.Recommendation.Message, width)
	if p.Sessions == 0 {
		return strings.TrimRight(cards+"\n\n"+rec, "\n")
	}
	var buf bytes.Buffer
	if err := stats.RenderMoodTrend(&buf, p.Trend, width, true); err != nil {
		return fmt.Sprintf("Failed to render mood trend: %v", err)
	}
	return strings.TrimRight(cards+"\n\n"+rec+"\n\n"+buf.String(), "\n")
}

func renderSummaryCards(p stats.Progress, width int) string {
	mostEffective := "-"
	if p.HasMostEffective {
		mostEffective = p.MostEffective
	}
	tone := "-"
	if p.HasSentiment {
		tone = fmt.Sprintf("%.1f / 5", p.AvgSentiment)
	}
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", p.Sessions)),
		metricCard("Minutes", fmt.Sprintf("%d", p.TotalMinutes)),
		metricCard("Day Streak", fmt.Sprintf("%d", p.Streak)),
		metricCard("Avg Mood Change", fmt.Sprintf("%+.2f", p.AvgImprovement)),
		metricCard("Most Effective", mostEffective),
		metricCard("Reflection Tone", tone),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func filterJournals(journals []model.JournalEntry, query string) []model.JournalEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return journals
	}
	out := make([]model.JournalEntry, 0, len(journals))
	for _, j := range journals {
		if strings.Contains(strings.ToLower(j.Reflection), query) || strings.Contains(strings.ToLower(j.Type), query) {
			out = append(out, j)
			continue
		}
		for _, tag := range j.Tags {
			if strings.Contains(strings.ToLower(tag.Name()), query) {
				out = append(out, j)
				break
			}
		}
	}
	return out
}

// renderJournal lists entries newest first.
func renderJournal(journals []model.JournalEntry, width int) string {
	if len(journals) == 0 {
		return "No journal entries found."
	}
	blocks := make([]string, 0, len(journals))
	for i := len(journals) - 1; i >= 0; i-- {
		j := journals[i]
		head := fmt.Sprintf("%s  %s  mood %d → %d", j.Date.Local().Format("Jan 2, 2006 15:04"), j.Type, j.MoodBefore, j.MoodAfter)
		if j.Sentiment != nil {
			head += fmt.Sprintf("  tone %.1f", *j.Sentiment)
		}
		lines := []string{cardValueStyle.Render(truncateLine(head, width))}
		if text := strings.TrimSpace(j.Reflection); text != "" {
			lines = append(lines, lipgloss.NewStyle().Width(max(width-2, 10)).Render(text))
		}
		if len(j.Tags) > 0 {
			tags := make([]string, len(j.Tags))
			for k, tag := range j.Tags {
				tags[k] = "#" + tag.Name()
			}
			lines = append(lines, headerStyle.Render(strings.Join(tags, " ")))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func renderLibrary(bookmarks []model.Bookmark, width int) string {
	if len(bookmarks) == 0 {
		return "No bookmarks yet. Add one with: sukoon learn bookmark <title>"
	}
	lines := make([]string, 0, len(bookmarks)*3)
	for _, b := range bookmarks {
		lines = append(lines,
			cardValueStyle.Render(truncateLine(b.Icon+" "+b.Title, width)),
			headerStyle.Render(truncateLine(b.Category+" · "+b.Description, width)),
			"",
		)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func buildPracticeTable(rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(practiceColumns()),
		table.WithRows(rows),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(practiceTableStyles())
	return t
}

func practiceColumns() []table.Column {
	return []table.Column{
		{Title: "Practice", Width: 22},
		{Title: "Sessions", Width: 8},
		{Title: "Share", Width: 7},
		{Title: "Avg Mood Change", Width: 15},
	}
}

func practiceRows(sessions []model.Session, counts []model.TypeCount) []table.Row {
	if len(sessions) == 0 {
		return nil
	}
	improvements := stats.ImprovementByType(sessions)
	rows := make([]table.Row, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, table.Row{
			c.Type.Icon() + " " + c.Label,
			fmt.Sprintf("%d", c.Count),
			fmt.Sprintf("%.1f%%", float64(c.Count)/float64(len(sessions))*100),
			fmt.Sprintf("%+.2f", improvements[c.Type]),
		})
	}
	return rows
}

func (m *Model) applyPracticeTable(width, height int, force bool) {
	rows := practiceRows(m.sessions, m.progress.Distribution)
	viewportHeight := max(1, height-1)
	if !force &&
		m.tableLayout.width == width &&
		m.tableLayout.height == viewportHeight &&
		m.tableLayout.rowCount == len(rows) {
		return
	}
	m.practiceTable.SetRows(rows)
	m.tableLayout.rowCount = len(rows)
	m.setTableSize(width, height)
}

func (m *Model) setTableSize(width, height int) {
	viewportHeight := max(1, height-1)
	if m.tableLayout.width == width && m.tableLayout.height == viewportHeight {
		return
	}
	m.tableLayout.width = width
	m.tableLayout.height = viewportHeight
	m.practiceTable.SetWidth(width)
	m.practiceTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustTableHeight(height)
	if m.tableLayout.height != viewportHeight {
		m.tableLayout.height = viewportHeight
		m.practiceTable.SetHeight(viewportHeight)
	}
}

func practiceTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// adjustTableHeight corrects the table height so its rendered view fills the
// body exactly; the header border makes the widget's own height inexact.
func (m *Model) adjustTableHeight(bodyHeight int) int {
	target := max(1, bodyHeight)
	height := m.practiceTable.Height()
	for i := 0; i < 2; i++ {
		viewHeight := lipgloss.Height(m.practiceTable.View())
		if viewHeight == target {
			return height
		}
		height = max(1, height+target-viewHeight)
		m.practiceTable.SetHeight(height)
	}
	return height
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
