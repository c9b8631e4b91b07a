package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/missionctl/internal/models"
)

const (
	agentsPaneWidth = 30
	feedPaneWidth   = 42
)

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderTopBar() + "\n")
	b.WriteString(a.st.banner.Width(a.width).Render("◎ "+a.sess.Mission) + "\n")

	bodyHeight := max(8, a.height-4)
	switch a.mode {
	case modeSearch:
		b.WriteString(a.overlay(a.renderSearch(), bodyHeight))
	case modeMission:
		b.WriteString(a.overlay(a.renderMission(), bodyHeight))
	case modeStandup:
		b.WriteString(a.overlay(a.renderStandup(), bodyHeight))
	case modeEditor:
		b.WriteString(a.overlay(a.renderEditor(), bodyHeight))
	default:
		b.WriteString(a.renderBody(bodyHeight))
	}
	b.WriteString("\n")

	if a.message != "" {
		style := a.st.okText
		if strings.HasPrefix(a.message, "Error") {
			style = a.st.errorText
		}
		b.WriteString(style.MaxWidth(a.width).Render(a.message))
	}
	b.WriteString("\n")
	b.WriteString(a.st.statusBar.Width(a.width).Render(a.helpLine()))
	return b.String()
}

func (a *App) overlay(content string, height int) string {
	return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, a.st.modal.Render(content))
}

func (a *App) renderTopBar() string {
	daemon := lipgloss.NewStyle().Foreground(a.st.p.success).Render("● DAEMON")
	if !a.daemonOnline {
		daemon = a.st.muted.Render("○ DAEMON")
	}

	left := a.st.title.Render("◆ MISSION CONTROL")
	stats := fmt.Sprintf("%d/%d agents active · %d tasks in queue", a.dir.ActiveCount(), a.dir.Len(), a.board.ActiveCount())
	left += "  " + a.st.muted.Render(stats) + "  " + daemon

	clock := a.st.muted.Render(a.now.Format("Mon Jan 2 15:04:05"))
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(clock))
	return left + strings.Repeat(" ", gap) + clock
}

func (a *App) renderBody(height int) string {
	paneHeight := height - 2
	panes := []string{a.renderAgents(paneHeight)}

	boardWidth := a.width - agentsPaneWidth - 4
	if a.sess.FeedVisible {
		boardWidth -= feedPaneWidth + 4
	}
	panes = append(panes, a.renderBoard(boardWidth, paneHeight))

	if a.sess.FeedVisible {
		panes = append(panes, a.st.pane.Width(feedPaneWidth).Height(paneHeight).Render(a.renderFeedPane()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

// --- Agents ---

func (a *App) renderAgents(height int) string {
	var b strings.Builder
	b.WriteString(a.st.title.Render(fmt.Sprintf("AGENTS %d", a.dir.Len())))
	b.WriteString(a.st.muted.Render(fmt.Sprintf("%d active", a.dir.ActiveCount())) + "\n\n")

	activity := make(map[string]int)
	for _, s := range a.feed.AgentActivitySummary(a.board) {
		activity[s.AgentID] = s.ActiveTasks
	}

	for i, ag := range a.dir.Agents() {
		name := ag.Name
		if ag.Icon != "" {
			name = ag.Icon + " " + name
		}
		line := fmt.Sprintf("%-16s %s", truncate(name, 16), a.st.badge(ag.BadgeColor).Render(ag.Badge))
		if a.focus == focusAgents && i == a.agentIdx && !a.drag.Dragging() {
			line = a.st.selected.Render(fmt.Sprintf("%-16s %s", truncate(name, 16), ag.Badge))
		}
		b.WriteString(line + "\n")
		detail := fmt.Sprintf("  %s · %d tasks", ag.Role, activity[ag.ID])
		b.WriteString("  " + a.st.status(ag.Status) + "\n")
		b.WriteString(a.st.muted.Render(truncate(detail, agentsPaneWidth)) + "\n")
	}

	style := a.st.pane
	if a.focus == focusAgents {
		style = a.st.paneFocus
	}
	return style.Width(agentsPaneWidth).Height(height).Render(b.String())
}

// --- Board ---

func (a *App) renderBoard(width, height int) string {
	snapshot := a.board.Snapshot()
	if len(snapshot) == 0 {
		return a.st.pane.Width(width).Height(height).Render("No columns")
	}
	colWidth := max(16, width/len(snapshot)-4)

	cols := make([]string, len(snapshot))
	for ci, cv := range snapshot {
		var b strings.Builder
		header := fmt.Sprintf("%s %s", a.st.dot(cv.Column.DotColor), strings.ToUpper(cv.Column.Name))
		b.WriteString(header + " " + a.st.muted.Render(fmt.Sprintf("%d", cv.Count)) + "\n\n")

		for ri, t := range cv.Tasks {
			b.WriteString(a.renderCard(t, colWidth, ci, ri) + "\n")
		}
		if cv.Count == 0 {
			b.WriteString(a.st.muted.Render("No tasks") + "\n")
		}

		style := a.st.column
		if a.drag.IsOver(cv.Column.ID) {
			style = a.st.dropZone
		}
		cols[ci] = style.Width(colWidth).Height(height - 2).Render(b.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a *App) renderCard(t models.Task, width, col, row int) string {
	title := truncate(t.Title, width-2)
	line := a.st.priority(t.Priority) + " " + title

	switch {
	case a.drag.Dragging() && a.drag.Payload() == t.ID:
		line = a.st.dragging.Render("⇄ " + title)
	case a.focus == focusBoard && col == a.colIdx && row == a.rowIdx:
		line = a.st.selected.Render("▸ " + title)
	}

	meta := a.agentName(t.AssigneeID)
	if len(t.Tags) > 0 {
		meta += " · " + strings.Join(t.Tags, ", ")
	}
	if t.Timestamp != "" {
		meta += " · " + t.Timestamp
	}
	return line + "\n" + a.st.muted.Render(truncate(meta, width))
}

// --- Feed ---

func (a *App) renderFeedPane() string {
	var tabs []string
	for _, tc := range a.feed.TabCountList() {
		label := fmt.Sprintf("%s %d", tc.Name, tc.Count)
		if tc.Name == a.feed.ActiveTab() {
			tabs = append(tabs, a.st.tabActive.Render(label))
		} else {
			tabs = append(tabs, a.st.tab.Render(label))
		}
	}
	header := a.st.title.Render("LIVE FEED")
	return header + "\n" + lipgloss.NewStyle().Width(feedPaneWidth).Render(strings.Join(tabs, " ")) + "\n\n" + a.feedView.View()
}

// refreshFeed re-renders the active tab into the feed viewport.
func (a *App) refreshFeed() {
	a.feedView.Width = feedPaneWidth
	a.feedView.Height = max(4, a.height-12)

	if a.feed.IsEmpty() {
		a.feedView.SetContent(a.st.muted.Render("No activity yet"))
		a.feedView.GotoTop()
		return
	}

	events := a.feed.FilteredEvents()
	var b strings.Builder
	for _, e := range events[a.feed.ScrollOffset():] {
		head := lipgloss.NewStyle().Bold(true).Render(a.agentName(e.AgentID)) + " " + e.Action
		if e.Target != "" {
			head += " " + lipgloss.NewStyle().Foreground(a.st.p.accent).Render(e.Target)
		}
		b.WriteString(lipgloss.NewStyle().Width(feedPaneWidth).Render(head) + "\n")
		if e.Detail != "" {
			b.WriteString(a.st.muted.Width(feedPaneWidth).Render("  "+e.Detail) + "\n")
		}
		b.WriteString(a.st.muted.Render("  "+e.Timestamp) + "\n")
	}
	a.feedView.SetContent(b.String())
	a.feedView.GotoTop()
}

// --- Overlays ---

func (a *App) renderSearch() string {
	var b strings.Builder
	b.WriteString(a.st.title.Render("SEARCH") + "\n")
	b.WriteString(a.searchInput.View() + "\n\n")

	if a.results.NoQuery() {
		b.WriteString(a.st.muted.Render("Type to search agents, tasks and activity"))
		return b.String()
	}
	if a.results.Total() == 0 {
		b.WriteString(a.st.muted.Render(fmt.Sprintf("No results for %q", a.searchInput.Value())))
		return b.String()
	}
	b.WriteString(a.st.muted.Render(resultCount(a.results.Total())) + "\n")

	i := 0
	row := func(text string) {
		if i == a.resultIdx {
			text = a.st.selected.Render("▸ " + text)
		} else {
			text = "  " + text
		}
		b.WriteString(text + "\n")
		i++
	}
	if len(a.results.Agents) > 0 {
		b.WriteString(a.st.muted.Render("AGENTS") + "\n")
		for _, ag := range a.results.Agents {
			row(fmt.Sprintf("%s · %s", ag.Name, ag.Role))
		}
	}
	if len(a.results.Tasks) > 0 {
		b.WriteString(a.st.muted.Render("TASKS") + "\n")
		for _, t := range a.results.Tasks {
			row(fmt.Sprintf("%s · %s", t.Title, t.Column))
		}
	}
	if len(a.results.Events) > 0 {
		b.WriteString(a.st.muted.Render("ACTIVITY") + "\n")
		for _, e := range a.results.Events {
			row(fmt.Sprintf("%s %s %s", a.agentName(e.AgentID), e.Action, e.Target))
		}
	}
	return b.String()
}

func (a *App) renderMission() string {
	return a.st.title.Render("MISSION") + "\n" + a.missionInput.View() + "\n\n" +
		a.st.help.Render("enter: save · esc: cancel")
}

func (a *App) renderStandup() string {
	var b strings.Builder
	b.WriteString(a.st.title.Render(fmt.Sprintf("DAILY STANDUP · %d items", a.standup.Total())) + "\n")
	section := func(name string, items []models.StandupItem) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(name) + "\n")
		for _, it := range items {
			b.WriteString(fmt.Sprintf("  • %s ", it.Title) + a.st.muted.Render("("+it.Agent+")") + "\n")
			if it.Detail != "" {
				b.WriteString(a.st.muted.Render("    "+it.Detail) + "\n")
			}
		}
	}
	section("Completed", a.standup.Completed)
	section("In Progress", a.standup.InProgress)
	section("Blocked", a.standup.Blocked)
	section("Needs Review", a.standup.NeedsReview)
	section("Key Decisions", a.standup.KeyDecisions)
	return b.String()
}

func (a *App) renderEditor() string {
	e := a.editor
	if e == nil {
		return ""
	}
	var b strings.Builder
	name := a.agentName(e.agentID)
	b.WriteString(a.st.title.Render("AGENT · "+name) + "\n\n")

	switch {
	case e.loading && e.err != "":
		b.WriteString(a.st.errorText.Render("Could not load agent: "+e.err) + "\n\n")
		b.WriteString(a.st.help.Render("esc: close"))
		return b.String()
	case e.loading:
		b.WriteString(a.st.muted.Render("Loading..."))
		return b.String()
	}

	for i := 0; i < fieldCount; i++ {
		label := fmt.Sprintf("%-13s", fieldLabels[i])
		if i == e.focus {
			label = a.st.tabActive.Render(label)
		} else {
			label = a.st.muted.Render(label)
		}
		value := ""
		if i == fieldStatus {
			value = a.st.status(e.status)
		} else {
			value = e.fieldView(i)
		}
		b.WriteString(label + " " + value + "\n")
	}

	if n := len(e.saved.PromptTemplates); n > 0 {
		b.WriteString("\n" + a.st.muted.Render(fmt.Sprintf("%d prompt templates", n)) + "\n")
	}
	if e.err != "" {
		b.WriteString("\n" + a.st.errorText.Render(e.err) + "\n")
	}
	if e.saving {
		b.WriteString("\n" + a.st.muted.Render("Saving...") + "\n")
	}
	if e.confirmDiscard {
		b.WriteString("\n" + a.st.errorText.Render("Discard unsaved changes? (y/n)") + "\n")
	} else if e.dirty() {
		b.WriteString("\n" + a.st.muted.Render("● unsaved changes") + "\n")
	}
	return b.String()
}

func (a *App) helpLine() string {
	switch a.mode {
	case modeSearch:
		return " ↑↓:select | Enter:open | Esc:close"
	case modeMission:
		return " Enter:save | Esc:cancel"
	case modeStandup:
		return " Esc:close"
	case modeEditor:
		return " Tab:next field | Space:toggle status | Ctrl+S:save | Esc:close"
	}
	if a.drag.Dragging() {
		return " ←→:choose column | Space/Enter:drop | Esc:cancel"
	}
	return fmt.Sprintf(" Tab:focus | ←→↑↓:nav | Space:move | [ ]:feed tabs | /:search | m:mission | s:standup | t:theme | f:feed | q:quit | board v%d", a.board.Version())
}

func resultCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
