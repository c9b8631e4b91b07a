// Package tui provides the interactive terminal dashboard for Mission Control.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fentz26/missionctl/internal/board"
	"github.com/fentz26/missionctl/internal/directory"
	"github.com/fentz26/missionctl/internal/entities"
	"github.com/fentz26/missionctl/internal/feed"
	"github.com/fentz26/missionctl/internal/models"
	"github.com/fentz26/missionctl/internal/search"
	"github.com/fentz26/missionctl/internal/seed"
	"github.com/fentz26/missionctl/internal/session"
)

const (
	modeDashboard = "dashboard"
	modeSearch    = "search"
	modeMission   = "mission"
	modeStandup   = "standup"
	modeEditor    = "editor"

	focusBoard  = "board"
	focusAgents = "agents"

	heartbeatInterval = 30 * time.Second
)

// Options configures the dashboard.
type Options struct {
	// APIAddr is the daemon base URL used by the agent editor.
	APIAddr string
	// Seed is the dashboard data. Nil means the embedded default.
	Seed *seed.Seed
	// Session holds the persisted preferences. Nil means defaults.
	Session *session.Config
	// SessionPath is where preference changes are written. Empty disables saving.
	SessionPath string
	// ClientName identifies this dashboard in daemon status checks.
	ClientName string
}

// App is the main TUI application model. The board, feed, search and
// directory run in-process over the seed snapshot.
type App struct {
	client      *Client
	clientName  string
	sess        *session.Config
	sessionPath string
	st          styles

	store   *entities.Store
	board   *board.Board
	drag    *board.DragSession
	feed    *feed.Feed
	index   *search.Index
	dir     *directory.Directory
	standup models.Standup

	mode     string
	focus    string
	colIdx   int
	rowIdx   int
	agentIdx int
	hoverIdx int

	searchInput  textinput.Model
	results      search.Results
	resultIdx    int
	missionInput textinput.Model
	editor       *editor
	pending      tea.Cmd
	feedView     viewport.Model

	width         int
	height        int
	now           time.Time
	lastHeartbeat time.Time
	daemonOnline  bool
	message       string
}

// New creates a new TUI application.
func New(opts Options) *App {
	sd := opts.Seed
	if sd == nil {
		sd = seed.Default()
	}
	sess := opts.Session
	if sess == nil {
		sess = session.Default()
	}
	clientName := opts.ClientName
	if clientName == "" {
		clientName = "tui"
	}

	store := entities.New(sd)
	b := board.New(store)

	si := textinput.New()
	si.Placeholder = "Search agents, tasks, activity..."
	si.CharLimit = 128
	si.Width = 60

	mi := textinput.New()
	mi.CharLimit = 256
	mi.Width = 80

	a := &App{
		client:       NewClient(opts.APIAddr),
		clientName:   clientName,
		sess:         sess,
		sessionPath:  opts.SessionPath,
		st:           newStyles(sess.Theme),
		store:        store,
		board:        b,
		drag:         board.NewDragSession(b),
		feed:         feed.New(store),
		index:        search.New(store),
		standup:      sd.Standup,
		mode:         modeDashboard,
		focus:        focusBoard,
		searchInput:  si,
		results:      search.Results{},
		missionInput: mi,
		feedView:     viewport.New(40, 20),
		width:        120,
		height:       36,
		now:          time.Now(),
	}
	a.dir = directory.New(store, a.onAgentSelected)
	a.refreshFeed()
	return a
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.checkDaemon(),
		a.syncAgents(),
		a.tickCmd(),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.mode {
		case modeSearch:
			cmd = a.updateSearch(msg)
		case modeMission:
			cmd = a.updateMission(msg)
		case modeStandup:
			a.updateStandup(msg)
		case modeEditor:
			cmd = a.updateEditor(msg)
		default:
			cmd = a.updateDashboard(msg)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.searchInput.Width = max(20, msg.Width/2)
		a.missionInput.Width = max(20, msg.Width-20)

	case tickMsg:
		a.now = time.Time(msg)
		cmds := []tea.Cmd{a.tickCmd()}
		if a.now.Sub(a.lastHeartbeat) >= heartbeatInterval {
			cmds = append(cmds, a.checkDaemon())
		}
		cmd = tea.Batch(cmds...)

	case daemonStatusMsg:
		a.daemonOnline = msg.online
		a.lastHeartbeat = a.now

	case agentsSyncedMsg:
		for _, d := range msg.agents {
			a.dir.Apply(d.Agent)
		}

	case agentLoadedMsg:
		if a.editor != nil && a.editor.agentID == msg.agent.ID {
			a.editor.load(msg.agent)
		}

	case agentSavedMsg:
		a.dir.Apply(msg.agent.Agent)
		if a.editor != nil && a.editor.agentID == msg.agent.ID {
			a.editor.load(msg.agent)
		}
		a.message = fmt.Sprintf("✓ Saved %s", msg.agent.Name)

	case agentErrMsg:
		if a.editor != nil && a.editor.agentID == msg.agentID {
			a.editor.saving = false
			a.editor.err = msg.err.Error()
		}
	}

	a.refreshFeed()
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) tea.Cmd {
	if a.drag.Dragging() {
		switch msg.String() {
		case "left", "h":
			a.moveHover(-1)
		case "right", "l":
			a.moveHover(1)
		case " ", "enter":
			a.drop()
		case "esc":
			a.drag.Cancel()
			a.message = "Move cancelled"
		}
		return nil
	}

	switch msg.String() {
	case "q":
		return tea.Quit

	case "tab":
		if a.focus == focusBoard {
			a.focus = focusAgents
		} else {
			a.focus = focusBoard
		}

	case "left", "h":
		if a.focus == focusBoard && a.colIdx > 0 {
			a.colIdx--
			a.clampRow()
		}

	case "right", "l":
		if a.focus == focusBoard && a.colIdx < len(a.store.Columns())-1 {
			a.colIdx++
			a.clampRow()
		}

	case "up", "k":
		if a.focus == focusBoard && a.rowIdx > 0 {
			a.rowIdx--
		} else if a.focus == focusAgents && a.agentIdx > 0 {
			a.agentIdx--
		}

	case "down", "j":
		if a.focus == focusBoard && a.rowIdx < len(a.currentColumn())-1 {
			a.rowIdx++
		} else if a.focus == focusAgents && a.agentIdx < a.dir.Len()-1 {
			a.agentIdx++
		}

	case " ":
		if a.focus == focusBoard {
			a.pickUp()
		}

	case "enter":
		if a.focus == focusAgents {
			agents := a.dir.Agents()
			if a.agentIdx < len(agents) {
				return a.openAgent(agents[a.agentIdx].ID)
			}
		} else if t, ok := a.selectedTask(); ok {
			a.message = fmt.Sprintf("%s: %s", t.Title, t.Description)
		}

	case "[":
		a.cycleTab(-1)

	case "]":
		a.cycleTab(1)

	case "pgdown":
		a.feed.Scroll(1)

	case "pgup":
		a.feed.Scroll(-1)

	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue("")
		a.results = a.index.Search("")
		a.resultIdx = 0
		return a.searchInput.Focus()

	case "m":
		a.mode = modeMission
		a.missionInput.SetValue(a.sess.Mission)
		return a.missionInput.Focus()

	case "s":
		a.mode = modeStandup

	case "t":
		theme := a.sess.ToggleTheme()
		a.st = newStyles(theme)
		a.persistSession(fmt.Sprintf("Theme: %s", theme))

	case "f":
		if a.sess.ToggleFeed() {
			a.persistSession("Feed shown")
		} else {
			a.persistSession("Feed hidden")
		}

	case "esc":
		a.message = ""
	}
	return nil
}

// --- Board navigation and keyboard drag ---

func (a *App) currentColumn() []models.Task {
	cols := a.store.Columns()
	if len(cols) == 0 {
		return nil
	}
	return a.board.Column(cols[a.colIdx].ID)
}

func (a *App) clampRow() {
	n := len(a.currentColumn())
	if a.rowIdx >= n {
		a.rowIdx = max(0, n-1)
	}
}

func (a *App) selectedTask() (models.Task, bool) {
	tasks := a.currentColumn()
	if a.rowIdx < 0 || a.rowIdx >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[a.rowIdx], true
}

func (a *App) pickUp() {
	t, ok := a.selectedTask()
	if !ok {
		return
	}
	cols := a.store.Columns()
	a.drag.Begin(t.ID)
	a.hoverIdx = a.colIdx
	a.drag.Enter(cols[a.hoverIdx].ID)
	a.message = fmt.Sprintf("Moving %q: ←/→ to choose a column, space to drop, esc to cancel", t.Title)
}

func (a *App) moveHover(delta int) {
	cols := a.store.Columns()
	next := a.hoverIdx + delta
	if next < 0 || next >= len(cols) {
		return
	}
	a.drag.Leave(cols[a.hoverIdx].ID)
	a.hoverIdx = next
	a.drag.Enter(cols[a.hoverIdx].ID)
}

func (a *App) drop() {
	cols := a.store.Columns()
	target := cols[a.hoverIdx]
	taskID := a.drag.Payload()
	if !a.drag.DropOn(target.ID) {
		a.message = "No change"
		return
	}
	a.message = fmt.Sprintf("✓ Moved %s to %s", taskID, target.Name)
	a.selectTask(taskID)
}

// selectTask moves the board cursor onto a task.
func (a *App) selectTask(id string) bool {
	t, ok := a.board.Task(id)
	if !ok {
		return false
	}
	col := a.store.ColumnIndex(t.Column)
	if col < 0 {
		return false
	}
	a.focus = focusBoard
	a.colIdx = col
	for i, ct := range a.board.Column(t.Column) {
		if ct.ID == id {
			a.rowIdx = i
			break
		}
	}
	return true
}

// --- Feed ---

func (a *App) cycleTab(delta int) {
	tabs := a.store.Tabs()
	if len(tabs) == 0 {
		return
	}
	cur := 0
	for i, t := range tabs {
		if t.Name == a.feed.ActiveTab() {
			cur = i
			break
		}
	}
	next := (cur + delta + len(tabs)) % len(tabs)
	a.feed.SelectTab(tabs[next].Name)
}

// --- Search ---

type resultItem struct {
	kind string
	id   string
}

func (a *App) resultItems() []resultItem {
	items := make([]resultItem, 0, a.results.Total())
	for _, ag := range a.results.Agents {
		items = append(items, resultItem{"agent", ag.ID})
	}
	for _, t := range a.results.Tasks {
		items = append(items, resultItem{"task", t.ID})
	}
	for _, e := range a.results.Events {
		items = append(items, resultItem{"event", e.ID})
	}
	return items
}

func (a *App) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.closeSearch()
		return nil
	case "up":
		if a.resultIdx > 0 {
			a.resultIdx--
		}
		return nil
	case "down":
		if a.resultIdx < a.results.Total()-1 {
			a.resultIdx++
		}
		return nil
	case "enter":
		items := a.resultItems()
		if a.resultIdx >= len(items) {
			return nil
		}
		item := items[a.resultIdx]
		a.closeSearch()
		switch item.kind {
		case "agent":
			return a.openAgent(item.id)
		case "task":
			a.selectTask(item.id)
		case "event":
			for _, e := range a.store.Events() {
				if e.ID == item.id {
					a.message = fmt.Sprintf("%s %s %s (%s)", a.agentName(e.AgentID), e.Action, e.Target, e.Timestamp)
				}
			}
		}
		return nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.results = a.index.Search(a.searchInput.Value())
	if a.resultIdx >= a.results.Total() {
		a.resultIdx = max(0, a.results.Total()-1)
	}
	return cmd
}

func (a *App) closeSearch() {
	a.mode = modeDashboard
	a.searchInput.Blur()
	a.searchInput.SetValue("")
	a.results = search.Results{}
	a.resultIdx = 0
}

// --- Mission and standup ---

func (a *App) updateMission(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.mode = modeDashboard
		a.missionInput.Blur()
		return nil
	case "enter":
		a.mode = modeDashboard
		a.missionInput.Blur()
		if a.sess.SetMission(a.missionInput.Value()) {
			a.persistSession("✓ Mission updated")
		}
		return nil
	}
	var cmd tea.Cmd
	a.missionInput, cmd = a.missionInput.Update(msg)
	return cmd
}

func (a *App) updateStandup(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "s", "q":
		a.mode = modeDashboard
	}
}

func (a *App) persistSession(okMessage string) {
	a.message = okMessage
	if a.sessionPath == "" {
		return
	}
	if err := session.Save(a.sessionPath, a.sess); err != nil {
		a.message = "Error: " + err.Error()
	}
}

// --- Agent editor ---

// onAgentSelected is the directory's selection callback.
func (a *App) onAgentSelected(agentID string) {
	a.editor = newEditor(agentID)
	a.mode = modeEditor
	a.pending = a.fetchAgent(agentID)
}

func (a *App) openAgent(id string) tea.Cmd {
	if !a.dir.Select(id) {
		return nil
	}
	cmd := a.pending
	a.pending = nil
	return cmd
}

func (a *App) closeEditor() {
	a.editor = nil
	a.dir.Close()
	a.mode = modeDashboard
}

func (a *App) updateEditor(msg tea.KeyMsg) tea.Cmd {
	e := a.editor
	if e == nil {
		a.mode = modeDashboard
		return nil
	}

	if e.confirmDiscard {
		switch msg.String() {
		case "y", "Y":
			a.closeEditor()
			a.message = "Changes discarded"
		case "n", "N", "esc":
			e.confirmDiscard = false
		}
		return nil
	}

	switch msg.String() {
	case "esc":
		if e.dirty() {
			e.confirmDiscard = true
			return nil
		}
		a.closeEditor()
		return nil
	case "ctrl+s":
		return a.saveAgent()
	}

	if e.loading || e.saving {
		return nil
	}
	return e.update(msg)
}

func (a *App) saveAgent() tea.Cmd {
	e := a.editor
	if e.loading || e.saving {
		return nil
	}
	if problem := e.validate(); problem != "" {
		e.err = problem
		return nil
	}
	u := e.changes()
	if u.IsEmpty() {
		a.message = "Nothing to save"
		return nil
	}
	e.saving = true
	e.err = ""
	id := e.agentID
	return func() tea.Msg {
		agent, err := a.client.UpdateAgent(id, u)
		if err != nil {
			return agentErrMsg{agentID: id, err: err}
		}
		return agentSavedMsg{agent: *agent}
	}
}

func (a *App) agentName(id string) string {
	if ag, ok := a.dir.Agent(id); ok {
		return ag.Name
	}
	return a.store.AgentName(id)
}

// --- Commands ---

func (a *App) fetchAgent(id string) tea.Cmd {
	return func() tea.Msg {
		agent, err := a.client.GetAgent(id)
		if err != nil {
			return agentErrMsg{agentID: id, err: err}
		}
		return agentLoadedMsg{agent: *agent}
	}
}

func (a *App) syncAgents() tea.Cmd {
	return func() tea.Msg {
		agents, err := a.client.ListAgents()
		if err != nil {
			// Offline daemon: the seed directory stays as is.
			return nil
		}
		return agentsSyncedMsg{agents: agents}
	}
}

func (a *App) checkDaemon() tea.Cmd {
	name := a.clientName
	return func() tea.Msg {
		if _, err := a.client.CheckHealth(); err != nil {
			return daemonStatusMsg{online: false}
		}
		_, err := a.client.CreateStatusCheck(name)
		return daemonStatusMsg{online: err == nil}
	}
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type daemonStatusMsg struct {
	online bool
}

type agentsSyncedMsg struct {
	agents []models.AgentDetail
}

type agentLoadedMsg struct {
	agent models.AgentDetail
}

type agentSavedMsg struct {
	agent models.AgentDetail
}

type agentErrMsg struct {
	agentID string
	err     error
}

type tickMsg time.Time
