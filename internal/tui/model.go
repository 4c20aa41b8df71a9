package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"frostpaw/internal/engine"
	"frostpaw/internal/storage"
)

type denModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	refreshEvery time.Duration

	companion *storage.Companion
	quests    []storage.Quest
	tasks     []storage.Task

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	companion *storage.Companion
	quests    []storage.Quest
	tasks     []storage.Task
	err       error
}

type completedMsg struct {
	res *engine.CompleteTaskResult
	err error
}

type caredMsg struct {
	label     string
	companion *storage.Companion
	err       error
}

type refreshTickMsg time.Time

func newDenModel(ctx context.Context, svc *engine.Service, refreshEvery time.Duration) denModel {
	if refreshEvery <= 0 {
		refreshEvery = engine.DefaultDecayInterval
	}
	return denModel{
		ctx:          ctx,
		svc:          svc,
		refreshEvery: refreshEvery,
		loading:      true,
		lastLog:      "Loaded.",
	}
}

func (m denModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m denModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m denModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		// Check adoption first: the quest refresh would otherwise synthesize
		// a default companion behind the user's back.
		if _, err := m.svc.Companion(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		refresh, err := m.svc.RefreshQuestProgress(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.AvailableTasks(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{companion: refresh.Companion, quests: refresh.Quests, tasks: tasks}
	}
}

func (m denModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, id)
		return completedMsg{res: res, err: err}
	}
}

func (m denModel) careCmd(label string, op func(context.Context) (*storage.Companion, error)) tea.Cmd {
	return func() tea.Msg {
		c, err := op(m.ctx)
		return caredMsg{label: label, companion: c, err: err}
	}
}

func (m denModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshTickMsg:
		// The decay scheduler has aged the vitals in the background; reload
		// so the den reflects them.
		return m, tea.Batch(m.loadCmd(), m.tickCmd())
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, engine.ErrNoCompanion) {
				m.err = msg.err
				return m, nil
			}
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.companion = msg.companion
		m.quests = msg.quests
		m.tasks = msg.tasks
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.AlreadyDone {
			m.lastLog = "Already completed today."
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completed #%d: +%d XP", msg.res.Task.ID, msg.res.XPAwarded)
		if msg.res.SpawnedTask != nil {
			m.lastLog += fmt.Sprintf("; next up: %s", msg.res.SpawnedTask.Title)
		}
		if len(msg.res.CompletedQuestIDs) > 0 {
			m.lastLog += fmt.Sprintf("; quest reward +%d pts", msg.res.QuestPoints)
		}
		if msg.res.LevelUp {
			m.lastLog += fmt.Sprintf("; LEVEL UP (%d -> %d)", msg.res.LevelBefore, msg.res.LevelAfter)
		}
		return m, m.loadCmd()
	case caredMsg:
		if msg.err != nil {
			m.lastLog = msg.label + " failed: " + msg.err.Error()
			return m, nil
		}
		m.companion = msg.companion
		m.lastLog = msg.label + "."
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.selected < 0 || m.selected >= len(m.tasks) {
				return m, nil
			}
			t := m.tasks[m.selected]
			m.lastLog = fmt.Sprintf("Completing #%d…", t.ID)
			return m, m.completeCmd(t.ID)
		case "f":
			return m, m.careCmd("Fed", m.svc.Feed)
		case "p":
			return m, m.careCmd("Played", m.svc.Play)
		case "s":
			return m, m.careCmd("Rested", m.svc.Rest)
		}
	}
	return m, nil
}

func (m denModel) View() string {
	if m.err != nil {
		if errors.Is(m.err, engine.ErrNoCompanion) {
			return "No companion yet. Adopt one with `fp adopt <name>`, then reopen the den.\n\nPress q to quit.\n"
		}
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m denModel) renderHeader() string {
	if m.companion == nil {
		return "Frostpaw | loading…"
	}
	c := m.companion
	bar := progressBar(c.Experience, engine.XPToNextLevel(c.Level), 30)
	return fmt.Sprintf("Frostpaw | %s the %s | Level %d %s | %d pts | streak %dd",
		c.Name, c.Stage, c.Level, bar, c.TotalPoints, c.StreakDays)
}

func (m denModel) renderSidebar() string {
	if m.companion == nil {
		return "Vitals\n\nLoading…"
	}
	c := m.companion
	lines := []string{"Vitals"}
	lines = append(lines, renderVital("Happiness", c.Happiness))
	lines = append(lines, renderVital("Hunger", c.Hunger))
	lines = append(lines, renderVital("Energy", c.Energy))
	lines = append(lines, renderVital("Health", c.Health))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter/space: complete")
	lines = append(lines, "- f: feed  p: play  s: rest")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m denModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string

	out = append(out, "Quests")
	now := time.Now()
	active := engine.ActiveQuests(m.quests, now)
	if len(active) == 0 {
		out = append(out, "(none)")
	}
	for _, q := range active {
		out = append(out, fmt.Sprintf("- %s %d/%d (+%dpts +%dxp)", q.Title, q.CurrentProgress, q.TargetCount, q.RewardPoints, q.RewardXP))
	}
	out = append(out, "")

	out = append(out, "Tasks for today")
	if len(m.tasks) == 0 {
		out = append(out, "(all done)")
		return strings.Join(out, "\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		icon := "  "
		if t.IsRecurring {
			icon = "↻ "
		}
		streak := ""
		if t.DailyStreak > 1 {
			streak = fmt.Sprintf(" (%dd streak)", t.DailyStreak)
		}
		out = append(out, fmt.Sprintf("%s%s#%d %s (+%dxp)%s", cursor, icon, t.ID, t.Title, t.Reward, streak))
	}
	return strings.Join(out, "\n")
}

func (m denModel) renderFooter() string {
	return "\n" + m.lastLog
}

func renderVital(label string, value float64) string {
	return fmt.Sprintf("- %-9s %s", label, progressBar(int(value), 100, 14))
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
