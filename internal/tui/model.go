package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"taskquest/internal/engine"
	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

type tab int

const (
	tabPending tab = iota
	tabDone
	tabAchievements
)

var tabNames = []string{"Active Quests", "Completed", "Achievements"}

const maxLog = 4

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width int

	state    engine.State
	tab      tab
	selected int
	bar      progress.Model

	log []string
	err error
}

type loadedMsg struct {
	state engine.State
	err   error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:   ctx,
		svc:   svc,
		state: svc.State(),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		log:   []string{"Loaded."},
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Reload(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{state: m.svc.State()}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleComplete(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m *boardModel) pushLog(lines ...string) {
	m.log = append(m.log, lines...)
	if len(m.log) > maxLog {
		m.log = m.log[len(m.log)-maxLog:]
	}
}

func (m boardModel) visibleTasks() []storage.Task {
	switch m.tab {
	case tabPending:
		return m.state.Pending()
	case tabDone:
		return m.state.Completed()
	default:
		return nil
	}
}

func (m boardModel) rowCount() int {
	if m.tab == tabAchievements {
		return len(m.state.Achievements)
	}
	return len(m.visibleTasks())
}

func (m boardModel) clampSelection() boardModel {
	n := m.rowCount()
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return m
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case loadedMsg:
		m.err = msg.err
		if msg.err != nil {
			m.pushLog("Reload failed: " + msg.err.Error())
			return m, nil
		}
		m.state = msg.state
		m.pushLog("Reloaded.")
		return m.clampSelection(), nil
	case toggledMsg:
		if msg.err != nil {
			m.pushLog("Toggle failed: " + msg.err.Error())
			return m, nil
		}
		m.state = msg.res.State
		for _, ev := range msg.res.Events {
			m.pushLog(ev.Message())
		}
		return m.clampSelection(), nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.reloadCmd()
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tab(len(tabNames))
			m.selected = 0
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
			m.selected = 0
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < m.rowCount()-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ", "c":
			tasks := m.visibleTasks()
			if m.selected < 0 || m.selected >= len(tasks) {
				return m, nil
			}
			return m, m.toggleCmd(tasks[m.selected].ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	if m.tab == tabAchievements {
		b.WriteString(m.renderAchievements())
	} else {
		b.WriteString(m.renderTasks())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	p := m.state.Progress
	ratio := float64(p.CurrentXP) / float64(engine.XPPerLevel)
	stats := fmt.Sprintf("%s  %s  %s  %s",
		ui.LabelValue("Level", p.Level),
		ui.LabelValue("Total XP", p.TotalXP),
		ui.LabelValue("Quests", p.TasksCompleted),
		ui.LabelValue("Streak", fmt.Sprintf("%d (best %d)", p.CurrentStreak, p.LongestStreak)),
	)
	line := fmt.Sprintf("%s %d/%d XP", m.bar.ViewAs(ratio), p.CurrentXP, engine.XPPerLevel)
	return ui.Panel.Render(ui.Heading(ui.IconQuest, "TaskQuest") + "\n" + stats + "\n" + line)
}

func (m boardModel) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%s (%d)", name, m.tabCount(tab(i)))
		if tab(i) == m.tab {
			parts[i] = ui.SelectedRow.Render("[" + label + "]")
		} else {
			parts[i] = ui.Muted.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m boardModel) tabCount(t tab) int {
	switch t {
	case tabPending:
		return len(m.state.Pending())
	case tabDone:
		return len(m.state.Completed())
	default:
		return engine.CountUnlocked(m.state.Achievements)
	}
}

func (m boardModel) renderTasks() string {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		if m.tab == tabPending {
			return ui.Muted.Render("No active quests. Add one with `tq add`.")
		}
		return ui.Muted.Render("Nothing completed yet.")
	}
	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		cursor := "  "
		title := t.Title
		if t.Completed {
			title = ui.Strike.Render(title)
		}
		if i == m.selected {
			cursor = "> "
			title = ui.SelectedRow.Render(t.Title)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s %s",
			cursor,
			ui.CategoryIcon(t.Category),
			title,
			ui.DifficultyText(t.Difficulty),
			ui.Gold.Render(fmt.Sprintf("+%d XP", t.XPReward)),
		))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderAchievements() string {
	lines := make([]string, 0, len(m.state.Achievements))
	for i, a := range m.state.Achievements {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		icon := ui.IconLock
		title := ui.Muted.Render(a.Title)
		if a.Unlocked {
			icon = a.Icon
			title = ui.Gold.Render(a.Title)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s", cursor, icon, title, ui.Muted.Render(a.Description)))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderFooter() string {
	keys := ui.Muted.Render("↑/↓ move · space toggle · tab switch · r reload · q quit")
	return strings.Join(m.log, "\n") + "\n\n" + keys
}
