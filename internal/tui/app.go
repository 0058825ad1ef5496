// Package tui is a small dashboard over the ServerStatus table.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/CosmoTheDev/lockrelay/internal/database"
	"github.com/CosmoTheDev/lockrelay/internal/store"
	"github.com/CosmoTheDev/lockrelay/models"
	"github.com/charmbracelet/bubbletea"
)

// App is the root bubbletea model: one table of tracked servers.
type App struct {
	store    *store.Store
	servers  []models.ServerStatus
	width    int
	height   int
	loading  bool
	loadErr  error
	lastLoad time.Time
}

// serversLoadedMsg carries a refreshed server list.
type serversLoadedMsg struct {
	servers []models.ServerStatus
	err     error
}

// NewApp creates the TUI application.
func NewApp(db database.DB) *App {
	return &App{store: store.New(db), loading: true}
}

// Run starts the bubbletea program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return a.loadCmd()
}

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		servers, err := a.store.AllServers(context.Background())
		return serversLoadedMsg{servers: servers, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case serversLoadedMsg:
		a.servers = msg.servers
		a.loadErr = msg.err
		a.loading = false
		a.lastLoad = time.Now()
		// Refresh every 10 seconds.
		return a, tea.Tick(10*time.Second, func(time.Time) tea.Msg {
			return a.loadCmd()()
		})
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "r":
			a.loading = true
			return a, a.loadCmd()
		}
	}
	return a, nil
}

func (a *App) View() string {
	s := titleStyle.Render(" lockrelay ") + "\n\n"

	switch {
	case a.loading:
		s += dimStyle.Render("loading...")
	case a.loadErr != nil:
		s += errStyle.Render(fmt.Sprintf("load failed: %v", a.loadErr))
	case len(a.servers) == 0:
		s += dimStyle.Render("no servers provisioned")
	default:
		for _, row := range a.servers {
			s += renderServer(row) + "\n"
		}
	}

	s += "\n" + statusBarStyle.Render(
		fmt.Sprintf("r refresh · q quit · updated %s", a.lastLoad.Format("15:04:05")))
	return s
}

func renderServer(row models.ServerStatus) string {
	state := closedStyle.Render("CLOSED")
	holder := ""
	if row.IsOpen {
		state = openStyle.Render("OPEN")
		holder = " by " + row.Holder()
	}
	sub := dimStyle.Render("unsubscribed")
	if row.Channel() != "" {
		sub = dimStyle.Render("→ " + row.Channel())
	}
	return fmt.Sprintf("  %-40s %s%s  %s", row.Name, state, holder, sub)
}
