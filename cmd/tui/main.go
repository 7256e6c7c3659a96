package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/vendortrack/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/vendortrack/internal/app"
	"github.com/MrJamesThe3rd/vendortrack/internal/config"
	"github.com/MrJamesThe3rd/vendortrack/internal/revenue"
	"github.com/MrJamesThe3rd/vendortrack/internal/user"
)

const recentLimit = 10

type model struct {
	app       *app.App
	exportDir string
	profile   user.Profile

	currentView View

	signInView   view.SignInModel
	createView   view.CreateEventModel
	liveView     view.LiveModel
	historyView  view.HistoryModel
	productsView view.ProductsModel
}

type View int

const (
	ViewMenu     View = 0
	ViewSignIn   View = 1
	ViewCreate   View = 2
	ViewLive     View = 3
	ViewHistory  View = 4
	ViewProducts View = 5
)

func initialModel(a *app.App, cfg *config.Config) model {
	m := model{
		app:         a,
		exportDir:   cfg.Export.Dir,
		currentView: ViewMenu,
	}

	profile, err := a.Users.Current()
	if errors.Is(err, user.ErrNoProfile) {
		m.currentView = ViewSignIn
		m.signInView = view.NewSignInModel(a.Users)
	} else {
		m.profile = profile
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewSignIn {
		return m.signInView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				if ev, ok := m.app.Events.Active(); ok {
					m.currentView = ViewLive
					m.liveView = view.NewLiveModel(m.app.Products, m.app.Events, ev)

					return m, m.liveView.Init()
				}

				m.currentView = ViewCreate
				m.createView = view.NewCreateEventModel(m.app.Events)

				return m, m.createView.Init()
			case "2":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.app.Events, m.app.Export, m.exportDir)

				return m, m.historyView.Init()
			case "3":
				m.currentView = ViewProducts
				m.productsView = view.NewProductsModel(m.app.Products, m.app.Import)

				return m, m.productsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.SignedInMsg:
		m.profile = msg.Profile
		m.currentView = ViewMenu

		return m, nil
	case view.EventStartedMsg:
		m.currentView = ViewLive
		m.liveView = view.NewLiveModel(m.app.Products, m.app.Events, msg.Event)

		return m, m.liveView.Init()
	}

	switch m.currentView {
	case ViewSignIn:
		var newModel tea.Model
		newModel, cmd = m.signInView.Update(msg)
		m.signInView = newModel.(view.SignInModel)
	case ViewCreate:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.CreateEventModel)
	case ViewLive:
		var newModel tea.Model
		newModel, cmd = m.liveView.Update(msg)
		m.liveView = newModel.(view.LiveModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	case ViewProducts:
		var newModel tea.Model
		newModel, cmd = m.productsView.Update(msg)
		m.productsView = newModel.(view.ProductsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return m.menuView()
	case ViewSignIn:
		return m.signInView.View()
	case ViewCreate:
		return m.createView.View()
	case ViewLive:
		return m.liveView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewProducts:
		return m.productsView.View()
	}

	return "Unknown View"
}

func (m model) menuView() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Vendor Track, signed in as %s\n\n", m.profile.Name)
	fmt.Fprintf(&b, "Lifetime revenue: %s\n\n", view.FormatMoney(revenue.Lifetime(m.app.Events.History())))

	start := "1. New Event"
	if ev, ok := m.app.Events.Active(); ok {
		start = fmt.Sprintf("1. Continue Live Sales (%s, %s)", ev.Location, ev.Date)
	}

	b.WriteString(start + "\n" +
		"2. History\n" +
		"3. Products\n\n" +
		"q. Quit\n")

	recent := m.app.Events.Recent(recentLimit)
	if len(recent) > 0 {
		b.WriteString("\nRecent events\n")

		for _, ev := range recent {
			summary := revenue.Compute(&ev)
			fmt.Fprintf(&b, "  %-10s %-24s %6s  %s\n", ev.Date, ev.Location, ev.Status, view.FormatMoney(summary.Net))
		}
	}

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(a, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
