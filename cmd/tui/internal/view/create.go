package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
)

// EventStartedMsg reports a newly created draft event.
type EventStartedMsg struct {
	Event event.Event
}

// CreateEventModel collects the details of a new selling day.
type CreateEventModel struct {
	CommonModel
	events *event.Service

	form   *huh.Form
	fields *event.Fields
	err    error
}

func NewCreateEventModel(events *event.Service) CreateEventModel {
	fields := &event.Fields{Date: time.Now().Format(time.DateOnly)}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("location").
				Title("Location").
				Placeholder("Farmers market, food truck rally...").
				Value(&fields.Location).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("location is required")
					}

					return nil
				}),
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&fields.Date).
				Validate(func(s string) error {
					if s = strings.TrimSpace(s); s == "" {
						return nil
					}

					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return errors.New("use YYYY-MM-DD")
					}

					return nil
				}),
			huh.NewText().
				Key("notes").
				Title("Notes").
				Lines(3).
				Value(&fields.Notes),
		),
	).WithWidth(50).WithShowHelp(false)

	return CreateEventModel{events: events, form: form, fields: fields}
}

func (m CreateEventModel) Title() string { return "New Event" }

func (m CreateEventModel) ShortHelp() string { return "Navigate form | Esc: cancel" }

func (m CreateEventModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m CreateEventModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createEventMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		ev := msg.ev

		return m, func() tea.Msg { return EventStartedMsg{Event: ev} }

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.err != nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd(*m.fields)
}

func (m CreateEventModel) View() string {
	if m.err != nil {
		msg := fmt.Sprintf("Error: %v", m.err)
		if errors.Is(m.err, event.ErrDraftExists) {
			msg = "Finish the open event before starting a new one."
		}

		return lipgloss.NewStyle().Padding(2).Render(errorText(msg) + "\n\nEsc: back")
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.NewStyle().Bold(true).Render("Start a selling day") + "\n\n" + m.form.View(),
	)
}

type createEventMsg struct {
	ev  event.Event
	err error
}

func (m CreateEventModel) createCmd(fields event.Fields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		ev, err := m.events.Create(ctx, fields)

		return createEventMsg{ev: ev, err: err}
	}
}
