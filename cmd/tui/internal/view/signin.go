package view

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vendortrack/internal/user"
)

// SignedInMsg reports the operator's display name.
type SignedInMsg struct {
	Profile user.Profile
}

// SignInModel asks for a display name on first run.
type SignInModel struct {
	CommonModel
	users *user.Service

	form *huh.Form
	name *string
	err  error
}

func NewSignInModel(users *user.Service) SignInModel {
	name := new(string)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("What should we call you?").
				Value(name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("enter a name")
					}

					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	return SignInModel{users: users, form: form, name: name}
}

func (m SignInModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SignInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	ctx, cancel := StoreCtx()
	defer cancel()

	p, err := m.users.SignIn(ctx, *m.name)
	if err != nil {
		m.err = err
		return m, nil
	}

	return m, func() tea.Msg { return SignedInMsg{Profile: p} }
}

func (m SignInModel) View() string {
	body := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("VendorTrack") +
		"\n\n" + m.form.View()

	if m.err != nil {
		body += "\n" + errorText(m.err.Error())
	}

	return lipgloss.NewStyle().Padding(2).Render(body)
}
