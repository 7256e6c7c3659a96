package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/export"
	"github.com/MrJamesThe3rd/vendortrack/internal/revenue"
)

type historyState int

const (
	historyStateBrowse historyState = iota
	historyStateDetail
	historyStateExporting
)

// HistoryModel lists past events newest first, shows their breakdown and
// writes exports to disk.
type HistoryModel struct {
	CommonModel
	events    *event.Service
	exporter  *export.Service
	exportDir string

	state   historyState
	table   table.Model
	list    []event.Event
	spinner spinner.Model
	status  string
	err     error
}

func NewHistoryModel(events *event.Service, exporter *export.Service, exportDir string) HistoryModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Location", Width: 24},
		{Title: "Status", Width: 8},
		{Title: "Items", Width: 6},
		{Title: "Gross", Width: 11},
		{Title: "Net", Width: 11},
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentColor)

	m := HistoryModel{
		events:    events,
		exporter:  exporter,
		exportDir: exportDir,
		table:     newTable(columns, 15),
		spinner:   s,
	}
	m.refreshTable()

	return m
}

func (m HistoryModel) Title() string { return "History" }

func (m HistoryModel) ShortHelp() string {
	if m.state == historyStateDetail {
		return "x: export CSV | X: export Excel | Esc: back"
	}

	return "Enter: details | x: export CSV | X: export Excel | Esc: back"
}

func (m HistoryModel) Init() tea.Cmd {
	return nil
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.state = msg.returnTo
		m.err = msg.err

		if msg.err == nil {
			m.status = "Saved " + msg.path
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	switch m.state {
	case historyStateExporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case historyStateDetail:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = historyStateBrowse
				m.table.Focus()

				return m, nil
			case "x":
				return m.startExport(export.FormatCSV)
			case "X":
				return m.startExport(export.FormatXLSX)
			}
		}

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			if _, ok := m.selected(); ok {
				m.state = historyStateDetail
				m.status = ""
				m.table.Blur()
			}

			return m, nil
		case "x":
			return m.startExport(export.FormatCSV)
		case "X":
			return m.startExport(export.FormatXLSX)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) startExport(format export.Format) (tea.Model, tea.Cmd) {
	ev, ok := m.selected()
	if !ok {
		return m, nil
	}

	returnTo := m.state
	m.state = historyStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.exportCmd(ev.ID, format, returnTo))
}

func (m HistoryModel) selected() (event.Event, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return event.Event{}, false
	}

	return m.list[idx], true
}

func (m *HistoryModel) refreshTable() {
	m.list = m.events.History()

	rows := make([]table.Row, 0, len(m.list))
	for _, ev := range m.list {
		s := revenue.Compute(&ev)
		rows = append(rows, table.Row{
			ev.Date,
			ev.Location,
			string(ev.Status),
			fmt.Sprint(s.Items),
			FormatMoney(s.Gross),
			FormatMoney(s.Net),
		})
	}

	m.table.SetRows(rows)
}

func (m HistoryModel) View() string {
	var content string

	switch m.state {
	case historyStateExporting:
		content = fmt.Sprintf("%s Writing export to %s...", m.spinner.View(), m.exportDir)
	case historyStateDetail:
		ev, _ := m.selected()
		content = m.detailView(ev)
	default:
		if len(m.list) == 0 {
			content = "No events yet."
		} else {
			content = boxed(m.table.View())
		}
	}

	if m.err != nil {
		content = errorText(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	} else if m.status != "" {
		content = okText(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m HistoryModel) detailView(ev event.Event) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(ev.Location))
	sb.WriteString(fmt.Sprintf("  %s  [%s]\n", ev.Date, ev.Status))

	if ev.Notes != "" {
		sb.WriteString(lipgloss.NewStyle().Faint(true).Render(ev.Notes) + "\n")
	}

	sb.WriteString("\n")

	for _, e := range ev.LineItems.ByTotal() {
		sb.WriteString(fmt.Sprintf("%-24s %5s %9s %10s\n",
			e.Name, FormatQty(e.Qty), FormatMoney(e.Price), FormatMoney(e.Total())))
	}

	s := revenue.Compute(&ev)
	lines := []struct {
		label string
		value string
	}{
		{"Square", FormatMoney(s.Square)},
		{"Cash App", FormatMoney(s.CashApp)},
		{"Cash sales", FormatMoney(s.Cash)},
		{"Gross", FormatMoney(s.Gross)},
		{"Expenses", FormatMoney(s.Expenses)},
		{"Net profit", activeStyle(FormatMoney(s.Net))},
	}

	sb.WriteString("\n")

	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("%-12s %s\n", l.label, l.value))
	}

	return boxed(lipgloss.NewStyle().Padding(0, 1).Render(sb.String()))
}

type exportDoneMsg struct {
	path     string
	returnTo historyState
	err      error
}

func (m HistoryModel) exportCmd(id string, format export.Format, returnTo historyState) tea.Cmd {
	return func() tea.Msg {
		path, err := m.exporter.Save(id, format, m.exportDir)

		return exportDoneMsg{path: path, returnTo: returnTo, err: err}
	}
}
