package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/revenue"
)

type liveState int

const (
	liveStateBrowse liveState = iota
	liveStateSearch
	liveStateAdjust
	liveStateEndDay
)

// adjustValues backs the quantity form.
type adjustValues struct {
	productID string
	name      string
	qty       string
}

// LiveModel is the selling screen: tap products as they sell, undo the last
// tap, fix quantities by hand and close the day.
type LiveModel struct {
	CommonModel
	products *catalog.Service
	events   *event.Service

	state   liveState
	ev      event.Event
	table   table.Model
	visible []catalog.Product
	search  textinput.Model
	catIdx  int

	form   *huh.Form
	adjust *adjustValues
	endDay *event.Reconciliation

	status string
	err    error
}

func NewLiveModel(products *catalog.Service, events *event.Service, ev event.Event) LiveModel {
	columns := []table.Column{
		{Title: "Product", Width: 24},
		{Title: "Category", Width: 10},
		{Title: "Price", Width: 10},
		{Title: "Sold", Width: 6},
	}

	search := textinput.New()
	search.Placeholder = "search products"
	search.Prompt = "/ "
	search.CharLimit = 40

	m := LiveModel{
		products: products,
		events:   events,
		ev:       ev,
		table:    newTable(columns, 15),
		search:   search,
	}
	m.refreshTable()

	return m
}

func (m LiveModel) Title() string { return "Live Sales" }

func (m LiveModel) ShortHelp() string {
	switch m.state {
	case liveStateSearch:
		return "Type to filter | Enter/Esc: done"
	case liveStateAdjust, liveStateEndDay:
		return "Navigate form | Esc: cancel"
	}

	return "Enter: sell | u: undo | e: set qty | c: category | /: search | f: end day | Esc: back"
}

func (m LiveModel) Init() tea.Cmd {
	return nil
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case liveUpdatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.ev = msg.ev
		m.status = msg.note
		m.refreshTable()

		if !m.ev.IsDraft() {
			return m, Back
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}

	switch m.state {
	case liveStateSearch:
		return m.updateSearch(msg)
	case liveStateAdjust:
		return m.updateAdjust(msg)
	case liveStateEndDay:
		return m.updateEndDay(msg)
	}

	return m.updateBrowse(msg)
}

func (m LiveModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter", " ":
			if p, ok := m.selected(); ok {
				return m, m.tapCmd(p)
			}

			return m, nil
		case "u":
			return m, m.undoCmd()
		case "c":
			m.catIdx = (m.catIdx + 1) % len(catalog.Categories)
			m.refreshTable()

			return m, nil
		case "/":
			m.state = liveStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "e":
			return m.enterAdjust()
		case "f":
			return m.enterEndDay()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LiveModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.state = liveStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshTable()

	return m, cmd
}

func (m LiveModel) enterAdjust() (tea.Model, tea.Cmd) {
	p, ok := m.selected()
	if !ok {
		return m, nil
	}

	li, _ := m.ev.LineItems.Get(p.ID)
	m.adjust = &adjustValues{productID: p.ID, name: p.Name, qty: fmt.Sprint(li.Qty)}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("qty").
				Title("Quantity sold").
				Description("0 removes the product from this event").
				Value(&m.adjust.qty).
				Validate(func(s string) error {
					if _, err := parseQty(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("enter a whole number")
					}

					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = liveStateAdjust
	m.table.Blur()

	return m, m.form.Init()
}

func (m LiveModel) updateAdjust(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	qty, _ := parseQty(strings.TrimSpace(m.adjust.qty))
	adjust := *m.adjust

	return m.closeForm(), m.setQuantityCmd(adjust.productID, adjust.name, qty)
}

func (m LiveModel) enterEndDay() (tea.Model, tea.Cmd) {
	rec := revenue.Prefill(m.ev)
	m.endDay = &rec

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("square").Title("Square total").Placeholder("0.00").Value(&m.endDay.SquareTotal),
			huh.NewInput().Key("cash_app").Title("Cash App total").Placeholder("0.00").Value(&m.endDay.CashAppTotal),
			huh.NewInput().Key("cash").Title("Cash revenue").
				Description("Counted cash; defaults to tapped sales").
				Value(&m.endDay.CashRevenue),
			huh.NewInput().Key("vendor_fee").Title("Vendor fee").Placeholder("0.00").Value(&m.endDay.VendorFee),
			huh.NewInput().Key("other").Title("Other expenses").Placeholder("0.00").Value(&m.endDay.OtherExpenses),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = liveStateEndDay
	m.table.Blur()

	return m, m.form.Init()
}

func (m LiveModel) updateEndDay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	rec := *m.endDay

	return m.closeForm(), m.finalizeCmd(rec)
}

func (m LiveModel) closeForm() LiveModel {
	m.state = liveStateBrowse
	m.form = nil
	m.adjust = nil
	m.endDay = nil
	m.table.Focus()

	return m
}

func (m LiveModel) selected() (catalog.Product, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return catalog.Product{}, false
	}

	return m.visible[idx], true
}

func (m *LiveModel) refreshTable() {
	m.visible = m.products.Search(m.search.Value(), catalog.Categories[m.catIdx])

	rows := make([]table.Row, 0, len(m.visible))
	for _, p := range m.visible {
		sold := ""
		if li, ok := m.ev.LineItems.Get(p.ID); ok {
			sold = fmt.Sprint(li.Qty)
		}

		rows = append(rows, table.Row{p.Name, p.Category, FormatMoney(p.Price), sold})
	}

	m.table.SetRows(rows)
}

func (m LiveModel) View() string {
	header := fmt.Sprintf("%s  %s  ·  Category: %s",
		lipgloss.NewStyle().Bold(true).Render(m.ev.Location),
		m.ev.Date,
		activeStyle(catalog.Categories[m.catIdx]),
	)

	left := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		m.search.View(),
		boxed(m.table.View()),
	)

	var right string

	switch {
	case m.state == liveStateAdjust && m.form != nil:
		right = panel("Set quantity: "+m.adjust.name, m.form.View())
	case m.state == liveStateEndDay && m.form != nil:
		right = panel("End of day", m.form.View()+"\n\n"+m.previewView())
	default:
		right = panel("Sales", m.salesView())
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.err != nil {
		content = errorText(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	} else if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m LiveModel) salesView() string {
	var sb strings.Builder

	entries := m.ev.LineItems.Entries()
	if len(entries) == 0 {
		sb.WriteString("No sales yet.\n")
	}

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%-18s %5s %10s\n", e.Name, FormatQty(e.Qty), FormatMoney(e.Total())))
	}

	s := revenue.Compute(&m.ev)
	sb.WriteString(fmt.Sprintf("\nItems: %d\nCash sales: %s\n", s.Items, activeStyle(FormatMoney(s.Cash))))

	if m.ev.LastAction != nil {
		if li, ok := m.ev.LineItems.Get(m.ev.LastAction.ProductID); ok {
			sb.WriteString(fmt.Sprintf("\nu: undo last %s", li.Name))
		} else if p, ok := m.products.Lookup(m.ev.LastAction.ProductID); ok {
			sb.WriteString(fmt.Sprintf("\nu: undo last %s", p.Name))
		}
	}

	return sb.String()
}

// previewView shows the totals the event would close with.
func (m LiveModel) previewView() string {
	preview, err := m.events.Preview(m.ev.ID, *m.endDay)
	if err != nil {
		return errorText(err.Error())
	}

	s := revenue.Compute(&preview)

	return fmt.Sprintf("Gross: %s\nExpenses: %s\nNet: %s",
		FormatMoney(s.Gross), FormatMoney(s.Expenses), activeStyle(FormatMoney(s.Net)))
}

// Messages

type liveUpdatedMsg struct {
	ev   event.Event
	note string
	err  error
}

func (m LiveModel) tapCmd(p catalog.Product) tea.Cmd {
	id := m.ev.ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		ev, err := m.events.Tap(ctx, id, p.ID)

		return liveUpdatedMsg{ev: ev, note: "Sold " + p.Name, err: err}
	}
}

func (m LiveModel) undoCmd() tea.Cmd {
	id := m.ev.ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		ev, err := m.events.Undo(ctx, id)

		return liveUpdatedMsg{ev: ev, note: "Undone", err: err}
	}
}

func (m LiveModel) setQuantityCmd(productID, name string, qty int) tea.Cmd {
	id := m.ev.ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		ev, err := m.events.SetQuantity(ctx, id, productID, qty)

		return liveUpdatedMsg{ev: ev, note: fmt.Sprintf("%s set to %d", name, qty), err: err}
	}
}

func (m LiveModel) finalizeCmd(rec event.Reconciliation) tea.Cmd {
	id := m.ev.ID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		ev, err := m.events.Finalize(ctx, id, rec)

		return liveUpdatedMsg{ev: ev, note: "Day closed", err: err}
	}
}
