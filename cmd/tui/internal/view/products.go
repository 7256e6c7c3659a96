package view

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
	"github.com/MrJamesThe3rd/vendortrack/internal/importer"
)

type productsState int

const (
	productsStateBrowse productsState = iota
	productsStateEdit
	productsStateImport
)

// productValues backs the product form.
type productValues struct {
	id       string
	name     string
	price    string
	category string
	cost     string
	active   bool
}

func (v productValues) toProduct() (catalog.Product, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(v.price))
	if err != nil {
		return catalog.Product{}, fmt.Errorf("%w: price is not a number", catalog.ErrInvalidProduct)
	}

	cost := decimal.Zero
	if s := strings.TrimSpace(v.cost); s != "" {
		if cost, err = decimal.NewFromString(s); err != nil {
			return catalog.Product{}, fmt.Errorf("%w: cost is not a number", catalog.ErrInvalidProduct)
		}
	}

	return catalog.Product{
		ID:       v.id,
		Name:     v.name,
		Price:    price,
		Category: v.category,
		Cost:     cost,
		Active:   v.active,
	}, nil
}

// ProductsModel manages the catalog.
type ProductsModel struct {
	CommonModel
	products *catalog.Service
	importer *importer.Service

	state   productsState
	table   table.Model
	list    []catalog.Product
	form    *huh.Form
	values  *productValues
	srcPath *string
	status  string
	err     error
}

func NewProductsModel(products *catalog.Service, imp *importer.Service) ProductsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Category", Width: 10},
		{Title: "Price", Width: 10},
		{Title: "Cost", Width: 10},
		{Title: "Active", Width: 7},
	}

	m := ProductsModel{
		products: products,
		importer: imp,
		table:    newTable(columns, 15),
	}
	m.refreshTable()

	return m
}

func (m ProductsModel) Title() string { return "Products" }

func (m ProductsModel) ShortHelp() string {
	if m.state != productsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "a: add | e: edit | t: toggle active | d: delete | i: import CSV | Esc: back"
}

func (m ProductsModel) Init() tea.Cmd {
	return nil
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsSavedMsg:
		m.err = msg.err
		m.status = msg.note
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	switch m.state {
	case productsStateEdit:
		return m.updateEdit(msg)
	case productsStateImport:
		return m.updateImport(msg)
	}

	return m.updateBrowse(msg)
}

func (m ProductsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.enterEdit(productValues{category: "Food", active: true})
		case "e":
			if p, ok := m.selected(); ok {
				return m.enterEdit(productValues{
					id:       p.ID,
					name:     p.Name,
					price:    p.Price.StringFixed(2),
					category: p.Category,
					cost:     p.Cost.StringFixed(2),
					active:   p.Active,
				})
			}

			return m, nil
		case "t":
			if p, ok := m.selected(); ok {
				p.Active = !p.Active
				return m, m.upsertCmd(p)
			}

			return m, nil
		case "d":
			if p, ok := m.selected(); ok {
				return m, m.deleteCmd(p)
			}

			return m, nil
		case "i":
			return m.enterImport()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProductsModel) enterEdit(v productValues) (tea.Model, tea.Cmd) {
	m.values = &v

	categories := make([]string, 0, len(catalog.Categories)-1)
	for _, c := range catalog.Categories {
		if c != catalog.CategoryAll {
			categories = append(categories, c)
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.values.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}

					return nil
				}),
			huh.NewInput().
				Key("price").
				Title("Price").
				Placeholder("0.00").
				Value(&m.values.price).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !d.IsPositive() {
						return errors.New("price must be greater than zero")
					}

					return nil
				}),
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(categories...)...).
				Value(&m.values.category),
			huh.NewInput().
				Key("cost").
				Title("Unit cost").
				Placeholder("0.00").
				Value(&m.values.cost),
			huh.NewConfirm().
				Key("active").
				Title("Show on the live screen?").
				Value(&m.values.active),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = productsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	p, err := m.values.toProduct()
	m = m.closeForm()

	if err != nil {
		m.err = err
		return m, nil
	}

	return m, m.upsertCmd(p)
}

func (m ProductsModel) enterImport() (tea.Model, tea.Cmd) {
	m.srcPath = new(string)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("CSV file").
				Description("Columns: name, price, category, cost, active").
				Placeholder("./menu.csv").
				Value(m.srcPath),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = productsStateImport
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) updateImport(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	path := strings.TrimSpace(*m.srcPath)

	return m.closeForm(), m.importCmd(path)
}

func (m ProductsModel) closeForm() ProductsModel {
	m.state = productsStateBrowse
	m.form = nil
	m.values = nil
	m.srcPath = nil
	m.table.Focus()

	return m
}

func (m ProductsModel) selected() (catalog.Product, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return catalog.Product{}, false
	}

	return m.list[idx], true
}

func (m *ProductsModel) refreshTable() {
	m.list = append(m.products.Active(), m.products.Inactive()...)

	rows := make([]table.Row, 0, len(m.list))
	for _, p := range m.list {
		active := "yes"
		if !p.Active {
			active = "no"
		}

		rows = append(rows, table.Row{p.Name, p.Category, FormatMoney(p.Price), FormatMoney(p.Cost), active})
	}

	m.table.SetRows(rows)
}

func (m ProductsModel) View() string {
	content := boxed(m.table.View())
	if len(m.list) == 0 {
		content = "No products yet. Press a to add one or i to import a CSV."
	}

	if m.form != nil {
		title := "Import products"
		if m.state == productsStateEdit {
			title = "New product"
			if m.values.id != "" {
				title = "Edit product"
			}
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(title, m.form.View()))
	}

	if m.err != nil {
		content = errorText(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	} else if m.status != "" {
		content = okText(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type productsSavedMsg struct {
	note string
	err  error
}

func (m ProductsModel) upsertCmd(p catalog.Product) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		saved, err := m.products.Upsert(ctx, p)
		if err != nil {
			return productsSavedMsg{err: err}
		}

		return productsSavedMsg{note: "Saved " + saved.Name}
	}
}

func (m ProductsModel) deleteCmd(p catalog.Product) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.products.Delete(ctx, p.ID); err != nil {
			return productsSavedMsg{err: err}
		}

		return productsSavedMsg{note: "Deleted " + p.Name}
	}
}

func (m ProductsModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return productsSavedMsg{err: fmt.Errorf("opening file: %w", err)}
		}
		defer f.Close()

		parsed, err := m.importer.Import(importer.FormatCSV, f)
		if err != nil {
			return productsSavedMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		saved, err := m.products.ImportBatch(ctx, parsed)
		if err != nil {
			return productsSavedMsg{err: err}
		}

		return productsSavedMsg{note: fmt.Sprintf("Imported %d products", len(saved))}
	}
}
