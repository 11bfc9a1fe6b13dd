package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/evertras/bubble-table/table"

	serialdevice "github.com/seriallab/go-serialdevice"
	"github.com/seriallab/go-serialdevice/internal/tui/styles"
)

const (
	columnKeyPort     = "port"
	columnKeyIdentity = "identity"
	columnKeySerial   = "serial"
	columnKeyProduct  = "product"
)

// PortsTable renders the current port listing as a navigable table.
type PortsTable struct {
	table table.Model
}

func NewPortsTable() *PortsTable {
	t := table.New([]table.Column{
		table.NewColumn(columnKeyPort, "Port", 24),
		table.NewColumn(columnKeyIdentity, "VID:PID", 10),
		table.NewColumn(columnKeySerial, "Serial", 16),
		table.NewFlexColumn(columnKeyProduct, "Product", 1),
	}).
		WithBaseStyle(styles.TableBaseStyle).
		HeaderStyle(styles.TableHeaderStyle).
		SortByAsc(columnKeyPort).
		Focused(true)

	return &PortsTable{table: t}
}

// SetPorts replaces the table contents. Rows for which isNew reports true
// are highlighted.
func (pt *PortsTable) SetPorts(ports []serialdevice.PortDescriptor, isNew func(name string) bool) {
	rows := make([]table.Row, 0, len(ports))
	for _, p := range ports {
		identity := ""
		if p.VendorID != "" || p.ProductID != "" {
			identity = p.VendorID + ":" + p.ProductID
		}
		product := p.Product
		if product == "" {
			product = p.TypeDescription()
		}

		row := table.NewRow(table.RowData{
			columnKeyPort:     p.Name,
			columnKeyIdentity: identity,
			columnKeySerial:   p.SerialNumber,
			columnKeyProduct:  product,
		})
		if isNew != nil && isNew(p.Name) {
			row = row.WithStyle(styles.NewPortStyle)
		}
		rows = append(rows, row)
	}
	pt.table = pt.table.WithRows(rows)
}

// SetSize adjusts the table to the available area.
func (pt *PortsTable) SetSize(width, height int) {
	pageSize := height - 6
	if pageSize < 3 {
		pageSize = 3
	}
	pt.table = pt.table.WithTargetWidth(width).WithPageSize(pageSize)
}

// Update forwards navigation messages to the table.
func (pt *PortsTable) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	pt.table, cmd = pt.table.Update(msg)
	return cmd
}

func (pt *PortsTable) View() string {
	return pt.table.View()
}
