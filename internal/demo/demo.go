// Package demo generates sample invoice exports in the column layouts of
// common accounting tools, for exercising the mapping engine without real
// customer data.
package demo

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

var companyNames = []string{
	"Acme Corp", "TechStart Inc", "Global Systems LLC", "Digital Solutions",
	"CloudNine Services", "DataDrive Co", "InnovateTech", "SmartBiz Solutions",
	"CyberShield Security", "NetWorks Pro", "CodeCraft Studios", "ByteSize IT",
	"Quantum Computing Ltd", "FutureTech Inc", "Alpha Systems", "Beta Software",
	"Gamma Industries", "Delta Consulting", "Epsilon Enterprises", "Zeta Holdings",
}

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David",
	"Emily", "Robert", "Lisa", "James", "Jennifer",
}

type service struct {
	name    string
	minRate float64
	maxRate float64
}

var services = []service{
	{"Network Setup", 150.00, 500.00},
	{"Server Maintenance", 100.00, 300.00},
	{"Cloud Migration", 200.00, 1000.00},
	{"Security Audit", 250.00, 750.00},
	{"Software Installation", 75.00, 200.00},
	{"Data Backup Service", 50.00, 150.00},
	{"Help Desk Support", 45.00, 120.00},
	{"Hardware Repair", 80.00, 350.00},
	{"VoIP Setup", 125.00, 400.00},
	{"Firewall Configuration", 175.00, 450.00},
	{"Email Migration", 100.00, 300.00},
	{"Antivirus Setup", 50.00, 100.00},
	{"Wireless Network Setup", 150.00, 400.00},
	{"Database Administration", 200.00, 600.00},
	{"Custom Development", 150.00, 500.00},
}

type address struct {
	street, city, state, zip string
}

var addresses = []address{
	{"123 Main St", "New York", "NY", "10001"},
	{"456 Oak Ave", "Los Angeles", "CA", "90001"},
	{"789 Elm St", "Chicago", "IL", "60601"},
	{"321 Pine Rd", "Houston", "TX", "77001"},
	{"654 Maple Dr", "Phoenix", "AZ", "85001"},
	{"987 Cedar Ln", "Philadelphia", "PA", "19101"},
	{"147 Birch Blvd", "San Antonio", "TX", "78201"},
	{"258 Willow Way", "San Diego", "CA", "92101"},
	{"369 Spruce St", "Dallas", "TX", "75201"},
	{"741 Ash Ave", "San Jose", "CA", "95101"},
	{"852 Cherry Ct", "Austin", "TX", "78701"},
	{"963 Walnut Pl", "Jacksonville", "FL", "32201"},
	{"159 Hickory Rd", "Fort Worth", "TX", "76101"},
	{"267 Poplar Dr", "Columbus", "OH", "43201"},
	{"378 Sycamore St", "Charlotte", "NC", "28201"},
}

var taxRates = []float64{0, 4.0, 5.5, 6.0, 6.25, 7.0, 7.5, 8.0}

// column pairs a logical invoice attribute with the header the tool exports.
type column struct {
	field  string
	header string
}

// Format describes one accounting tool's CSV layout.
type Format struct {
	Key        string
	Name       string
	columns    []column
	dateLayout string
}

// formats lists the supported layouts in a stable order.
var formats = []Format{
	{
		Key: "quickbooks_online", Name: "QuickBooks Online", dateLayout: "01/02/2006",
		columns: []column{
			{"invoice_number", "Invoice #"}, {"invoice_date", "Date"},
			{"due_date", "Due Date"}, {"client_name", "Customer"},
			{"client_email", "Customer Email"}, {"client_address", "Billing Address"},
			{"description", "Product/Service"}, {"quantity", "Qty"},
			{"rate", "Rate"}, {"amount", "Amount"},
			{"tax_rate", "Tax Rate"}, {"tax_amount", "Tax"},
			{"total", "Total"}, {"notes", "Message"},
		},
	},
	{
		Key: "quickbooks_desktop", Name: "QuickBooks Desktop", dateLayout: "01/02/2006",
		columns: []column{
			{"invoice_number", "Ref Number"}, {"invoice_date", "Trans Date"},
			{"due_date", "Terms Date"}, {"client_name", "Customer:Company"},
			{"client_email", "Customer:Email"}, {"client_address", "Bill Addr Line 1"},
			{"description", "Item Description"}, {"quantity", "Quantity"},
			{"rate", "Sales Price"}, {"amount", "Line Total"},
			{"tax_rate", "Sales Tax Rate"}, {"tax_amount", "Sales Tax"},
			{"total", "Balance Due"}, {"notes", "Memo"},
		},
	},
	{
		Key: "xero", Name: "Xero", dateLayout: "2006-01-02",
		columns: []column{
			{"invoice_number", "Invoice ID"}, {"invoice_date", "Date Created"},
			{"due_date", "Due Date"}, {"client_name", "Contact Name"},
			{"client_email", "Contact Email"}, {"client_address", "Address"},
			{"description", "Description"}, {"quantity", "Quantity"},
			{"rate", "Unit Cost"}, {"amount", "Line Amount"},
			{"tax_rate", "Tax Rate"}, {"tax_amount", "Tax Amount"},
			{"total", "Total"}, {"notes", "Notes"},
		},
	},
	{
		Key: "harvest", Name: "Harvest", dateLayout: "January 2, 2006",
		columns: []column{
			{"invoice_number", "Invoice Code"}, {"invoice_date", "Issued Date"},
			{"due_date", "Due By"}, {"client_name", "Company"},
			{"client_email", "Email"}, {"client_address", "Street Address"},
			{"description", "Task Name"}, {"quantity", "Hours"},
			{"rate", "Hourly Rate"}, {"amount", "Amount"},
			{"tax_rate", "Tax %"}, {"tax_amount", "Tax"},
			{"total", "Grand Total"}, {"notes", "Notes"},
		},
	},
	{
		Key: "freshbooks", Name: "FreshBooks", dateLayout: "02/01/2006",
		columns: []column{
			{"invoice_number", "Invoice Number"}, {"invoice_date", "Issue Date"},
			{"due_date", "Payment Due"}, {"client_name", "Client Name"},
			{"client_email", "Client Email"}, {"client_address", "Client Address"},
			{"description", "Item"}, {"quantity", "Units"},
			{"rate", "Price"}, {"amount", "Line Amount"},
			{"tax_rate", "Tax Percent"}, {"tax_amount", "Tax Amount"},
			{"total", "Amount Due"}, {"notes", "Comments"},
		},
	},
	{
		Key: "wave", Name: "Wave", dateLayout: "01-02-2006",
		columns: []column{
			{"invoice_number", "Invoice Identifier"}, {"invoice_date", "Created Date"},
			{"due_date", "Payment Date"}, {"client_name", "Business Name"},
			{"client_email", "Primary Email"}, {"client_address", "Billing Address"},
			{"description", "Service Description"}, {"quantity", "Qty"},
			{"rate", "Unit Price"}, {"amount", "Extended Amount"},
			{"tax_rate", "Tax Rate %"}, {"tax_amount", "Tax Total"},
			{"total", "Invoice Total"}, {"notes", "Customer Message"},
		},
	},
	{
		Key: "generic", Name: "Generic CSV", dateLayout: "2006-01-02",
		columns: []column{
			{"invoice_number", "Invoice No"}, {"invoice_date", "Invoice Date"},
			{"due_date", "Due Date"}, {"client_name", "Client"},
			{"client_email", "Email"}, {"client_address", "Address"},
			{"description", "Description"}, {"quantity", "Qty"},
			{"rate", "Rate"}, {"amount", "Amount"},
			{"tax_rate", "Tax Rate"}, {"tax_amount", "Tax"},
			{"total", "Total"}, {"notes", "Notes"},
		},
	},
}

// FormatInfo identifies one available layout.
type FormatInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Formats returns the available layouts.
func Formats() []FormatInfo {
	out := make([]FormatInfo, 0, len(formats))
	for _, f := range formats {
		out = append(out, FormatInfo{Key: f.Key, Name: f.Name})
	}
	return out
}

func formatByKey(key string) Format {
	for _, f := range formats {
		if f.Key == key {
			return f
		}
	}
	// Unknown keys fall back to the first layout.
	return formats[0]
}

// Generator produces randomized sample invoice data. Seeded generators are
// deterministic.
type Generator struct {
	rnd *rand.Rand
	now time.Time
}

// NewGenerator creates a Generator from a seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewPCG(seed, seed)),
		now: time.Now(),
	}
}

// WithNow fixes the clock the generator dates invoices against.
func (g *Generator) WithNow(now time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) pickAddress() address {
	return addresses[g.rnd.IntN(len(addresses))]
}

func (g *Generator) email(company string) string {
	domain := strings.ToLower(strings.ReplaceAll(company, " ", ""))
	domain = strings.ReplaceAll(domain, ".", "")
	if len(domain) > 10 {
		domain = domain[:10]
	}
	first := strings.ToLower(firstNames[g.rnd.IntN(len(firstNames))])
	return first + "@" + domain + ".com"
}

type lineItem struct {
	description string
	quantity    float64
	rate        float64
	amount      float64
}

func (g *Generator) lineItems(n int) []lineItem {
	items := make([]lineItem, 0, n)
	for range n {
		svc := services[g.rnd.IntN(len(services))]
		quantity := round1(1 + g.rnd.Float64()*19)
		rate := round2(svc.minRate + g.rnd.Float64()*(svc.maxRate-svc.minRate))
		items = append(items, lineItem{
			description: svc.name,
			quantity:    quantity,
			rate:        rate,
			amount:      round2(quantity * rate),
		})
	}
	return items
}

// invoiceRows generates the CSV rows for one invoice. Invoice-level values
// appear on the first row only, matching how most tools export multi-line
// invoices.
func (g *Generator) invoiceRows(f Format, number int) [][]string {
	company := companyNames[g.rnd.IntN(len(companyNames))]
	email := g.email(company)
	addr := g.pickAddress()
	fullAddress := fmt.Sprintf("%s, %s, %s %s", addr.street, addr.city, addr.state, addr.zip)

	invoiceDate := g.now.AddDate(0, 0, -(1 + g.rnd.IntN(30)))
	dueDate := invoiceDate.AddDate(0, 0, 15+g.rnd.IntN(31))

	items := g.lineItems(1 + g.rnd.IntN(5))

	var subtotal float64
	for _, item := range items {
		subtotal += item.amount
	}
	taxRate := taxRates[g.rnd.IntN(len(taxRates))]
	taxAmount := round2(subtotal * taxRate / 100)
	total := round2(subtotal + taxAmount)

	rows := make([][]string, 0, len(items))
	for i, item := range items {
		values := map[string]string{
			"invoice_number": fmt.Sprintf("INV-%04d", number),
			"invoice_date":   invoiceDate.Format(f.dateLayout),
			"due_date":       dueDate.Format(f.dateLayout),
			"client_name":    company,
			"client_email":   email,
			"client_address": fullAddress,
			"description":    item.description,
			"quantity":       trimFloat(item.quantity),
			"rate":           fmt.Sprintf("$%.2f", item.rate),
			"amount":         fmt.Sprintf("$%.2f", item.amount),
		}
		if i == 0 {
			values["tax_rate"] = fmt.Sprintf("%v%%", taxRate)
			values["tax_amount"] = fmt.Sprintf("$%.2f", taxAmount)
			values["total"] = fmt.Sprintf("$%.2f", total)
			values["notes"] = "Thank you for your business!"
		}

		row := make([]string, len(f.columns))
		for j, col := range f.columns {
			row[j] = values[col.field]
		}
		rows = append(rows, row)
	}
	return rows
}

// CSV generates a sample export with numInvoices invoices in the given
// layout. Returns the CSV content and the layout's display name.
func (g *Generator) CSV(formatKey string, numInvoices int) (string, string) {
	f := formatByKey(formatKey)

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	headers := make([]string, len(f.columns))
	for i, col := range f.columns {
		headers[i] = col.header
	}
	w.Write(headers)

	for i := range numInvoices {
		for _, row := range g.invoiceRows(f, 1000+i) {
			w.Write(row)
		}
	}
	w.Flush()

	return buf.String(), f.Name
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
