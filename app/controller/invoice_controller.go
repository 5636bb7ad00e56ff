package controller

import (
	"html/template"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"pos-billing/gateway"
	"pos-billing/models"
	"pos-billing/utils"
)

// InvoiceController serves the printable invoice page. The PDF exporter
// navigates a headless browser to this page and prints it to A4.
type InvoiceController struct {
	gateway gateway.TransactionGatewayInterface
	tmpl    *template.Template
}

// NewInvoiceController creates a new InvoiceController
func NewInvoiceController(gw gateway.TransactionGatewayInterface) *InvoiceController {
	return &InvoiceController{
		gateway: gw,
		tmpl:    template.Must(template.New("invoice").Parse(invoiceTemplate)),
	}
}

type invoiceLine struct {
	Name     string
	Quantity decimal.Decimal
	Price    string
	Total    string
}

type invoicePage struct {
	Title         string
	TransactionNo int64
	Date          string
	CustomerName  string
	IsPaid        bool
	Lines         []invoiceLine
	Subtotal      string
	GrandTotal    string
}

// Render handles GET /billing/invoices/{id}/render?type=SALE
func (c *InvoiceController) Render(w http.ResponseWriter, r *http.Request, billingID string) {
	txType := models.TransactionType(r.URL.Query().Get("type"))
	if !txType.IsValid() {
		http.Error(w, "type must be SALE or ESTIMATE", http.StatusBadRequest)
		return
	}

	tx, err := c.gateway.GetTransaction(r.Context(), txType, billingID)
	if err != nil {
		log.Printf("❌ Render: failed to fetch transaction %s: %v", billingID, err)
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	title := "TAX INVOICE"
	if tx.Type == models.TransactionTypeEstimate {
		title = "ESTIMATE"
	}

	var subtotal int64
	lines := make([]invoiceLine, 0, len(tx.Items))
	for _, item := range tx.Items {
		subtotal += item.TotalPrice
		lines = append(lines, invoiceLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    utils.FormatRupees(item.Price),
			Total:    utils.FormatRupees(item.TotalPrice),
		})
	}

	page := invoicePage{
		Title:         title,
		TransactionNo: tx.TransactionNo,
		Date:          tx.CreatedAt.Format("02 Jan 2006"),
		CustomerName:  tx.CustomerName,
		IsPaid:        tx.IsPaid,
		Lines:         lines,
		Subtotal:      utils.FormatRupees(subtotal),
		GrandTotal:    utils.FormatRupees(subtotal),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.tmpl.Execute(w, page); err != nil {
		log.Printf("❌ Render: template execution failed: %v", err)
	}
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} #{{.TransactionNo}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
  h1 { font-size: 22px; border-bottom: 2px solid #222; padding-bottom: 8px; }
  .meta { margin: 16px 0; font-size: 14px; }
  table { width: 100%; border-collapse: collapse; font-size: 14px; }
  th, td { border: 1px solid #999; padding: 6px 10px; text-align: left; }
  th { background: #f0f0f0; }
  td.num, th.num { text-align: right; }
  .totals { margin-top: 16px; text-align: right; font-size: 15px; }
  .totals .grand { font-weight: bold; font-size: 17px; }
  .paid { color: #1a7f37; font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}} #{{.TransactionNo}}</h1>
<div class="meta">
  <div>Date: {{.Date}}</div>
  {{if .CustomerName}}<div>Customer: {{.CustomerName}}</div>{{end}}
  {{if .IsPaid}}<div class="paid">PAID</div>{{end}}
</div>
<table>
  <tr><th>Item</th><th class="num">Qty</th><th class="num">Rate</th><th class="num">Amount</th></tr>
  {{range .Lines}}
  <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.Price}}</td><td class="num">{{.Total}}</td></tr>
  {{end}}
</table>
<div class="totals">
  <div>Subtotal: {{.Subtotal}}</div>
  <div class="grand">Grand Total: {{.GrandTotal}}</div>
</div>
</body>
</html>
`
