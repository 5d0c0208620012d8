// Package invoice renders a printable order invoice as a standalone HTML
// document. Rendering is pure templating: the handler decides where the
// document goes (browser tab, file), the template triggers the native print
// dialog on load.
package invoice

import (
	"bytes"
	"html/template"

	"robomart/internal/domain"

	"github.com/shopspring/decimal"
)

type lineView struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

type view struct {
	StoreName    string
	StoreAddress string
	OrderNumber  string
	CreatedAt    string
	Status       string
	Customer     string
	Phone        string
	Email        string
	Address      string
	Lines        []lineView
	Subtotal     string
	ShippingFee  string
	Total        string
}

var tmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.OrderNumber}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: 'Segoe UI', sans-serif; padding: 40px; color: #333; }
  .invoice-container { max-width: 800px; margin: 0 auto; }
  .header { display: flex; justify-content: space-between; margin-bottom: 30px; }
  .company-name { font-size: 28px; font-weight: bold; color: #0891b2; }
  .company-address { font-size: 12px; color: #666; margin-top: 5px; }
  .invoice-title { font-size: 32px; font-weight: bold; text-align: right; }
  .invoice-meta { text-align: right; font-size: 12px; color: #666; margin-top: 10px; }
  .bill-to { margin: 30px 0; padding: 20px; background: #f8f9fa; border-radius: 8px; }
  table { width: 100%; border-collapse: collapse; margin: 20px 0; }
  th { text-align: left; padding: 10px; background: #0891b2; color: #fff; font-size: 13px; }
  td { padding: 10px; border-bottom: 1px solid #eee; font-size: 13px; }
  .num { text-align: right; }
  .totals { margin-left: auto; width: 260px; font-size: 14px; }
  .totals div { display: flex; justify-content: space-between; padding: 4px 0; }
  .totals .grand { font-weight: bold; font-size: 16px; border-top: 2px solid #333; padding-top: 8px; }
  .footer { margin-top: 40px; text-align: center; font-size: 11px; color: #999; }
</style>
</head>
<body onload="window.print()">
<div class="invoice-container">
  <div class="header">
    <div>
      <div class="company-name">{{.StoreName}}</div>
      <div class="company-address">{{.StoreAddress}}</div>
    </div>
    <div>
      <div class="invoice-title">INVOICE</div>
      <div class="invoice-meta">#{{.OrderNumber}}<br>{{.CreatedAt}}<br>Status: {{.Status}}</div>
    </div>
  </div>
  <div class="bill-to">
    <strong>Bill To:</strong><br>
    {{.Customer}}<br>
    {{.Address}}<br>
    Phone: {{.Phone}}{{if .Email}}<br>Email: {{.Email}}{{end}}
  </div>
  <table>
    <tr><th>Item</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Amount</th></tr>
    {{range .Lines}}<tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">₹{{.Price}}</td><td class="num">₹{{.Subtotal}}</td></tr>
    {{end}}
  </table>
  <div class="totals">
    <div><span>Subtotal</span><span>₹{{.Subtotal}}</span></div>
    <div><span>Shipping</span><span>₹{{.ShippingFee}}</span></div>
    <div class="grand"><span>Total</span><span>₹{{.Total}}</span></div>
  </div>
  <div class="footer">Thank you for your order!</div>
</div>
</body>
</html>`))

// Render produces the invoice document for an order. Line amounts come from
// the order's frozen item snapshot, never the live product table.
func Render(o domain.Order, storeName, storeAddress string) ([]byte, error) {
	v := view{
		StoreName:    storeName,
		StoreAddress: storeAddress,
		OrderNumber:  o.OrderNumber,
		CreatedAt:    o.CreatedAt,
		Status:       o.Status,
		Customer:     o.CustomerName,
		Phone:        o.CustomerPhone,
		Email:        o.CustomerEmail,
		Address:      o.ShippingAddress,
		Subtotal:     o.Subtotal.StringFixed(2),
		ShippingFee:  o.ShippingFee.StringFixed(2),
		Total:        o.Total.StringFixed(2),
	}
	for _, it := range o.Items() {
		v.Lines = append(v.Lines, lineView{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price.StringFixed(2),
			Subtotal: it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2),
		})
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
