package invoice_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robomart/internal/domain"
	"robomart/internal/invoice"
)

func TestRenderInvoice(t *testing.T) {
	d := func(s string) decimal.Decimal {
		v, _ := decimal.NewFromString(s)
		return v
	}
	o := domain.Order{
		OrderNumber:     "ORD-AB12CD34EF",
		CustomerName:    "Asha",
		CustomerPhone:   "9876543210",
		ShippingAddress: "12 MG Road, Kerala, 682001",
		ItemsJSON: domain.EncodeItems([]domain.OrderItem{
			{ProductID: "prd-linebot", Name: "Line Follower Robot Kit", Quantity: 2, Price: d("1499")},
			{ProductID: "prd-ultra", Name: "Ultrasonic Distance Sensor", Quantity: 1, Price: d("89")},
		}),
		Subtotal:    d("3087"),
		ShippingFee: d("70"),
		Total:       d("3157"),
		Status:      "confirmed",
		CreatedAt:   "2026-08-30 10:00:00",
	}

	doc, err := invoice.Render(o, "RoboMart", "42 Maker Street, Kochi, Kerala")
	require.NoError(t, err)
	html := string(doc)

	assert.Contains(t, html, "#ORD-AB12CD34EF")
	assert.Contains(t, html, "RoboMart")
	assert.Contains(t, html, "42 Maker Street, Kochi, Kerala")
	assert.Contains(t, html, "Line Follower Robot Kit")
	assert.Contains(t, html, "₹2998.00") // line amount from the snapshot
	assert.Contains(t, html, "₹3157.00")
	assert.Contains(t, html, "Status: confirmed")
	assert.Contains(t, html, `onload="window.print()"`)
}

func TestRenderEscapesCustomerInput(t *testing.T) {
	o := domain.Order{
		OrderNumber:  "ORD-XSS0000000",
		CustomerName: `<script>alert(1)</script>`,
		ItemsJSON:    "[]",
	}
	doc, err := invoice.Render(o, "RoboMart", "")
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(doc), "<script>alert(1)</script>"))
}
