package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"robomart/internal/domain"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestDiscountPercent(t *testing.T) {
	cases := []struct {
		name  string
		price string
		mrp   string
		want  int
	}{
		{"quarter off", "450", "600", 25},
		{"rounds to nearest", "1499", "1999", 25},
		{"mrp unset", "450", "0", 0},
		{"mrp equals price", "450", "450", 0},
		{"mrp below price", "450", "400", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.DiscountPercent(d(tc.price), d(tc.mrp)))
		})
	}
}

func TestProductJSONFields(t *testing.T) {
	p := domain.Product{
		ImagesJSON: `["a.jpg","b.jpg"]`,
		TagsJSON:   `["kit","arduino"]`,
		BOMJSON:    `[{"part":"Arduino Uno","qty":1,"sku":"SKU-UNO"},{"part":"Chassis","qty":1}]`,
	}
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images())
	assert.Equal(t, []string{"kit", "arduino"}, p.Tags())

	bom := p.BOM()
	if assert.Len(t, bom, 2) {
		assert.Equal(t, "Arduino Uno", bom[0].Part)
		assert.Equal(t, 1, bom[0].Qty)
	}

	// Malformed JSON degrades to empty, never panics.
	bad := domain.Product{ImagesJSON: "{nope"}
	assert.Empty(t, bad.Images())
}

func TestStageIndex(t *testing.T) {
	assert.Equal(t, 0, domain.StageIndex(domain.StatusPending))
	assert.Equal(t, 1, domain.StageIndex(domain.StatusConfirmed))
	assert.Equal(t, 2, domain.StageIndex(domain.StatusShipped))
	// The admin-facing "dispatched" status maps onto the shipped stage.
	assert.Equal(t, 2, domain.StageIndex(domain.StatusDispatched))
	assert.Equal(t, 3, domain.StageIndex(domain.StatusDelivered))
	assert.Equal(t, -1, domain.StageIndex(domain.StatusCancelled))
	assert.Equal(t, -1, domain.StageIndex("garbage"))
}

func TestOrderItemsSnapshot(t *testing.T) {
	items := []domain.OrderItem{
		{ProductID: "prd-a", Name: "Kit", Quantity: 2, Price: d("1499")},
		{ProductID: "prd-b", Name: "Sensor", Quantity: 1, Price: d("89")},
	}
	o := domain.Order{ItemsJSON: domain.EncodeItems(items)}

	got := o.Items()
	if assert.Len(t, got, 2) {
		assert.True(t, got[0].Subtotal().Equal(d("2998")))
		assert.Equal(t, "Sensor", got[1].Name)
	}
}
