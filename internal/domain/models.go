package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Slug        string `db:"slug"`
	Description string `db:"description"`
	ImageURL    string `db:"image_url"`
	OrderIndex  int    `db:"order_index"`
	CreatedAt   string `db:"created_at"`
}

// BOMEntry is one line of a kit's bill of materials.
type BOMEntry struct {
	Part string `json:"part"`
	Qty  int    `json:"qty"`
	SKU  string `json:"sku,omitempty"`
}

type Product struct {
	ID          string          `db:"id"`
	CategoryID  string          `db:"category_id"`
	Name        string          `db:"name"`
	Slug        string          `db:"slug"`
	SKU         string          `db:"sku"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	MRP         decimal.Decimal `db:"mrp"`
	Stock       int             `db:"stock"`
	ImagesJSON  string          `db:"images_json"`
	TagsJSON    string          `db:"tags_json"`
	Difficulty  string          `db:"difficulty"` // beginner | intermediate | advanced
	BOMJSON     string          `db:"bom_json"`
	IsFeatured  bool            `db:"is_featured"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

func (p Product) Images() []string { return decodeStrings(p.ImagesJSON) }
func (p Product) Tags() []string   { return decodeStrings(p.TagsJSON) }

func (p Product) BOM() []BOMEntry {
	var out []BOMEntry
	_ = json.Unmarshal([]byte(p.BOMJSON), &out)
	return out
}

func (p Product) InStock() bool { return p.Stock > 0 }

// DiscountPercent derives the struck-through badge value from mrp vs price.
// Zero means no badge: mrp unset or not above price.
func (p Product) DiscountPercent() int {
	return DiscountPercent(p.Price, p.MRP)
}

func DiscountPercent(price, mrp decimal.Decimal) int {
	if mrp.IsZero() || mrp.LessThanOrEqual(price) {
		return 0
	}
	pct := mrp.Sub(price).Div(mrp).Mul(decimal.NewFromInt(100))
	n, _ := pct.Round(0).Float64()
	return int(n)
}

// SyllabusSection is one accordion block of a course syllabus.
type SyllabusSection struct {
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}

type Course struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	Slug         string          `db:"slug"`
	Description  string          `db:"description"`
	Duration     string          `db:"duration"`
	Category     string          `db:"category"` // free-text label, not a Category reference
	Price        decimal.Decimal `db:"price"`
	MRP          decimal.Decimal `db:"mrp"`
	SyllabusJSON string          `db:"syllabus_json"`
	ImageURL     string          `db:"image_url"`
	IsFeatured   bool            `db:"is_featured"`
	OrderIndex   int             `db:"order_index"`
	CreatedAt    string          `db:"created_at"`
	UpdatedAt    string          `db:"updated_at"`
}

func (c Course) Syllabus() []SyllabusSection {
	var out []SyllabusSection
	_ = json.Unmarshal([]byte(c.SyllabusJSON), &out)
	return out
}

func (c Course) DiscountPercent() int { return DiscountPercent(c.Price, c.MRP) }

type SavedAddress struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Label     string `db:"label"`
	Address   string `db:"address"`
	Phone     string `db:"phone"`
	Pincode   string `db:"pincode"`
	IsDefault bool   `db:"is_default"`
	CreatedAt string `db:"created_at"`
}

type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

func decodeStrings(raw string) []string {
	var out []string
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}
