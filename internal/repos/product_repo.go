package repos

import (
	"robomart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, COALESCE(category_id,'') AS category_id, name, slug, sku, description,
  price, mrp, stock, images_json, tags_json, difficulty, bom_json, is_featured,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
	return out, err
}

func (r *ProductRepo) ListFeatured(limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE is_featured = 1
	  ORDER BY created_at DESC
	  LIMIT ?`, limit)
	return out, err
}

func (r *ProductRepo) ListByCategory(catID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE category_id = ?
	  ORDER BY created_at DESC`, catID)
	return out, err
}

// ListByTag matches products whose tag set contains the given tag.
func (r *ProductRepo) ListByTag(tag string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE EXISTS (SELECT 1 FROM json_each(tags_json) WHERE json_each.value = ?)
	  ORDER BY created_at DESC`, tag)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) GetBySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE slug = ?`, slug)
	return p, err
}

// Search matches name or SKU case-insensitively, newest first.
func (r *ProductRepo) Search(q string, limit int) ([]domain.Product, error) {
	var out []domain.Product
	like := "%" + q + "%"
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)
	  ORDER BY created_at DESC
	  LIMIT ?`, like, like, limit)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, name, slug, sku, description, price, mrp,
	    stock, images_json, tags_json, difficulty, bom_json, is_featured, created_at)
	  VALUES(?, NULLIF(?,''), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		p.ID, p.CategoryID, p.Name, p.Slug, p.SKU, p.Description, p.Price.String(), p.MRP.String(),
		p.Stock, p.ImagesJSON, p.TagsJSON, p.Difficulty, p.BOMJSON, p.IsFeatured)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products SET category_id=NULLIF(?,''), name=?, slug=?, sku=?, description=?,
	    price=?, mrp=?, stock=?, images_json=?, tags_json=?, difficulty=?, bom_json=?,
	    is_featured=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?`,
		p.CategoryID, p.Name, p.Slug, p.SKU, p.Description, p.Price.String(), p.MRP.String(),
		p.Stock, p.ImagesJSON, p.TagsJSON, p.Difficulty, p.BOMJSON, p.IsFeatured, p.ID)
	return err
}

// Delete is a hard delete; deleting an already-deleted row is a no-op.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}
