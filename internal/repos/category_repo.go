package repos

import (
	"robomart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, slug, description, image_url, order_index, created_at
	  FROM categories
	  ORDER BY order_index, name`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, description, image_url, order_index, created_at
	  FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) GetBySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, description, image_url, order_index, created_at
	  FROM categories WHERE slug = ?`, slug)
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, slug, description, image_url, order_index)
	  VALUES(?,?,?,?,?,?)`,
		c.ID, c.Name, c.Slug, c.Description, c.ImageURL, c.OrderIndex)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	_, err := r.db.Exec(`
	  UPDATE categories SET name=?, slug=?, description=?, image_url=?, order_index=?
	  WHERE id=?`,
		c.Name, c.Slug, c.Description, c.ImageURL, c.OrderIndex, c.ID)
	return err
}

func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
