package repos

import (
	"robomart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CourseRepo struct{ db *sqlx.DB }

func NewCourseRepo(db *sqlx.DB) *CourseRepo { return &CourseRepo{db: db} }

const courseCols = `
  id, name, slug, description, duration, category, price, mrp, syllabus_json,
  image_url, is_featured, order_index, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *CourseRepo) List() ([]domain.Course, error) {
	var out []domain.Course
	err := r.db.Select(&out, `SELECT `+courseCols+` FROM courses ORDER BY order_index, name`)
	return out, err
}

func (r *CourseRepo) ListFeatured(limit int) ([]domain.Course, error) {
	var out []domain.Course
	err := r.db.Select(&out, `
	  SELECT `+courseCols+` FROM courses
	  WHERE is_featured = 1
	  ORDER BY order_index
	  LIMIT ?`, limit)
	return out, err
}

func (r *CourseRepo) Get(id string) (domain.Course, error) {
	var c domain.Course
	err := r.db.Get(&c, `SELECT `+courseCols+` FROM courses WHERE id = ?`, id)
	return c, err
}

func (r *CourseRepo) GetBySlug(slug string) (domain.Course, error) {
	var c domain.Course
	err := r.db.Get(&c, `SELECT `+courseCols+` FROM courses WHERE slug = ?`, slug)
	return c, err
}

func (r *CourseRepo) Create(c domain.Course) error {
	_, err := r.db.Exec(`
	  INSERT INTO courses(id, name, slug, description, duration, category, price, mrp,
	    syllabus_json, image_url, is_featured, order_index, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
		c.ID, c.Name, c.Slug, c.Description, c.Duration, c.Category,
		c.Price.String(), c.MRP.String(), c.SyllabusJSON, c.ImageURL, c.IsFeatured, c.OrderIndex)
	return err
}

func (r *CourseRepo) Update(c domain.Course) error {
	_, err := r.db.Exec(`
	  UPDATE courses SET name=?, slug=?, description=?, duration=?, category=?, price=?, mrp=?,
	    syllabus_json=?, image_url=?, is_featured=?, order_index=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?`,
		c.Name, c.Slug, c.Description, c.Duration, c.Category, c.Price.String(), c.MRP.String(),
		c.SyllabusJSON, c.ImageURL, c.IsFeatured, c.OrderIndex, c.ID)
	return err
}

func (r *CourseRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM courses WHERE id = ?`, id)
	return err
}
