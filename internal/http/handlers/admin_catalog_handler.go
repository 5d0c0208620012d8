package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"robomart/internal/domain"
	applog "robomart/internal/log"
	"robomart/internal/repos"
	"robomart/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminCatalogHandler is the CRUD surface for products, categories and
// courses. Every entity follows the same pattern: ordered list, form dialog,
// insert-or-update by id, hard delete.
type AdminCatalogHandler struct {
	Prods   *repos.ProductRepo
	Cats    *repos.CategoryRepo
	Courses *repos.CourseRepo
}

// ---------- Products ----------

func (h *AdminCatalogHandler) ProductsPage(c *fiber.Ctx) error {
	prods, err := h.Prods.List()
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "admin_products", fiber.Map{"Products": prods})
}

func (h *AdminCatalogHandler) ProductForm(c *fiber.Ctx) error {
	cats, _ := h.Cats.List()
	data := fiber.Map{"Categories": cats}
	if id := c.Query("id"); id != "" {
		p, err := h.Prods.Get(id)
		if err != nil {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Product not found"})
		}
		data["P"] = p
	}
	return render(c, "admin_product_form", data)
}

func (h *AdminCatalogHandler) SaveProduct(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("name is required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	if err != nil || price.IsNegative() {
		return c.Status(400).SendString("invalid price")
	}
	mrp := decimal.Zero
	if raw := strings.TrimSpace(c.FormValue("mrp")); raw != "" {
		if mrp, err = decimal.NewFromString(raw); err != nil {
			return c.Status(400).SendString("invalid mrp")
		}
	}
	stock, err := strconv.Atoi(strings.TrimSpace(c.FormValue("stock")))
	if err != nil || stock < 0 {
		return c.Status(400).SendString("invalid stock")
	}
	difficulty, ok := validate.Difficulty(c.FormValue("difficulty"))
	if !ok {
		return c.Status(400).SendString("invalid difficulty")
	}
	bomJSON, ok := normalizeJSONList(c.FormValue("bom"))
	if !ok {
		return c.Status(400).SendString("bill of materials must be valid JSON")
	}

	sku := strings.TrimSpace(c.FormValue("sku"))
	if sku == "" {
		sku = fmt.Sprintf("SKU-%d", time.Now().UnixMilli())
	}

	p := domain.Product{
		ID:          c.FormValue("id"),
		CategoryID:  c.FormValue("category_id"),
		Name:        name,
		Slug:        validate.Slug(c.FormValue("slug"), name),
		SKU:         sku,
		Description: c.FormValue("description"),
		Price:       price,
		MRP:         mrp,
		Stock:       stock,
		ImagesJSON:  linesToJSON(c.FormValue("images")),
		TagsJSON:    csvToJSON(c.FormValue("tags")),
		Difficulty:  difficulty,
		BOMJSON:     bomJSON,
		IsFeatured:  c.FormValue("is_featured") == "on",
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
		err = h.Prods.Create(p)
	} else {
		err = h.Prods.Update(p)
	}
	if err != nil {
		applog.Error(c, "admin.products.save.fail", err, map[string]any{"product": p.ID})
		return c.Status(400).SendString("could not save product")
	}
	applog.Audit(c, "admin.products.save", map[string]any{"product": p.ID})
	return c.Redirect("/admin/products")
}

func (h *AdminCatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Prods.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// ---------- Categories ----------

func (h *AdminCatalogHandler) CategoriesPage(c *fiber.Ctx) error {
	cats, err := h.Cats.List()
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	return render(c, "admin_categories", fiber.Map{"Categories": cats})
}

func (h *AdminCatalogHandler) CategoryForm(c *fiber.Ctx) error {
	data := fiber.Map{}
	if id := c.Query("id"); id != "" {
		cat, err := h.Cats.Get(id)
		if err != nil {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
		}
		data["Category"] = cat
	}
	return render(c, "admin_category_form", data)
}

func (h *AdminCatalogHandler) SaveCategory(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("name is required")
	}
	orderIndex, _ := strconv.Atoi(c.FormValue("order_index"))

	cat := domain.Category{
		ID:          c.FormValue("id"),
		Name:        name,
		Slug:        validate.Slug(c.FormValue("slug"), name),
		Description: c.FormValue("description"),
		ImageURL:    c.FormValue("image_url"),
		OrderIndex:  orderIndex,
	}

	var err error
	if cat.ID == "" {
		cat.ID = uuid.NewString()
		err = h.Cats.Create(cat)
	} else {
		err = h.Cats.Update(cat)
	}
	if err != nil {
		applog.Error(c, "admin.categories.save.fail", err, map[string]any{"category": cat.ID})
		return c.Status(400).SendString("could not save category")
	}
	applog.Audit(c, "admin.categories.save", map[string]any{"category": cat.ID})
	return c.Redirect("/admin/categories")
}

func (h *AdminCatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Cats.Delete(id); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not delete category")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category": id})
	return c.Redirect("/admin/categories")
}

// ---------- Courses ----------

func (h *AdminCatalogHandler) CoursesPage(c *fiber.Ctx) error {
	courses, err := h.Courses.List()
	if err != nil {
		applog.Error(c, "admin.courses.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load courses"})
	}
	return render(c, "admin_courses", fiber.Map{"Courses": courses})
}

func (h *AdminCatalogHandler) CourseForm(c *fiber.Ctx) error {
	data := fiber.Map{}
	if id := c.Query("id"); id != "" {
		course, err := h.Courses.Get(id)
		if err != nil {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Course not found"})
		}
		data["Course"] = course
	}
	return render(c, "admin_course_form", data)
}

func (h *AdminCatalogHandler) SaveCourse(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("name is required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	if err != nil || price.IsNegative() {
		return c.Status(400).SendString("invalid price")
	}
	mrp := decimal.Zero
	if raw := strings.TrimSpace(c.FormValue("mrp")); raw != "" {
		if mrp, err = decimal.NewFromString(raw); err != nil {
			return c.Status(400).SendString("invalid mrp")
		}
	}
	// The syllabus textarea holds raw JSON; malformed input aborts the save.
	syllabusJSON, ok := normalizeJSONList(c.FormValue("syllabus"))
	if !ok {
		return c.Status(400).SendString("syllabus must be valid JSON")
	}
	orderIndex, _ := strconv.Atoi(c.FormValue("order_index"))

	course := domain.Course{
		ID:           c.FormValue("id"),
		Name:         name,
		Slug:         validate.Slug(c.FormValue("slug"), name),
		Description:  c.FormValue("description"),
		Duration:     c.FormValue("duration"),
		Category:     c.FormValue("category"),
		Price:        price,
		MRP:          mrp,
		SyllabusJSON: syllabusJSON,
		ImageURL:     c.FormValue("image_url"),
		IsFeatured:   c.FormValue("is_featured") == "on",
		OrderIndex:   orderIndex,
	}

	if course.ID == "" {
		course.ID = uuid.NewString()
		err = h.Courses.Create(course)
	} else {
		err = h.Courses.Update(course)
	}
	if err != nil {
		applog.Error(c, "admin.courses.save.fail", err, map[string]any{"course": course.ID})
		return c.Status(400).SendString("could not save course")
	}
	applog.Audit(c, "admin.courses.save", map[string]any{"course": course.ID})
	return c.Redirect("/admin/courses")
}

func (h *AdminCatalogHandler) DeleteCourse(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Courses.Delete(id); err != nil {
		applog.Error(c, "admin.courses.delete.fail", err, map[string]any{"course": id})
		return c.Status(400).SendString("could not delete course")
	}
	applog.Audit(c, "admin.courses.delete", map[string]any{"course": id})
	return c.Redirect("/admin/courses")
}

// ---------- Form helpers ----------

// normalizeJSONList accepts an empty field or a JSON array and returns the
// stored representation.
func normalizeJSONList(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "[]", true
	}
	var probe []any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return "", false
	}
	return raw, true
}

// linesToJSON turns a one-URL-per-line textarea into a JSON string array.
func linesToJSON(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return encodeStrings(out)
}

// csvToJSON turns a comma-separated tag field into a JSON string array.
func csvToJSON(raw string) string {
	var out []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(strings.ToLower(tag)); tag != "" {
			out = append(out, tag)
		}
	}
	return encodeStrings(out)
}

func encodeStrings(in []string) string {
	if len(in) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(in)
	return string(b)
}
