package handlers

import (
	applog "robomart/internal/log"
	"robomart/internal/services"
	"robomart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// Home shows featured products and courses plus the category strip.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "home.categories", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	featured, err := h.Catalog.FeaturedProducts(8)
	if err != nil {
		applog.Error(c, "home.featured", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	courses, _ := h.Catalog.FeaturedCourses(4)
	return render(c, "home", fiber.Map{
		"Categories": cats,
		"Featured":   featured,
		"Courses":    courses,
	})
}

func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	prods, err := h.Catalog.ListProducts()
	if err != nil {
		applog.Error(c, "products.list", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "products", fiber.Map{"Products": prods})
}

func (h *CatalogHandler) ProductDetail(c *fiber.Ctx) error {
	slug := c.Params("slug")
	p, err := h.Catalog.ProductBySlug(slug)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p})
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "categories.list", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	return render(c, "categories", fiber.Map{"Categories": cats})
}

func (h *CatalogHandler) CategoryDetail(c *fiber.Ctx) error {
	cat, prods, err := h.Catalog.CategoryWithProducts(c.Params("slug"))
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	return render(c, "category", fiber.Map{"Category": cat, "Products": prods})
}

// Kits lists kit-tagged products with an optional difficulty filter.
func (h *CatalogHandler) Kits(c *fiber.Ctx) error {
	difficulty, ok := validate.Difficulty(c.Query("difficulty"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "difficulty"})
		difficulty = ""
	}
	kits, err := h.Catalog.Kits(difficulty)
	if err != nil {
		applog.Error(c, "kits.list", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load kits"})
	}
	return render(c, "kits", fiber.Map{"Products": kits, "Difficulty": difficulty})
}
