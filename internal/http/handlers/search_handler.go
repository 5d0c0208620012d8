package handlers

import (
	applog "robomart/internal/log"
	"robomart/internal/services"
	"robomart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

type searchResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	SKU   string `json:"sku"`
	Price string `json:"price"`
	Image string `json:"image,omitempty"`
}

// Search is the JSON endpoint behind the debounced search box: name/SKU
// case-insensitive match, capped at 10 results. The client's debounce plus
// the route limiter stand in for request cancellation.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if rawQ == "" {
		return c.JSON([]searchResult{})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid keyword"})
	}

	prods, err := h.Catalog.Search(q)
	if err != nil {
		applog.Error(c, "search.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}

	out := make([]searchResult, 0, len(prods))
	for _, p := range prods {
		r := searchResult{ID: p.ID, Name: p.Name, Slug: p.Slug, SKU: p.SKU, Price: p.Price.StringFixed(2)}
		if imgs := p.Images(); len(imgs) > 0 {
			r.Image = imgs[0]
		}
		out = append(out, r)
	}
	return c.JSON(out)
}
