package handlers

import (
	"strings"

	applog "robomart/internal/log"
	"robomart/internal/services"

	"github.com/gofiber/fiber/v2"
)

type TrackHandler struct {
	Tracking *services.TrackingService
}

// Track is the stateless order-status lookup. Three outcomes: the bare form,
// an explicit not-found message, or the staged progress view.
func (h *TrackHandler) Track(c *fiber.Ctx) error {
	number := strings.TrimSpace(c.Query("number"))
	if number == "" {
		return render(c, "track", fiber.Map{"Number": ""})
	}

	res, err := h.Tracking.Lookup(number)
	if err != nil {
		applog.Error(c, "track.lookup", err, map[string]any{"number": number})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not look up your order"})
	}
	if !res.Found {
		return render(c, "track", fiber.Map{"Number": number, "NotFound": true})
	}
	return render(c, "track", fiber.Map{
		"Number":    number,
		"Order":     res.Order,
		"Stages":    res.Stages,
		"Cancelled": res.Cancelled,
	})
}
