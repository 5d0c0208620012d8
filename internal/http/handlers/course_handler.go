package handlers

import (
	applog "robomart/internal/log"
	"robomart/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CourseHandler struct {
	Catalog *services.CatalogService
}

func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses, err := h.Catalog.ListCourses()
	if err != nil {
		applog.Error(c, "courses.list", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load courses"})
	}
	return render(c, "courses", fiber.Map{"Courses": courses})
}

func (h *CourseHandler) Detail(c *fiber.Ctx) error {
	course, err := h.Catalog.CourseBySlug(c.Params("slug"))
	if err != nil || course.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Course not found"})
	}
	return render(c, "course", fiber.Map{"Course": course})
}
