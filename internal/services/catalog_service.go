package services

import (
	"strings"

	"robomart/internal/domain"
	"robomart/internal/repos"
)

type CatalogService struct {
	Cats    *repos.CategoryRepo
	Prods   *repos.ProductRepo
	Courses *repos.CourseRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, courses *repos.CourseRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Courses: courses}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) FeaturedProducts(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.Prods.ListFeatured(limit)
}

func (s *CatalogService) ProductBySlug(slug string) (domain.Product, error) {
	return s.Prods.GetBySlug(slug)
}

// CategoryWithProducts backs the category detail page.
func (s *CatalogService) CategoryWithProducts(slug string) (domain.Category, []domain.Product, error) {
	cat, err := s.Cats.GetBySlug(slug)
	if err != nil {
		return domain.Category{}, nil, err
	}
	prods, err := s.Prods.ListByCategory(cat.ID)
	return cat, prods, err
}

// Kits lists kit-tagged products, optionally narrowed by difficulty. The
// difficulty filter runs after the fetch, mirroring the listing page's
// client-side narrowing.
func (s *CatalogService) Kits(difficulty string) ([]domain.Product, error) {
	prods, err := s.Prods.ListByTag("kit")
	if err != nil {
		return nil, err
	}
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if difficulty == "" || difficulty == "all" {
		return prods, nil
	}
	out := prods[:0]
	for _, p := range prods {
		if p.Difficulty == difficulty {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search matches products by case-insensitive name or SKU, capped at 10
// results like the storefront search box.
func (s *CatalogService) Search(q string) ([]domain.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	return s.Prods.Search(q, 10)
}

func (s *CatalogService) ListCourses() ([]domain.Course, error) {
	return s.Courses.List()
}

func (s *CatalogService) FeaturedCourses(limit int) ([]domain.Course, error) {
	if limit <= 0 {
		limit = 4
	}
	return s.Courses.ListFeatured(limit)
}

func (s *CatalogService) CourseBySlug(slug string) (domain.Course, error) {
	return s.Courses.GetBySlug(slug)
}
