package services_test

import (
	"testing"

	"robomart/internal/repos"
	"robomart/internal/services"
)

func catalog(t *testing.T) *services.CatalogService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return services.NewCatalogService(
		repos.NewCategoryRepo(db), repos.NewProductRepo(db), repos.NewCourseRepo(db))
}

func TestSearchMatchesNameAndSKU(t *testing.T) {
	svc := catalog(t)

	byName, err := svc.Search("line follower")
	if err != nil {
		t.Fatal(err)
	}
	if len(byName) != 1 || byName[0].ID != "prd-linebot" {
		t.Fatalf("bad name match: %+v", byName)
	}

	bySKU, err := svc.Search("sku-hc04")
	if err != nil {
		t.Fatal(err)
	}
	if len(bySKU) != 1 || bySKU[0].ID != "prd-ultra" {
		t.Fatalf("bad sku match: %+v", bySKU)
	}

	empty, err := svc.Search("   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("blank query must return nothing: %+v", empty)
	}
}

func TestKitsDifficultyFilter(t *testing.T) {
	svc := catalog(t)

	all, err := svc.Kits("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("want both seeded kits, got %+v", all)
	}

	beginner, err := svc.Kits("Beginner")
	if err != nil {
		t.Fatal(err)
	}
	if len(beginner) != 1 || beginner[0].ID != "prd-linebot" {
		t.Fatalf("bad filter: %+v", beginner)
	}

	advanced, err := svc.Kits("advanced")
	if err != nil {
		t.Fatal(err)
	}
	if len(advanced) != 1 || advanced[0].ID != "prd-armkit" {
		t.Fatalf("bad filter: %+v", advanced)
	}
}

func TestCategoryWithProducts(t *testing.T) {
	svc := catalog(t)

	cat, prods, err := svc.CategoryWithProducts("sensors")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Name != "Sensors" {
		t.Fatalf("bad category: %+v", cat)
	}
	if len(prods) != 1 || prods[0].ID != "prd-ultra" {
		t.Fatalf("bad products: %+v", prods)
	}
}

func TestFeaturedListings(t *testing.T) {
	svc := catalog(t)

	prods, err := svc.FeaturedProducts(0)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range prods {
		if !p.IsFeatured {
			t.Fatalf("non-featured product in featured list: %s", p.ID)
		}
	}
	if len(prods) != 2 {
		t.Fatalf("want 2 seeded featured products, got %d", len(prods))
	}

	courses, err := svc.FeaturedCourses(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 1 || courses[0].Slug != "arduino-from-scratch" {
		t.Fatalf("bad featured courses: %+v", courses)
	}
}
