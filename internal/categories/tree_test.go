package categories

import (
	"testing"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
)

func i64Ptr(v int64) *int64 {
	return &v
}

func TestBuildTree(t *testing.T) {
	rows := []models.Category{
		{ID: 1, NameAr: "أسماك", Slug: "fish", SortOrder: 0},
		{ID: 2, NameAr: "نباتات", Slug: "plants", SortOrder: 1},
		{ID: 3, NameAr: "أسماك استوائية", Slug: "tropical", ParentID: i64Ptr(1), SortOrder: 0},
		{ID: 4, NameAr: "أسماك ذهبية", Slug: "goldfish", ParentID: i64Ptr(1), SortOrder: 1},
		{ID: 5, NameAr: "جوبي", Slug: "guppy", ParentID: i64Ptr(3), SortOrder: 0},
	}

	tree := BuildTree(rows)
	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if tree[0].Slug != "fish" || tree[1].Slug != "plants" {
		t.Fatalf("unexpected root order: %s, %s", tree[0].Slug, tree[1].Slug)
	}

	fish := tree[0]
	if len(fish.Children) != 2 {
		t.Fatalf("expected 2 fish children, got %d", len(fish.Children))
	}
	if fish.Children[0].Slug != "tropical" || fish.Children[1].Slug != "goldfish" {
		t.Fatalf("unexpected child order: %+v", fish.Children)
	}
	if len(fish.Children[0].Children) != 1 || fish.Children[0].Children[0].Slug != "guppy" {
		t.Fatalf("expected guppy under tropical, got %+v", fish.Children[0].Children)
	}
	if len(tree[1].Children) != 0 {
		t.Fatalf("expected no plant children, got %+v", tree[1].Children)
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	if tree := BuildTree(nil); len(tree) != 0 {
		t.Fatalf("expected empty tree, got %+v", tree)
	}
}

func TestFlatten(t *testing.T) {
	rows := []models.Category{
		{ID: 1, NameAr: "أسماك", Slug: "fish"},
		{ID: 2, NameAr: "استوائية", Slug: "tropical", ParentID: i64Ptr(1)},
		{ID: 3, NameAr: "جوبي", Slug: "guppy", ParentID: i64Ptr(2)},
		{ID: 4, NameAr: "نباتات", Slug: "plants", SortOrder: 1},
	}

	flat := Flatten(BuildTree(rows))
	if len(flat) != 4 {
		t.Fatalf("expected 4 flat rows, got %d", len(flat))
	}

	wantSlugs := []string{"fish", "tropical", "guppy", "plants"}
	wantDepths := []int{0, 1, 2, 0}
	for i, row := range flat {
		if row.Slug != wantSlugs[i] {
			t.Fatalf("row %d: expected slug %q, got %q", i, wantSlugs[i], row.Slug)
		}
		if row.Depth != wantDepths[i] {
			t.Fatalf("row %d: expected depth %d, got %d", i, wantDepths[i], row.Depth)
		}
	}

	if flat[0].Label != "أسماك" {
		t.Fatalf("expected unprefixed root label, got %q", flat[0].Label)
	}
	if flat[2].Label != "— — جوبي" {
		t.Fatalf("expected depth-prefixed label, got %q", flat[2].Label)
	}
}
