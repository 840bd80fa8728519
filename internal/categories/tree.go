package categories

import (
	"strings"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
)

// Node is one category in the storefront tree response.
type Node struct {
	ID        int64   `json:"id"`
	NameAr    string  `json:"nameAr"`
	NameEn    *string `json:"nameEn,omitempty"`
	Slug      string  `json:"slug"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	SortOrder int     `json:"sortOrder"`
	Children  []Node  `json:"children"`
}

// FlatNode is one depth-prefixed row for admin category selects.
type FlatNode struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
	Depth int    `json:"depth"`
}

// BuildTree assembles root nodes with nested children from one flat list.
// Input order (sort_order, id) is preserved at every level.
func BuildTree(rows []models.Category) []Node {
	children := make(map[int64][]models.Category, len(rows))
	var roots []models.Category
	for _, row := range rows {
		if row.ParentID == nil {
			roots = append(roots, row)
			continue
		}
		children[*row.ParentID] = append(children[*row.ParentID], row)
	}

	var build func(rows []models.Category) []Node
	build = func(rows []models.Category) []Node {
		nodes := make([]Node, 0, len(rows))
		for _, row := range rows {
			nodes = append(nodes, Node{
				ID:        row.ID,
				NameAr:    row.NameAr,
				NameEn:    row.NameEn,
				Slug:      row.Slug,
				ImageURL:  row.ImageURL,
				SortOrder: row.SortOrder,
				Children:  build(children[row.ID]),
			})
		}
		return nodes
	}
	return build(roots)
}

// Flatten walks the tree depth-first, prefixing each label with its depth so
// nested categories read indented in a flat select.
func Flatten(nodes []Node) []FlatNode {
	var out []FlatNode
	var walk func(nodes []Node, depth int)
	walk = func(nodes []Node, depth int) {
		for _, node := range nodes {
			label := node.NameAr
			if depth > 0 {
				label = strings.Repeat("— ", depth) + label
			}
			out = append(out, FlatNode{
				ID:    node.ID,
				Label: label,
				Slug:  node.Slug,
				Depth: depth,
			})
			walk(node.Children, depth+1)
		}
	}
	walk(nodes, 0)
	return out
}
