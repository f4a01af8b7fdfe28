// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"dagcategory/internal/models"
)

// BuildTree links a flat collection of categories into trees in one pass
// over an ordered path index, without further lookups. The returned roots
// and every Children slice keep the order of the input.
//
// A category whose parent path is not in the collection becomes a root of
// its own fragment. This is expected for partially loaded collections and
// is not an error.
func BuildTree(nodes []models.Category) []*models.TreeNode {
	index := orderedmap.New[string, *models.TreeNode]()
	for _, c := range nodes {
		index.Set(c.Path, &models.TreeNode{
			Category: c,
			Depth:    Depth(c.Path),
			Children: []*models.TreeNode{},
		})
	}

	var roots []*models.TreeNode
	for pair := index.Oldest(); pair != nil; pair = pair.Next() {
		node := pair.Value
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parentPath, ok := ParentPath(node.Path)
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent, ok := index.Get(parentPath)
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// Flatten walks trees depth-first and returns the categories in display
// order. Useful for indented <select> options.
func Flatten(roots []*models.TreeNode) []*models.TreeNode {
	var result []*models.TreeNode
	var walk func([]*models.TreeNode)
	walk = func(nodes []*models.TreeNode) {
		for _, n := range nodes {
			result = append(result, n)
			walk(n.Children)
		}
	}
	walk(roots)
	return result
}
