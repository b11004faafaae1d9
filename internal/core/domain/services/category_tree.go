package services

import (
	"cmp"
	"slices"
	"strings"
)

// CategoryNode is one node of the assembled tree. Payload carries whatever the
// caller needs to render the node.
type CategoryNode[T any] struct {
	ID       string
	ParentID string
	Title    string
	Slug     string
	Payload  T
	Children []*CategoryNode[T]
}

// BuildCategoryTree links flat rows into a forest. Siblings are ordered by title
// (case-insensitive) then slug. Rows whose parent is unknown become roots, and a
// node reachable through a parent cycle is emitted at most once.
func BuildCategoryTree[T any](rows []CategoryNode[T]) []*CategoryNode[T] {
	nodes := make(map[string]*CategoryNode[T], len(rows))
	for i := range rows {
		n := rows[i]
		n.Children = nil
		nodes[n.ID] = &n
	}

	var roots []*CategoryNode[T]
	for i := range rows {
		n := nodes[rows[i].ID]
		parent, ok := nodes[n.ParentID]
		if n.ParentID == "" || !ok || parent == n {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	// Nodes caught in a cycle are unreachable from the roots; promote one per cycle.
	visited := make(map[string]bool, len(nodes))
	var mark func(n *CategoryNode[T])
	mark = func(n *CategoryNode[T]) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true
		for _, c := range n.Children {
			mark(c)
		}
	}
	for _, r := range roots {
		mark(r)
	}
	for i := range rows {
		n := nodes[rows[i].ID]
		if visited[n.ID] {
			continue
		}
		parent := nodes[n.ParentID]
		parent.Children = slices.DeleteFunc(parent.Children, func(c *CategoryNode[T]) bool { return c == n })
		roots = append(roots, n)
		mark(n)
	}

	sortNodes(roots)
	return roots
}

func sortNodes[T any](nodes []*CategoryNode[T]) {
	slices.SortFunc(nodes, func(a, b *CategoryNode[T]) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
			cmp.Compare(a.Slug, b.Slug),
		)
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// FlattenCategoryTree lists nodes depth-first with their depth.
func FlattenCategoryTree[T any](roots []*CategoryNode[T], visit func(n *CategoryNode[T], depth int)) {
	var walk func(ns []*CategoryNode[T], depth int)
	walk = func(ns []*CategoryNode[T], depth int) {
		for _, n := range ns {
			visit(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
}
