package albums

import (
	"sort"
	"strings"

	"github.com/dstrand/photoweb/internal/models"
)

// Collection maps album UUIDs to records. Iteration order is irrelevant;
// the sort pass makes the resulting tree deterministic.
type Collection map[string]*models.Album

// TreeNode is one level of the album hierarchy.
//
// Name is the path segment this node represents; it is empty only on the
// synthetic root (album paths cannot produce empty segments). Nodes holds at
// most one child per distinct segment name and Albums holds the records whose
// path fully resolves here. Both are sorted after construction.
type TreeNode struct {
	Name   string          `json:"name,omitempty"`
	Nodes  []*TreeNode     `json:"nodes"`
	Albums []*models.Album `json:"albums"`
}

// BuildTree groups a flat album collection into a sorted folder tree.
func BuildTree(c Collection) *TreeNode {
	return BuildTreeWith(c, NewComparer())
}

// BuildTreeWith builds the tree using the provided string comparator for both
// node names and album titles. cmp must return <0, 0, or >0 in the manner of
// [strings.Compare].
func BuildTreeWith(c Collection, cmp func(a, b string) int) *TreeNode {
	root := &TreeNode{}

	for _, album := range c {
		node := root
		for _, segment := range splitPath(album.Path) {
			node = node.child(segment)
		}
		node.Albums = append(node.Albums, album)
	}

	root.sortRecursive(cmp)
	return root
}

// splitPath splits a slash-delimited album path into its non-empty segments.
func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// childByName returns the child node with the given name if it exists.
func (n *TreeNode) childByName(name string) *TreeNode {
	for _, child := range n.Nodes {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// child returns the named child, creating and appending it first if needed.
func (n *TreeNode) child(name string) *TreeNode {
	if c := n.childByName(name); c != nil {
		return c
	}
	c := &TreeNode{Name: name}
	n.Nodes = append(n.Nodes, c)
	return c
}

func (n *TreeNode) sortRecursive(cmp func(a, b string) int) {
	sort.SliceStable(n.Nodes, func(i, j int) bool {
		return cmp(n.Nodes[i].Name, n.Nodes[j].Name) < 0
	})
	sort.SliceStable(n.Albums, func(i, j int) bool {
		return cmp(n.Albums[i].Title, n.Albums[j].Title) < 0
	})
	for _, child := range n.Nodes {
		child.sortRecursive(cmp)
	}
}

// Walk visits the node and all descendants in pre-order.
func (n *TreeNode) Walk(fn func(*TreeNode)) {
	fn(n)
	for _, child := range n.Nodes {
		child.Walk(fn)
	}
}

// Flatten returns every album in the subtree in pre-order, the enumeration
// used by the flattened grid view.
func (n *TreeNode) Flatten() []*models.Album {
	var out []*models.Album
	n.Walk(func(node *TreeNode) {
		out = append(out, node.Albums...)
	})
	return out
}

// Count returns the number of albums in the subtree.
func (n *TreeNode) Count() int {
	total := 0
	n.Walk(func(node *TreeNode) {
		total += len(node.Albums)
	})
	return total
}
