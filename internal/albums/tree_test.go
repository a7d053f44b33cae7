package albums

import (
	"strings"
	"testing"

	"github.com/dstrand/photoweb/internal/models"
)

func album(uuid, path, title string) *models.Album {
	return &models.Album{UUID: uuid, Path: path, Title: title}
}

func collection(records ...*models.Album) Collection {
	c := Collection{}
	for _, a := range records {
		c[a.UUID] = a
	}
	return c
}

func TestBuildTree(t *testing.T) {
	t.Run("EmptyCollection", func(t *testing.T) {
		root := BuildTree(Collection{})

		if root.Name != "" {
			t.Errorf("root name should be empty, got %q", root.Name)
		}
		if len(root.Nodes) != 0 {
			t.Errorf("expected no child nodes, got %d", len(root.Nodes))
		}
		if len(root.Albums) != 0 {
			t.Errorf("expected no albums, got %d", len(root.Albums))
		}
	})

	t.Run("RootAlbum", func(t *testing.T) {
		root := BuildTree(collection(album("a1", "", "Root Album")))

		if len(root.Nodes) != 0 {
			t.Errorf("expected no child nodes, got %d", len(root.Nodes))
		}
		if len(root.Albums) != 1 || root.Albums[0].Title != "Root Album" {
			t.Errorf("expected Root Album attached to root, got %+v", root.Albums)
		}
	})

	t.Run("DegeneratePaths", func(t *testing.T) {
		root := BuildTree(collection(
			album("a1", "", "Empty"),
			album("a2", "/", "Slash"),
			album("a3", "//", "DoubleSlash"),
		))

		if len(root.Nodes) != 0 {
			t.Errorf("degenerate paths must not create child nodes, got %d", len(root.Nodes))
		}
		if len(root.Albums) != 3 {
			t.Errorf("expected all 3 albums on the root, got %d", len(root.Albums))
		}
	})

	t.Run("SharedPrefixGroupsOnce", func(t *testing.T) {
		root := BuildTree(collection(
			album("b", "A/B", "Album B"),
			album("c", "A/C", "Album C"),
		))

		if len(root.Nodes) != 1 {
			t.Fatalf("expected a single A node, got %d nodes", len(root.Nodes))
		}
		a := root.Nodes[0]
		if a.Name != "A" {
			t.Errorf("expected node A, got %q", a.Name)
		}
		if len(a.Nodes) != 2 || a.Nodes[0].Name != "B" || a.Nodes[1].Name != "C" {
			t.Errorf("expected children B, C under A, got %+v", a.Nodes)
		}
	})

	t.Run("NodesSortedByName", func(t *testing.T) {
		root := BuildTree(collection(
			album("b", "Z/Y", "Album B"),
			album("a", "A/B", "Album A"),
		))

		if len(root.Nodes) != 2 {
			t.Fatalf("expected 2 child nodes, got %d", len(root.Nodes))
		}
		if root.Nodes[0].Name != "A" || root.Nodes[1].Name != "Z" {
			t.Errorf("expected A before Z, got %q, %q", root.Nodes[0].Name, root.Nodes[1].Name)
		}
	})

	t.Run("AlbumsSortedByTitle", func(t *testing.T) {
		root := BuildTree(collection(
			album("z", "Animals", "Zebra"),
			album("a", "Animals", "Antelope"),
		))

		node := root.Nodes[0]
		if node.Name != "Animals" {
			t.Fatalf("expected Animals node, got %q", node.Name)
		}
		if len(node.Albums) != 2 {
			t.Fatalf("expected 2 albums, got %d", len(node.Albums))
		}
		if node.Albums[0].Title != "Antelope" || node.Albums[1].Title != "Zebra" {
			t.Errorf("expected [Antelope Zebra], got [%s %s]", node.Albums[0].Title, node.Albums[1].Title)
		}
	})

	t.Run("LocaleAwareSort", func(t *testing.T) {
		root := BuildTree(collection(
			album("1", "", "zebra"),
			album("2", "", "Ähre"),
			album("3", "", "apple"),
		))

		got := make([]string, 0, 3)
		for _, a := range root.Albums {
			got = append(got, a.Title)
		}
		want := []string{"Ähre", "apple", "zebra"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, got)
			}
		}
	})

	t.Run("Completeness", func(t *testing.T) {
		c := collection(
			album("1", "Family/2023", "Summer"),
			album("2", "Family/2023", "Winter"),
			album("3", "Family", "Pets"),
			album("4", "", "Loose"),
			album("5", "Trips/Far/North", "Arctic"),
		)
		root := BuildTree(c)

		seen := map[string]int{}
		root.Walk(func(n *TreeNode) {
			for _, a := range n.Albums {
				seen[a.UUID]++
			}
		})

		if len(seen) != len(c) {
			t.Errorf("expected %d distinct albums in tree, got %d", len(c), len(seen))
		}
		for uuid, count := range seen {
			if count != 1 {
				t.Errorf("album %s appears %d times", uuid, count)
			}
			if _, ok := c[uuid]; !ok {
				t.Errorf("album %s not in input collection", uuid)
			}
		}
	})

	t.Run("Idempotence", func(t *testing.T) {
		c := collection(
			album("1", "Family/2023", "Summer"),
			album("2", "Family", "Pets"),
			album("3", "Trips", "Coast"),
		)

		first := BuildTree(c)
		second := BuildTree(c)

		var render func(n *TreeNode) string
		render = func(n *TreeNode) string {
			var sb strings.Builder
			sb.WriteString(n.Name + "(")
			for _, a := range n.Albums {
				sb.WriteString(a.UUID + ",")
			}
			for _, child := range n.Nodes {
				sb.WriteString(render(child))
			}
			sb.WriteString(")")
			return sb.String()
		}

		if render(first) != render(second) {
			t.Errorf("two builds over the same input differ:\n%s\n%s", render(first), render(second))
		}
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		a := album("1", "Family/2023", "Summer")
		c := collection(a)

		BuildTree(c)

		if a.Path != "Family/2023" || a.Title != "Summer" {
			t.Errorf("input record mutated: %+v", a)
		}
		if len(c) != 1 {
			t.Errorf("input collection mutated, len %d", len(c))
		}
	})

	t.Run("BackslashIsOrdinaryCharacter", func(t *testing.T) {
		root := BuildTree(collection(album("1", `Family\2023`, "Summer")))

		if len(root.Nodes) != 1 || root.Nodes[0].Name != `Family\2023` {
			t.Errorf("backslash path should form one segment, got %+v", root.Nodes)
		}
	})
}

func TestBuildTreeWith(t *testing.T) {
	t.Run("CustomComparator", func(t *testing.T) {
		// Reverse ordering proves the injected comparator is honored.
		reverse := func(a, b string) int { return strings.Compare(b, a) }

		root := BuildTreeWith(collection(
			album("a", "A", "First"),
			album("z", "Z", "Last"),
		), reverse)

		if root.Nodes[0].Name != "Z" || root.Nodes[1].Name != "A" {
			t.Errorf("expected reversed order [Z A], got [%s %s]", root.Nodes[0].Name, root.Nodes[1].Name)
		}
	})

	t.Run("DeterministicAcrossMapOrder", func(t *testing.T) {
		// Build repeatedly; map iteration order varies between runs but the
		// sorted output must not.
		c := collection(
			album("1", "B", "One"),
			album("2", "A", "Two"),
			album("3", "C", "Three"),
			album("4", "A/Sub", "Four"),
		)

		cmp := NewComparer()
		want := BuildTreeWith(c, cmp)
		for i := 0; i < 10; i++ {
			got := BuildTreeWith(c, cmp)
			for j := range want.Nodes {
				if got.Nodes[j].Name != want.Nodes[j].Name {
					t.Fatalf("run %d: node order changed: %q vs %q", i, got.Nodes[j].Name, want.Nodes[j].Name)
				}
			}
		}
	})
}

func TestTreeNodeHelpers(t *testing.T) {
	c := collection(
		album("1", "Family/2023", "Summer"),
		album("2", "Family", "Pets"),
		album("3", "", "Loose"),
	)
	root := BuildTree(c)

	t.Run("Flatten", func(t *testing.T) {
		flat := root.Flatten()
		if len(flat) != 3 {
			t.Fatalf("expected 3 albums, got %d", len(flat))
		}
		// Pre-order: root albums first, then descendants.
		if flat[0].Title != "Loose" {
			t.Errorf("expected root album first, got %s", flat[0].Title)
		}
	})

	t.Run("Count", func(t *testing.T) {
		if got := root.Count(); got != 3 {
			t.Errorf("expected count 3, got %d", got)
		}
		family := root.Nodes[0]
		if got := family.Count(); got != 2 {
			t.Errorf("expected Family subtree count 2, got %d", got)
		}
	})

	t.Run("Walk", func(t *testing.T) {
		var names []string
		root.Walk(func(n *TreeNode) { names = append(names, n.Name) })
		if len(names) != 3 { // root, Family, 2023
			t.Errorf("expected 3 nodes visited, got %v", names)
		}
		if names[0] != "" || names[1] != "Family" || names[2] != "2023" {
			t.Errorf("unexpected pre-order: %v", names)
		}
	})
}
