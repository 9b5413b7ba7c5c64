package pretty

import (
	"github.com/charmbracelet/lipgloss/tree"
)

// TreeNode is a labelled node for tree output. Detail is rendered dimmed
// after the label.
type TreeNode struct {
	Label    string
	Detail   string
	Children []TreeNode
}

// FormatTree renders node and its descendants with rounded branch guides.
func (s *Styles) FormatTree(node TreeNode) string {
	root := s.subtree(node).
		RootStyle(s.TreeRoot)
	return root.String() + "\n"
}

func (s *Styles) subtree(node TreeNode) *tree.Tree {
	t := tree.Root(s.label(node)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.TreeEnumerator).
		ItemStyle(s.TreeItem)
	for _, child := range node.Children {
		if len(child.Children) == 0 {
			t.Child(s.label(child))
			continue
		}
		t.Child(s.subtree(child))
	}
	return t
}

func (s *Styles) label(node TreeNode) string {
	if node.Detail == "" {
		return node.Label
	}
	return node.Label + " " + s.TreeDetail.Render(node.Detail)
}
