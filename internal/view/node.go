// Package view renders catalog state into a plain node tree. Rendering is
// total: every call builds a fresh tree from its input and never mutates it.
package view

import "strings"

// Kind classifies a node for the painter
type Kind string

const (
	KindContainer Kind = "container"
	KindCard      Kind = "card"
	KindTitle     Kind = "title"
	KindText      Kind = "text"
	KindBadge     Kind = "badge"
	KindField     Kind = "field"
	KindImage     Kind = "image"
	KindButton    Kind = "button"
	KindEmpty     Kind = "empty"
	KindHeading   Kind = "heading"
)

// ActionKind is what activating a node does
type ActionKind string

const (
	ActionInstall        ActionKind = "install"
	ActionUninstall      ActionKind = "uninstall"
	ActionDetails        ActionKind = "details"
	ActionAddFromStore   ActionKind = "add-from-store"
	ActionUpdateMetadata ActionKind = "update-metadata"
	ActionNavigate       ActionKind = "navigate"
	ActionFilter         ActionKind = "filter"
)

// Action binds a node to a controller handler
type Action struct {
	Kind    ActionKind
	GameID  string
	StoreID int64
	Target  string // Section or filter for navigate/filter actions
}

// Node is one element of a rendered view
type Node struct {
	Kind     Kind
	Class    string
	Text     string
	Src      string // Image URL for KindImage
	Hidden   bool
	Active   bool
	Action   *Action
	Children []Node
}

func el(kind Kind, class, text string) Node {
	return Node{Kind: kind, Class: class, Text: text}
}

func container(class string, children ...Node) Node {
	return Node{Kind: KindContainer, Class: class, Children: children}
}

func button(class, label string, action Action) Node {
	return Node{Kind: KindButton, Class: class, Text: label, Action: &action}
}

// Text returns the visible text of a tree, depth-first, one line per
// text-bearing node. Hidden subtrees are skipped.
func Text(n Node) string {
	var lines []string
	walk(n, func(node Node) bool {
		if node.Hidden {
			return false
		}
		if node.Text != "" {
			lines = append(lines, node.Text)
		}
		return true
	})
	return strings.Join(lines, "\n")
}

// Actions returns every visible action in tree order
func Actions(n Node) []Action {
	var actions []Action
	walk(n, func(node Node) bool {
		if node.Hidden {
			return false
		}
		if node.Action != nil {
			actions = append(actions, *node.Action)
		}
		return true
	})
	return actions
}

// Find returns the first node with the given class, hidden or not
func Find(n Node, class string) (Node, bool) {
	var found Node
	var ok bool
	walk(n, func(node Node) bool {
		if ok {
			return false
		}
		if node.Class == class {
			found, ok = node, true
			return false
		}
		return true
	})
	return found, ok
}

// FindAll returns every node with the given class
func FindAll(n Node, class string) []Node {
	var nodes []Node
	walk(n, func(node Node) bool {
		if node.Class == class {
			nodes = append(nodes, node)
		}
		return true
	})
	return nodes
}

// walk visits nodes depth-first; returning false skips the children
func walk(n Node, visit func(Node) bool) {
	if !visit(n) {
		return
	}
	for _, child := range n.Children {
		walk(child, visit)
	}
}

// Cards returns the visible card nodes of a tree in order
func Cards(n Node) []Node {
	var cards []Node
	walk(n, func(node Node) bool {
		if node.Hidden {
			return false
		}
		if node.Kind == KindCard {
			cards = append(cards, node)
			return false
		}
		return true
	})
	return cards
}

// ActionOf returns the first visible action of the given kinds in a tree
func ActionOf(n Node, kinds ...ActionKind) (Action, bool) {
	for _, a := range Actions(n) {
		for _, k := range kinds {
			if a.Kind == k {
				return a, true
			}
		}
	}
	return Action{}, false
}
