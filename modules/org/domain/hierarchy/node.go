package hierarchy

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/iota-uz/org-rollup/modules/org/domain/records"
)

// ArgumentError reports a link or metric that does not belong to the target node.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// Node is a single org. Identity fields never change after NewNode; children
// are kept sorted by ascending id so traversal order does not depend on the
// order records arrived in.
type Node struct {
	id       int
	parentID int
	name     string

	parent   *Node
	children []*Node

	userCount int
	fileCount int
}

func NewNode(rec records.OrgRecord) *Node {
	return &Node{id: rec.ID, parentID: rec.ParentID, name: rec.Name}
}

func (n *Node) ID() int       { return n.id }
func (n *Node) ParentID() int { return n.parentID }
func (n *Node) Name() string  { return n.name }

// Attached reports whether the node has been linked under its parent.
func (n *Node) Attached() bool { return n.parent != nil }

// AddChild links child under n. The child must name n as its parent, must not
// already be linked, and must not be n or one of n's ancestors.
func (n *Node) AddChild(child *Node) error {
	if child.parentID != n.id {
		return &ArgumentError{Message: fmt.Sprintf(
			"Org %d has ParentId %d and cannot be added to %d", child.id, child.parentID, n.id,
		)}
	}
	if child.parent != nil {
		return &ArgumentError{Message: fmt.Sprintf(
			"Org %d is already a child of %d", child.id, child.parent.id,
		)}
	}
	for a := n; a != nil; a = a.parent {
		if a == child {
			return &ArgumentError{Message: fmt.Sprintf(
				"Org %d cannot be added to %d: it would create a cycle", child.id, n.id,
			)}
		}
	}

	i, _ := slices.BinarySearchFunc(n.children, child.id, func(c *Node, id int) int {
		return cmp.Compare(c.id, id)
	})
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
	return nil
}

// AddUserMetrics adds one user and its files to the local counts. Applying the
// same user twice counts it twice.
func (n *Node) AddUserMetrics(user records.UserRecord) error {
	if user.OrgID != n.id {
		return &ArgumentError{Message: fmt.Sprintf(
			"User %d does not belong directly to Org %d", user.UserID, n.id,
		)}
	}
	n.userCount++
	n.fileCount += user.NumFiles
	return nil
}

// Path lists ids from the topmost linked ancestor down to n. For an orphan the
// first id is the orphan subtree's top, not a root.
func (n *Node) Path() []int {
	var ids []int
	for a := n; a != nil; a = a.parent {
		ids = append(ids, a.id)
	}
	slices.Reverse(ids)
	return ids
}

// Children returns the direct children ordered by ascending id.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// UserCount is the number of users reporting directly to n.
func (n *Node) UserCount() int { return n.userCount }

// FileCount is the number of files owned by users reporting directly to n.
func (n *Node) FileCount() int { return n.fileCount }

// TotalUsers sums local users over the whole subtree. Not cached.
func (n *Node) TotalUsers() int {
	total := n.userCount
	for _, c := range n.children {
		total += c.TotalUsers()
	}
	return total
}

// TotalFiles sums local files over the whole subtree. Not cached.
func (n *Node) TotalFiles() int {
	total := n.fileCount
	for _, c := range n.children {
		total += c.TotalFiles()
	}
	return total
}

func (n *Node) visit(depth int, fn func(*Node, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.children {
		if !c.visit(depth+1, fn) {
			return false
		}
	}
	return true
}
