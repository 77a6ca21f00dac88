package hierarchy

import "iter"

// VisitPreOrder calls visit for the org keyed by rootID at depth 0 and then for
// each descendant, children before later siblings, siblings in ascending id
// order.
func (f *Forest) VisitPreOrder(rootID int, visit func(n *Node, depth int)) error {
	root, err := f.GetOrg(rootID)
	if err != nil {
		return err
	}
	root.visit(0, func(n *Node, depth int) bool {
		visit(n, depth)
		return true
	})
	return nil
}

// GetOrgTree flattens the subtree under rootID in pre-order. With inclusive
// false the root itself is left out and the result holds one subtree per child.
func (f *Forest) GetOrgTree(rootID int, inclusive bool) ([]*Node, error) {
	var out []*Node
	err := f.VisitPreOrder(rootID, func(n *Node, depth int) {
		if depth > 0 || inclusive {
			out = append(out, n)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// All walks every root in ascending id order and yields each reachable org
// with its depth below its root. Orphans are never yielded.
func (f *Forest) All() iter.Seq2[*Node, int] {
	return func(yield func(*Node, int) bool) {
		for _, id := range f.rootIDs {
			if !f.orgs[id].visit(0, yield) {
				return
			}
		}
	}
}
