package hierarchy

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/iota-uz/org-rollup/modules/org/domain/records"
)

var ErrNotFound = errors.New("org not found")

// DiagnosticKind classifies a record the forest kept out of the tree.
type DiagnosticKind string

const (
	DiagnosticDuplicateOrg DiagnosticKind = "duplicate_org"
	DiagnosticOrphanedOrg  DiagnosticKind = "orphaned_org"
	DiagnosticSelfParented DiagnosticKind = "self_parented_org"
	DiagnosticLinkRejected DiagnosticKind = "link_rejected"
)

// Diagnostic describes a record that was discarded or could not be linked.
// None of these abort construction.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	OrgID    int            `json:"org_id" yaml:"org_id"`
	ParentID int            `json:"parent_id" yaml:"parent_id"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Message  string         `json:"message" yaml:"message"`
}

// Forest groups one or more org trees under a single id namespace.
type Forest struct {
	orgs        map[int]*Node
	rootIDs     []int
	pending     map[int][]int
	diagnostics []Diagnostic
}

// Generate builds a forest in one pass over orgs. Records may arrive in any
// order: a child seen before its parent is parked in a pending table keyed by
// the parent id and linked as soon as that parent is registered. The first
// record for an id wins; later duplicates are discarded with a diagnostic.
// Children whose parent never arrives stay registered but unreachable from
// any root and are reported as orphans.
func Generate(orgs []records.OrgRecord) *Forest {
	f := &Forest{
		orgs:    make(map[int]*Node, len(orgs)),
		pending: make(map[int][]int),
	}

	for _, rec := range orgs {
		if existing, ok := f.orgs[rec.ID]; ok {
			f.diagnostics = append(f.diagnostics, Diagnostic{
				Kind:     DiagnosticDuplicateOrg,
				OrgID:    rec.ID,
				ParentID: rec.ParentID,
				Name:     rec.Name,
				Message: fmt.Sprintf(
					"Org (%d, %d, %s) cannot be added to OrgCollection; Org %d already exists as %q",
					rec.ID, rec.ParentID, rec.Name, rec.ID, existing.Name(),
				),
			})
			continue
		}

		node := NewNode(rec)
		f.orgs[rec.ID] = node

		switch {
		case rec.IsRoot():
			f.addRootID(rec.ID)
		case rec.ParentID == rec.ID:
			f.diagnostics = append(f.diagnostics, Diagnostic{
				Kind:     DiagnosticSelfParented,
				OrgID:    rec.ID,
				ParentID: rec.ParentID,
				Name:     rec.Name,
				Message:  fmt.Sprintf("Org %d names itself as its parent", rec.ID),
			})
		default:
			if parent, ok := f.orgs[rec.ParentID]; ok {
				f.link(parent, node)
			} else {
				f.pending[rec.ParentID] = append(f.pending[rec.ParentID], rec.ID)
			}
		}

		if waiting, ok := f.pending[rec.ID]; ok {
			delete(f.pending, rec.ID)
			for _, childID := range waiting {
				f.link(node, f.orgs[childID])
			}
		}
	}

	f.diagnostics = append(f.diagnostics, f.orphanDiagnostics()...)
	return f
}

func (f *Forest) link(parent, child *Node) {
	if err := parent.AddChild(child); err != nil {
		f.diagnostics = append(f.diagnostics, Diagnostic{
			Kind:     DiagnosticLinkRejected,
			OrgID:    child.ID(),
			ParentID: child.ParentID(),
			Name:     child.Name(),
			Message:  err.Error(),
		})
	}
}

func (f *Forest) addRootID(id int) {
	i, found := slices.BinarySearch(f.rootIDs, id)
	if !found {
		f.rootIDs = slices.Insert(f.rootIDs, i, id)
	}
}

func (f *Forest) orphanDiagnostics() []Diagnostic {
	parentIDs := make([]int, 0, len(f.pending))
	for parentID := range f.pending {
		parentIDs = append(parentIDs, parentID)
	}
	sort.Ints(parentIDs)

	var out []Diagnostic
	for _, parentID := range parentIDs {
		childIDs := slices.Sorted(slices.Values(f.pending[parentID]))
		for _, childID := range childIDs {
			child := f.orgs[childID]
			out = append(out, Diagnostic{
				Kind:     DiagnosticOrphanedOrg,
				OrgID:    childID,
				ParentID: parentID,
				Name:     child.Name(),
				Message:  fmt.Sprintf("Org %d references parent %d which was never loaded", childID, parentID),
			})
		}
	}
	return out
}

// GetOrg returns the org registered under id.
func (f *Forest) GetOrg(id int) (*Node, error) {
	n, ok := f.orgs[id]
	if !ok {
		return nil, fmt.Errorf("org %d: %w", id, ErrNotFound)
	}
	return n, nil
}

// RootIDs returns the root org ids in ascending order.
func (f *Forest) RootIDs() []int {
	return slices.Clone(f.rootIDs)
}

// IDs returns every registered org id, orphans included, ascending.
func (f *Forest) IDs() []int {
	return slices.Sorted(maps.Keys(f.orgs))
}

// IsRoot reports whether id is registered as a root.
func (f *Forest) IsRoot(id int) bool {
	_, found := slices.BinarySearch(f.rootIDs, id)
	return found
}

// Count is the number of distinct org ids registered, duplicates excluded.
func (f *Forest) Count() int {
	return len(f.orgs)
}

// Diagnostics returns discarded and unlinked records: in-pass findings in
// input order, then orphans ordered by parent id and child id.
func (f *Forest) Diagnostics() []Diagnostic {
	return slices.Clone(f.diagnostics)
}

// Orphans returns the residual pending table: parent ids that never arrived
// mapped to the ids of the children waiting on them, ascending.
func (f *Forest) Orphans() map[int][]int {
	out := make(map[int][]int, len(f.pending))
	for parentID, childIDs := range f.pending {
		out[parentID] = slices.Sorted(slices.Values(childIDs))
	}
	return out
}
