package hierarchy

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/org-rollup/modules/org/domain/records"
)

var testOrgLines = []string{
	"1, null, root1",
	"2, 1, root1.A",
	"3, 1, root1.B",
	"21, 2, root1.A.1",
	"22, 2, root1.A.2",
	"23, 22, root1.A.2.a",
	"31, 3, root1.B.1",
	"32, 3, root1.B.2",
	"321, 32, root1.B.2.a",
	"4, null, root2",
	"41, 4, root2.A",
	"42, 4, root2.B",
}

var expectedPreOrder = []int{1, 2, 21, 22, 23, 3, 31, 32, 321, 4, 41, 42}

func testOrgs(t *testing.T) []records.OrgRecord {
	t.Helper()
	out := make([]records.OrgRecord, 0, len(testOrgLines))
	for _, line := range testOrgLines {
		rec, err := records.ParseOrg(line)
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func swapOrgs(orgs []records.OrgRecord, id1, id2 int) {
	i := indexOf(orgs, id1)
	j := indexOf(orgs, id2)
	orgs[i], orgs[j] = orgs[j], orgs[i]
}

func indexOf(orgs []records.OrgRecord, id int) int {
	for i, o := range orgs {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func preOrderIDs(t *testing.T, f *Forest, inclusive bool) []int {
	t.Helper()
	var ids []int
	for _, rootID := range f.RootIDs() {
		tree, err := f.GetOrgTree(rootID, inclusive)
		require.NoError(t, err)
		for _, n := range tree {
			ids = append(ids, n.ID())
		}
	}
	return ids
}

func TestGenerate(t *testing.T) {
	orgs := testOrgs(t)
	f := Generate(orgs)

	require.Equal(t, []int{1, 4}, f.RootIDs())
	require.Equal(t, len(orgs), f.Count())
	require.Empty(t, f.Diagnostics())

	org, err := f.GetOrg(4)
	require.NoError(t, err)
	require.Len(t, org.Children(), 2)

	org, err = f.GetOrg(22)
	require.NoError(t, err)
	require.Len(t, org.Children(), 1)
	require.Equal(t, "root1.A.2", org.Name())
}

func TestGenerate_SmallScenarioPermuted(t *testing.T) {
	base := []records.OrgRecord{
		{ID: 1, ParentID: 0, Name: "root1"},
		{ID: 2, ParentID: 1, Name: "A"},
		{ID: 3, ParentID: 1, Name: "B"},
		{ID: 21, ParentID: 2, Name: "A.1"},
	}
	permuted := append([]records.OrgRecord(nil), base...)
	swapOrgs(permuted, 1, 21)

	for _, orgs := range [][]records.OrgRecord{base, permuted} {
		f := Generate(orgs)
		require.Equal(t, []int{1}, f.RootIDs())

		root, err := f.GetOrg(1)
		require.NoError(t, err)
		require.Equal(t, []int{2, 3}, childIDs(root))

		a, err := f.GetOrg(2)
		require.NoError(t, err)
		require.Equal(t, []int{21}, childIDs(a))
	}
}

func TestGenerate_OutOfOrder(t *testing.T) {
	orgs := testOrgs(t)
	swapOrgs(orgs, 1, 23)
	swapOrgs(orgs, 2, 22)
	swapOrgs(orgs, 4, 1)
	swapOrgs(orgs, 21, 42)

	f := Generate(orgs)
	require.Equal(t, len(orgs), f.Count())
	require.Equal(t, expectedPreOrder, preOrderIDs(t, f, true))
}

func TestGenerate_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	want := Generate(testOrgs(t))

	for i := 0; i < 50; i++ {
		orgs := testOrgs(t)
		rng.Shuffle(len(orgs), func(a, b int) { orgs[a], orgs[b] = orgs[b], orgs[a] })

		got := Generate(orgs)
		require.Equal(t, want.RootIDs(), got.RootIDs())
		require.Equal(t, want.Count(), got.Count())
		for _, rec := range orgs {
			w, err := want.GetOrg(rec.ID)
			require.NoError(t, err)
			g, err := got.GetOrg(rec.ID)
			require.NoError(t, err)
			require.Equal(t, childIDs(w), childIDs(g), "children of %d", rec.ID)
		}
		require.Equal(t, expectedPreOrder, preOrderIDs(t, got, true))
	}
}

func TestGenerate_ParentIDGreaterThanOrgID(t *testing.T) {
	f := Generate([]records.OrgRecord{
		{ID: 5, ParentID: 0, Name: "5"},
		{ID: 2, ParentID: 5, Name: "5.2"},
		{ID: 1, ParentID: 2, Name: "5.2.3"},
	})

	require.Equal(t, 3, f.Count())
	require.Equal(t, []int{5}, f.RootIDs())

	n, err := f.GetOrg(5)
	require.NoError(t, err)
	require.Equal(t, []int{2}, childIDs(n))
	n, err = f.GetOrg(2)
	require.NoError(t, err)
	require.Equal(t, []int{1}, childIDs(n))
	n, err = f.GetOrg(1)
	require.NoError(t, err)
	require.Empty(t, n.Children())
}

func TestGenerate_DuplicateOrgIDs(t *testing.T) {
	f := Generate([]records.OrgRecord{
		{ID: 1, ParentID: 0, Name: "Root 1"},
		{ID: 1, ParentID: 0, Name: "Root 2"},
	})

	require.Equal(t, 1, f.Count())
	require.Equal(t, []int{1}, f.RootIDs())
	org, err := f.GetOrg(1)
	require.NoError(t, err)
	require.Equal(t, "Root 1", org.Name())

	diags := f.Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, DiagnosticDuplicateOrg, diags[0].Kind)
	require.Equal(t, "Root 2", diags[0].Name)
}

func TestGenerate_DuplicateIsNotLinked(t *testing.T) {
	f := Generate([]records.OrgRecord{
		{ID: 1, ParentID: 0, Name: "root"},
		{ID: 2, ParentID: 1, Name: "first"},
		{ID: 2, ParentID: 9, Name: "second"},
		{ID: 9, ParentID: 0, Name: "other root"},
	})

	require.Equal(t, 3, f.Count())
	require.Equal(t, []int{1, 9}, f.RootIDs())
	nine, err := f.GetOrg(9)
	require.NoError(t, err)
	require.Empty(t, nine.Children())
	require.Equal(t, []int{1, 2, 9}, preOrderIDs(t, f, true))
	require.Empty(t, f.Orphans())
}

func TestGenerate_OrphansAreRegisteredButNotTraversed(t *testing.T) {
	f := Generate([]records.OrgRecord{
		{ID: 1, ParentID: 0, Name: "root"},
		{ID: 12, ParentID: 99, Name: "lost b"},
		{ID: 11, ParentID: 99, Name: "lost a"},
		{ID: 13, ParentID: 12, Name: "under lost"},
		{ID: 2, ParentID: 1, Name: "kept"},
		{ID: 30, ParentID: 77, Name: "lost c"},
	})

	require.Equal(t, 6, f.Count())
	require.Equal(t, []int{1, 2}, preOrderIDs(t, f, true))

	orphan, err := f.GetOrg(12)
	require.NoError(t, err)
	require.Equal(t, []int{13}, childIDs(orphan))
	require.False(t, orphan.Attached())

	require.Equal(t, map[int][]int{99: {11, 12}, 77: {30}}, f.Orphans())

	var got []int
	for _, d := range f.Diagnostics() {
		require.Equal(t, DiagnosticOrphanedOrg, d.Kind)
		got = append(got, d.OrgID)
	}
	require.Equal(t, []int{30, 11, 12}, got)
}

func TestGenerate_SelfParentAndCycle(t *testing.T) {
	f := Generate([]records.OrgRecord{
		{ID: 1, ParentID: 0, Name: "root"},
		{ID: 5, ParentID: 5, Name: "self"},
		{ID: 7, ParentID: 8, Name: "loop a"},
		{ID: 8, ParentID: 7, Name: "loop b"},
	})

	require.Equal(t, 4, f.Count())
	require.Equal(t, []int{1}, preOrderIDs(t, f, true))

	kinds := map[DiagnosticKind]int{}
	for _, d := range f.Diagnostics() {
		kinds[d.Kind]++
	}
	require.Equal(t, map[DiagnosticKind]int{DiagnosticSelfParented: 1, DiagnosticLinkRejected: 1}, kinds)

	seven, err := f.GetOrg(7)
	require.NoError(t, err)
	require.Equal(t, []int{8}, childIDs(seven))
	require.False(t, seven.Attached())
}

func TestGetOrg_NotFound(t *testing.T) {
	f := Generate(testOrgs(t))
	_, err := f.GetOrg(1000)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestForest_IDsIsRootAndPath(t *testing.T) {
	f := Generate(append(testOrgs(t), records.OrgRecord{ID: 500, ParentID: 400, Name: "lost"}))

	ids := f.IDs()
	require.Len(t, ids, 13)
	require.Equal(t, 1, ids[0])
	require.Equal(t, 500, ids[len(ids)-1])

	require.True(t, f.IsRoot(4))
	require.False(t, f.IsRoot(41))
	require.False(t, f.IsRoot(500))

	n, err := f.GetOrg(321)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 32, 321}, n.Path())

	lost, err := f.GetOrg(500)
	require.NoError(t, err)
	require.Equal(t, []int{500}, lost.Path())
}
