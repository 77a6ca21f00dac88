package mappers

import (
	"github.com/shopspring/decimal"

	"github.com/iota-uz/org-rollup/modules/org/presentation/viewmodels"
	"github.com/iota-uz/org-rollup/modules/org/services"
)

const filesPerUserPlaces = 2

// RollupToTree flattens a rollup into report order. Orphans are not part of
// any root's subtree and are left out.
func RollupToTree(r *services.Rollup) *viewmodels.OrgTree {
	tree := RowsToTree(r.Rows())
	tree.RunID = r.RunID().String()
	return tree
}

func RowsToTree(rows []services.ReportRow) *viewmodels.OrgTree {
	out := make([]viewmodels.OrgTreeNode, 0, len(rows))
	for _, row := range rows {
		out = append(out, viewmodels.OrgTreeNode{
			ID:           row.ID,
			ParentID:     row.ParentID,
			Name:         row.Name,
			Depth:        row.Depth,
			TotalUsers:   row.TotalUsers,
			TotalFiles:   row.TotalFiles,
			FilesPerUser: FilesPerUser(row.TotalFiles, row.TotalUsers).StringFixed(filesPerUserPlaces),
		})
	}
	return &viewmodels.OrgTree{Nodes: out}
}

// FilesPerUser is files/users rounded half away from zero to two places.
func FilesPerUser(files, users int) decimal.Decimal {
	if users == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(files)).
		DivRound(decimal.NewFromInt(int64(users)), filesPerUserPlaces)
}
