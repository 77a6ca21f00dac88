package writers

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/org-rollup/modules/org/presentation/viewmodels"
)

const DefaultSheet = "Orgs"

var xlsxHeader = []interface{}{"ID", "Parent ID", "Name", "Depth", "Total Users", "Total Files", "Files Per User"}

// XLSXWriter writes a single-sheet workbook. The name column is indented by
// depth so the hierarchy stays readable in a spreadsheet.
type XLSXWriter struct {
	Sheet string
}

func (XLSXWriter) Format() string { return "xlsx" }

func (xw XLSXWriter) Write(w io.Writer, tree *viewmodels.OrgTree) error {
	sheet := xw.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "header style")
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return errors.Wrap(err, "apply header style")
	}

	indentStyles := map[int]int{}
	for i, n := range tree.Nodes {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		perUser, err := decimal.NewFromString(n.FilesPerUser)
		if err != nil {
			perUser = decimal.Zero
		}
		values := []interface{}{n.ID, n.ParentID, n.Name, n.Depth, n.TotalUsers, n.TotalFiles, perUser.InexactFloat64()}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.Wrapf(err, "write row %d", row)
		}

		if n.Depth == 0 {
			continue
		}
		styleID, ok := indentStyles[n.Depth]
		if !ok {
			styleID, err = f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Indent: n.Depth}})
			if err != nil {
				return errors.Wrapf(err, "indent style %d", n.Depth)
			}
			indentStyles[n.Depth] = styleID
		}
		nameCell, err := excelize.CoordinatesToCellName(3, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, nameCell, nameCell, styleID); err != nil {
			return errors.Wrapf(err, "style row %d", row)
		}
	}

	if err := f.SetColWidth(sheet, "C", "C", 32); err != nil {
		return errors.Wrap(err, "column width")
	}
	return f.Write(w)
}
