package writers

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/iota-uz/org-rollup/modules/org/presentation/viewmodels"
)

// TextWriter emits one line per org: "id, totalUsers, totalFiles" indented
// by one tab per level below the root.
type TextWriter struct{}

func (TextWriter) Format() string { return "text" }

func (TextWriter) Write(w io.Writer, tree *viewmodels.OrgTree) error {
	bw := bufio.NewWriter(w)
	for _, n := range tree.Nodes {
		if _, err := bw.WriteString(FormatLine(n)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func FormatLine(n viewmodels.OrgTreeNode) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\t", n.Depth))
	b.WriteString(strconv.Itoa(n.ID))
	b.WriteString(", ")
	b.WriteString(strconv.Itoa(n.TotalUsers))
	b.WriteString(", ")
	b.WriteString(strconv.Itoa(n.TotalFiles))
	return b.String()
}
