package writers

import (
	"encoding/json"
	"io"

	"github.com/iota-uz/org-rollup/modules/org/presentation/viewmodels"
)

type JSONWriter struct {
	Indent string
}

func (JSONWriter) Format() string { return "json" }

func (jw JSONWriter) Write(w io.Writer, tree *viewmodels.OrgTree) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if jw.Indent != "" {
		enc.SetIndent("", jw.Indent)
	}
	return enc.Encode(tree)
}
