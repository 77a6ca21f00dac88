package writers

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/iota-uz/org-rollup/modules/org/presentation/viewmodels"
)

type YAMLWriter struct{}

func (YAMLWriter) Format() string { return "yaml" }

func (YAMLWriter) Write(w io.Writer, tree *viewmodels.OrgTree) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return err
	}
	return enc.Close()
}
