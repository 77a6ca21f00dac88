// Package writers renders an org tree report in one of several formats.
package writers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iota-uz/org-rollup/modules/org/presentation/viewmodels"
)

type Writer interface {
	Format() string
	Write(w io.Writer, tree *viewmodels.OrgTree) error
}

var registry = map[string]func() Writer{
	"text": func() Writer { return TextWriter{} },
	"json": func() Writer { return JSONWriter{Indent: "  "} },
	"yaml": func() Writer { return YAMLWriter{} },
	"xlsx": func() Writer { return XLSXWriter{Sheet: DefaultSheet} },
}

// New returns the writer registered for format (case-insensitive).
func New(format string) (Writer, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unsupported report format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return ctor(), nil
}

func Formats() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
