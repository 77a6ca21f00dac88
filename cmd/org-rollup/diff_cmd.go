package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/spf13/cobra"
	"github.com/wI2L/jsondiff"

	"github.com/iota-uz/org-rollup/modules/org/presentation/viewmodels"
)

type diffOutput struct {
	Command string         `json:"command"`
	Changes int            `json:"changes"`
	Patch   jsondiff.Patch `json:"patch"`
}

func newDiffCmd() *cobra.Command {
	var failOnChange bool

	cmd := &cobra.Command{
		Use:   "diff <old-report.json> <new-report.json>",
		Short: "Print the JSON Patch that turns one JSON report into another",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := readReport(args[0])
			if err != nil {
				return err
			}
			after, err := readReport(args[1])
			if err != nil {
				return err
			}
			patch, err := diffReports(before, after)
			if err != nil {
				return withCode(exitValidation, err)
			}
			if patch == nil {
				patch = jsondiff.Patch{}
			}
			if err := writeJSONLine(cmd.OutOrStdout(), diffOutput{Command: "diff", Changes: len(patch), Patch: patch}); err != nil {
				return err
			}
			if failOnChange && len(patch) > 0 {
				return withCode(exitValidation, fmt.Errorf("reports differ: %d change(s)", len(patch)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnChange, "fail-on-change", false, "Exit with the validation code when the reports differ")
	return cmd
}

// readReport loads a JSON report and re-encodes it without its run id, which
// differs on every run.
func readReport(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, withCode(exitUsage, fmt.Errorf("read %s: %w", path, err))
		}
		return nil, withCode(exitIO, fmt.Errorf("read %s: %w", path, err))
	}
	var tree viewmodels.OrgTree
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tree); err != nil {
		return nil, withCode(exitValidation, fmt.Errorf("decode %s: %w", path, err))
	}
	tree.RunID = ""
	if tree.Nodes == nil {
		tree.Nodes = []viewmodels.OrgTreeNode{}
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return nil, withCode(exitIO, fmt.Errorf("json marshal: %w", err))
	}
	return out, nil
}

// diffReports computes the patch and checks that applying it to before
// reproduces after.
func diffReports(before, after []byte) (jsondiff.Patch, error) {
	patch, err := jsondiff.CompareJSON(before, after)
	if err != nil {
		return nil, fmt.Errorf("compare reports: %w", err)
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("json marshal patch: %w", err)
	}
	decoded, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	applied, err := decoded.Apply(before)
	if err != nil {
		return nil, fmt.Errorf("apply patch: %w", err)
	}
	if !jsonpatch.Equal(applied, after) {
		return nil, fmt.Errorf("patch does not reproduce the new report")
	}
	return patch, nil
}
