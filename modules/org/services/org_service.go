package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/org-rollup/modules/org/domain/hierarchy"
	"github.com/iota-uz/org-rollup/modules/org/domain/records"
)

// DiagnosticUnknownOrg marks a user record whose org id is not in the forest.
const DiagnosticUnknownOrg hierarchy.DiagnosticKind = "unknown_org"

// ServiceError carries an HTTP-style Status: 4xx means the input was
// rejected, 5xx an internal failure.
type ServiceError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}

type RollupOptions struct {
	// StrictOrphans fails Build when any org references a missing parent.
	StrictOrphans bool
}

type RollupService struct {
	opts RollupOptions
}

func NewRollupService(opts RollupOptions) *RollupService {
	return &RollupService{opts: opts}
}

// ReportRow is one org in report order with its subtree totals.
type ReportRow struct {
	Depth      int
	ID         int
	Name       string
	ParentID   int
	TotalUsers int
	TotalFiles int
}

// Summary counts a rollup. Users and Files are applied totals: every user
// whose org exists, including orgs no root reaches. ReportedUsers and
// ReportedFiles sum the root rows, so they match the report.
type Summary struct {
	RunID           uuid.UUID `json:"run_id" yaml:"run_id"`
	Orgs            int       `json:"orgs" yaml:"orgs"`
	Roots           int       `json:"roots" yaml:"roots"`
	ReportedOrgs    int       `json:"reported_orgs" yaml:"reported_orgs"`
	Users           int       `json:"users" yaml:"users"`
	Files           int       `json:"files" yaml:"files"`
	ReportedUsers   int       `json:"reported_users" yaml:"reported_users"`
	ReportedFiles   int       `json:"reported_files" yaml:"reported_files"`
	Duplicates      int       `json:"duplicates" yaml:"duplicates"`
	Orphans         int       `json:"orphans" yaml:"orphans"`
	UnknownOrgUsers int       `json:"unknown_org_users" yaml:"unknown_org_users"`
}

// Rollup is a forest with user metrics applied.
type Rollup struct {
	runID        uuid.UUID
	forest       *hierarchy.Forest
	diagnostics  []hierarchy.Diagnostic
	users        int
	files        int
	unknownUsers int
}

// Build generates the forest from orgs and attributes every user to its
// org. Users pointing at an unknown org are skipped and reported.
func (s *RollupService) Build(ctx context.Context, orgs []records.OrgRecord, users []records.UserRecord) (*Rollup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recordRecordsLoaded("org", len(orgs))
	recordRecordsLoaded("user", len(users))

	forest := hierarchy.Generate(orgs)
	r := &Rollup{
		runID:       uuid.New(),
		forest:      forest,
		diagnostics: forest.Diagnostics(),
	}

	for _, user := range users {
		node, err := forest.GetOrg(user.OrgID)
		if errors.Is(err, hierarchy.ErrNotFound) {
			r.unknownUsers++
			r.diagnostics = append(r.diagnostics, hierarchy.Diagnostic{
				Kind:    DiagnosticUnknownOrg,
				OrgID:   user.OrgID,
				Message: fmt.Sprintf("User %d references unknown Org %d and was skipped", user.UserID, user.OrgID),
			})
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := node.AddUserMetrics(user); err != nil {
			return nil, newServiceError(500, "ORG_USER_REJECTED", "user metrics could not be applied", err)
		}
		r.users++
		r.files += user.NumFiles
	}

	for _, d := range r.diagnostics {
		recordDiagnostic(d.Kind)
		logWithFields(ctx, logrus.WarnLevel, d.Message, logrus.Fields{
			"run_id":    r.runID.String(),
			"kind":      string(d.Kind),
			"org_id":    d.OrgID,
			"parent_id": d.ParentID,
		})
	}

	summary := r.Summary()
	if s.opts.StrictOrphans && summary.Orphans > 0 {
		return nil, newServiceError(422, "ORG_ORPHANED",
			fmt.Sprintf("%d org(s) reference a parent that does not exist", summary.Orphans), nil)
	}

	logWithFields(ctx, logrus.InfoLevel, "Rollup built", logrus.Fields{
		"run_id":        summary.RunID.String(),
		"orgs":          summary.Orgs,
		"roots":         summary.Roots,
		"users":         summary.Users,
		"files":         summary.Files,
		"diagnostics":   len(r.diagnostics),
		"reported_orgs": summary.ReportedOrgs,
	})
	return r, nil
}

func (r *Rollup) RunID() uuid.UUID { return r.runID }

func (r *Rollup) Forest() *hierarchy.Forest { return r.forest }

// Diagnostics returns forest diagnostics followed by skipped users.
func (r *Rollup) Diagnostics() []hierarchy.Diagnostic {
	out := make([]hierarchy.Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Rows lists every reachable org in report order: roots ascending, each
// followed by its subtree in pre-order.
func (r *Rollup) Rows() []ReportRow {
	rows := make([]ReportRow, 0, r.forest.Count())
	for n, depth := range r.forest.All() {
		rows = append(rows, ReportRow{
			Depth:      depth,
			ID:         n.ID(),
			Name:       n.Name(),
			ParentID:   n.ParentID(),
			TotalUsers: n.TotalUsers(),
			TotalFiles: n.TotalFiles(),
		})
	}
	return rows
}

func (r *Rollup) Summary() Summary {
	s := Summary{
		RunID:           r.runID,
		Orgs:            r.forest.Count(),
		Roots:           len(r.forest.RootIDs()),
		Users:           r.users,
		Files:           r.files,
		UnknownOrgUsers: r.unknownUsers,
	}
	for n, depth := range r.forest.All() {
		s.ReportedOrgs++
		if depth == 0 {
			s.ReportedUsers += n.TotalUsers()
			s.ReportedFiles += n.TotalFiles()
		}
	}
	for _, d := range r.diagnostics {
		switch d.Kind {
		case hierarchy.DiagnosticDuplicateOrg:
			s.Duplicates++
		case hierarchy.DiagnosticOrphanedOrg:
			s.Orphans++
		}
	}
	return s
}
