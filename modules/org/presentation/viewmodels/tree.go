package viewmodels

type OrgTreeNode struct {
	ID         int    `json:"id" yaml:"id"`
	ParentID   int    `json:"parent_id" yaml:"parent_id"`
	Name       string `json:"name" yaml:"name"`
	Depth      int    `json:"depth" yaml:"depth"`
	TotalUsers int    `json:"total_users" yaml:"total_users"`
	TotalFiles int    `json:"total_files" yaml:"total_files"`
	// Two decimal places; "0.00" when the subtree has no users.
	FilesPerUser string `json:"files_per_user" yaml:"files_per_user"`
}

type OrgTree struct {
	RunID string        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Nodes []OrgTreeNode `json:"nodes" yaml:"nodes"`
}
