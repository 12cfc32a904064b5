package github

import "encoding/json"

// Repository represents a GitHub repository holding expression files.
type Repository struct {
	Owner         string
	Name          string
	FullName      string // owner/name
	DefaultBranch string
	Ref           string // Branch/tag/SHA to read (empty means DefaultBranch)
	Size          int64
	Fork          bool
	Archived      bool
}

// UnmarshalJSON decodes the REST API representation.
func (r *Repository) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
		Owner    struct {
			Login string `json:"login"`
		} `json:"owner"`
		DefaultBranch string `json:"default_branch"`
		Size          int64  `json:"size"`
		Fork          bool   `json:"fork"`
		Archived      bool   `json:"archived"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Repository{
		Owner:         raw.Owner.Login,
		Name:          raw.Name,
		FullName:      raw.FullName,
		DefaultBranch: raw.DefaultBranch,
		Size:          raw.Size,
		Fork:          raw.Fork,
		Archived:      raw.Archived,
	}
	return nil
}

// TreeRef returns the ref whose tree should be read.
func (r Repository) TreeRef() string {
	if r.Ref != "" {
		return r.Ref
	}
	return r.DefaultBranch
}

// TreeEntry represents a file or directory in a Git tree.
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"` // blob, tree
	SHA  string `json:"sha"`
	Size int64  `json:"size"`
}

// IsFile reports whether the entry is a regular blob (not a submodule or
// symlink).
func (e TreeEntry) IsFile() bool {
	return e.Type == "blob" && (e.Mode == "100644" || e.Mode == "100755")
}

// TreeResponse represents the GitHub API tree response.
type TreeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

type blobResponse struct {
	SHA      string `json:"sha"`
	Size     int64  `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
