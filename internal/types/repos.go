package types

// NoDescription is shown for repositories without a description.
const NoDescription = "No description available."

// Repo is one entry of the repository gallery.
type Repo struct {
	Index       int     `json:"index" yaml:"index"` // 1-based, in fetch order
	Name        string  `json:"name" yaml:"name"`
	URL         string  `json:"url" yaml:"url"`
	Preview     *string `json:"preview" yaml:"preview"`
	Description string  `json:"description" yaml:"description"`
}

// RepoPage is one display page of the gallery.
type RepoPage struct {
	Page       int    `json:"page" yaml:"page"`
	PerPage    int    `json:"perPage" yaml:"perPage"`
	TotalPages int    `json:"totalPages" yaml:"totalPages"`
	Total      int    `json:"total" yaml:"total"`
	Repos      []Repo `json:"repos" yaml:"repos"`
}

// HasPrevious reports whether a page exists before this one.
func (p *RepoPage) HasPrevious() bool {
	return p.Page > 1
}

// HasNext reports whether a page exists after this one.
func (p *RepoPage) HasNext() bool {
	return p.Page < p.TotalPages
}
