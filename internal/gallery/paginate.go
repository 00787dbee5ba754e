package gallery

import (
	"slices"

	"github.com/jonathan/diploma-scanner/internal/types"
)

// Paginate returns one display page of repos. Out-of-range pages are clamped;
// perPage <= 0 means DefaultDisplayPageSize.
func Paginate(repos []types.Repo, page, perPage int) types.RepoPage {
	if perPage <= 0 {
		perPage = DefaultDisplayPageSize
	}
	total := len(repos)
	totalPages := (total + perPage - 1) / perPage

	if page < 1 || totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	out := types.RepoPage{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Total:      total,
		Repos:      []types.Repo{},
	}
	if total == 0 {
		return out
	}

	start := (page - 1) * perPage
	end := min(start+perPage, total)
	out.Repos = slices.Clone(repos[start:end])
	return out
}
