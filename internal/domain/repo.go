package domain

// NoDescription is shown in place of an absent repository description.
const NoDescription = "No description"

// NoRepositories is shown when a user has no public repositories.
const NoRepositories = "No repositories found."

// Repo represents a public GitHub repository
type Repo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	StarCount   int     `json:"stargazers_count"`
	URL         string  `json:"html_url"`
}

// DisplayDescription returns the description, substituting NoDescription
// when the API returned null or an empty string.
func (r *Repo) DisplayDescription() string {
	if r.Description == nil || *r.Description == "" {
		return NoDescription
	}
	return *r.Description
}
