package domain

// User represents a GitHub user returned by the user search endpoint.
// The login is the unique identifier, case-sensitive as returned by the API.
type User struct {
	Login string `json:"login"`
}
