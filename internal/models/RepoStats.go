package models

type RepoStats struct {
	Stars      int `json:"stars"`
	Forks      int `json:"forks"`
	OpenIssues int `json:"open_issues"`
}
