package model

// GithubRepository is the subset of repository information needed to build a badge
type GithubRepository struct {
	ID         int64
	Owner      string
	Repository string
	Fork       bool
}

// GithubRepositoryLanguages is sent over the fan-out channel, one per repository
// Err is set when the languages of the repository could not be fetched
type GithubRepositoryLanguages struct {
	RepositoryID int64
	Languages    LanguageByteMap
	Err          error
}
