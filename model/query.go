package model

// BadgeQuery holds the query parameters accepted by the badge endpoints
// Count and Fork are kept as strings to mimic the lenient parsing of the public badge API
type BadgeQuery struct {
	Username string `form:"username"`
	Count    string `form:"count"`
	Fork     string `form:"fork" binding:"omitempty,oneof=true false"`
}

// ForkFilter builds the fork filter of the query for the given mode
func (q BadgeQuery) ForkFilter(mode ForkMode) ForkFilter {
	return ForkFilter{Fork: q.Fork == "true", Mode: mode}
}

// ForkMode tells how the fork flag of a request is matched against repositories
type ForkMode int

const (
	// ForkModeExact keeps repositories whose fork status equals the flag (fork=true keeps forks only)
	ForkModeExact ForkMode = iota

	// ForkModeInclude always keeps sources, forks are added when the flag is set
	ForkModeInclude
)

// ForkFilter selects the repositories used to build a badge
type ForkFilter struct {
	Fork bool
	Mode ForkMode
}

// Keep returns true when a repository with the given fork status passes the filter
func (f ForkFilter) Keep(isFork bool) bool {
	if f.Mode == ForkModeInclude {
		return f.Fork || !isFork
	}

	return isFork == f.Fork
}
