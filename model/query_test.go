package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForkFilterKeep(t *testing.T) {
	tests := []struct {
		name        string
		filter      ForkFilter
		keepFork    bool
		keepNonFork bool
	}{
		{name: "Exact match without forks", filter: ForkFilter{Fork: false, Mode: ForkModeExact}, keepFork: false, keepNonFork: true},
		{name: "Exact match with forks", filter: ForkFilter{Fork: true, Mode: ForkModeExact}, keepFork: true, keepNonFork: false},
		{name: "Include without forks", filter: ForkFilter{Fork: false, Mode: ForkModeInclude}, keepFork: false, keepNonFork: true},
		{name: "Include with forks", filter: ForkFilter{Fork: true, Mode: ForkModeInclude}, keepFork: true, keepNonFork: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keepFork, tt.filter.Keep(true))
			assert.Equal(t, tt.keepNonFork, tt.filter.Keep(false))
		})
	}
}

func TestBadgeQueryForkFilter(t *testing.T) {
	assert.Equal(t, ForkFilter{Fork: true, Mode: ForkModeExact}, BadgeQuery{Fork: "true"}.ForkFilter(ForkModeExact))
	assert.Equal(t, ForkFilter{Fork: false, Mode: ForkModeInclude}, BadgeQuery{}.ForkFilter(ForkModeInclude))
	assert.Equal(t, ForkFilter{Fork: false, Mode: ForkModeExact}, BadgeQuery{Fork: "false"}.ForkFilter(ForkModeExact))
}
