package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/FlorianRuen/langs-badge/config"
	"github.com/FlorianRuen/langs-badge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGithubService only implements FetchUsage, other methods are not called by the badge pipeline
type fakeGithubService struct {
	GithubService

	maps  []model.LanguageByteMap
	err   error
	calls int

	lastUsername string
	lastForks    model.ForkFilter
}

func (f *fakeGithubService) FetchUsage(_ context.Context, username string, forks model.ForkFilter) ([]model.LanguageByteMap, error) {
	f.calls++
	f.lastUsername = username
	f.lastForks = forks
	return f.maps, f.err
}

// TestRenderLanguagesBadge will test function RenderLanguagesBadge
func TestRenderLanguagesBadge(t *testing.T) {
	manyLanguages := []model.LanguageByteMap{
		{"Go": 800, "Shell": 100, "Makefile": 50, "Dockerfile": 20},
		{"Python": 300, "HTML": 200, "CSS": 150, "JavaScript": 120},
	}

	tests := []struct {
		name             string
		maps             []model.LanguageByteMap
		fetchErr         error
		opts             BadgeOptions
		expectedError    error
		expectedContains []string
		expectedLegend   int
		expectedBar      int
	}{
		{
			name: "Two repositories",
			maps: []model.LanguageByteMap{
				{"JavaScript": 8338, "HTML": 11870},
				{"JavaScript": 4441},
			},
			opts: BadgeOptions{Username: "octocat", LegendLimit: 6},
			expectedContains: []string{
				"JavaScript 51.84%",
				"HTML 48.16%",
				`viewBox="0 0 350 165"`,
			},
			expectedLegend: 2,
			expectedBar:    2,
		},
		{
			name:             "Legend limited to count",
			maps:             manyLanguages,
			opts:             BadgeOptions{Username: "octocat", LegendLimit: 3},
			expectedContains: []string{"Go 45.98%", `viewBox="0 0 350 165"`},
			expectedLegend:   3,
			expectedBar:      8,
		},
		{
			name:             "No legend cutoff",
			maps:             manyLanguages,
			opts:             BadgeOptions{Username: "octocat"},
			expectedContains: []string{`viewBox="0 0 350 190"`},
			expectedLegend:   8,
			expectedBar:      8,
		},
		{
			name:             "No language found",
			maps:             []model.LanguageByteMap{},
			opts:             BadgeOptions{Username: "octocat", LegendLimit: 6},
			expectedContains: []string{"No languages found", `viewBox="0 0 350 165"`},
		},
		{
			name:          "Upstream error is returned as is",
			fetchErr:      model.ErrUpstreamRequestFailed,
			opts:          BadgeOptions{Username: "octocat", LegendLimit: 6},
			expectedError: model.ErrUpstreamRequestFailed,
		},
		{
			name:          "Invalid usage value",
			maps:          []model.LanguageByteMap{{"Go": -5}},
			opts:          BadgeOptions{Username: "octocat", LegendLimit: 6},
			expectedError: model.ErrInvalidUsageValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGithubService{maps: tt.maps, err: tt.fetchErr}
			svc := NewBadgeService(*config.GetDefault(), nil, fake)

			svg, err := svc.RenderLanguagesBadge(context.Background(), tt.opts)

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Empty(t, svg)
				return
			}

			require.NoError(t, err)
			for _, expected := range tt.expectedContains {
				assert.Contains(t, svg, expected)
			}

			assert.Equal(t, tt.expectedLegend, strings.Count(svg, `data-testid="lang-name"`))
			assert.Equal(t, tt.expectedBar, strings.Count(svg, `data-testid="lang-progress"`))
			assert.Equal(t, "octocat", fake.lastUsername)
		})
	}
}

// TestRenderLanguagesBadgeClientSelection checks authenticated requests use the authenticated github service
func TestRenderLanguagesBadgeClientSelection(t *testing.T) {
	maps := []model.LanguageByteMap{{"Go": 1}}

	t.Run("Authenticated and public services", func(t *testing.T) {
		authenticated := &fakeGithubService{maps: maps}
		public := &fakeGithubService{maps: maps}
		svc := NewBadgeService(*config.GetDefault(), authenticated, public)

		_, err := svc.RenderLanguagesBadge(context.Background(), BadgeOptions{Username: "octocat", Authenticated: true, Forks: model.ForkFilter{Fork: true, Mode: model.ForkModeExact}})
		require.NoError(t, err)
		_, err = svc.RenderLanguagesBadge(context.Background(), BadgeOptions{Username: "octocat", Forks: model.ForkFilter{Mode: model.ForkModeInclude}})
		require.NoError(t, err)

		assert.Equal(t, 1, authenticated.calls)
		assert.Equal(t, model.ForkFilter{Fork: true, Mode: model.ForkModeExact}, authenticated.lastForks)
		assert.Equal(t, 1, public.calls)
		assert.Equal(t, model.ForkFilter{Mode: model.ForkModeInclude}, public.lastForks)
	})

	t.Run("No authenticated service configured", func(t *testing.T) {
		public := &fakeGithubService{maps: maps}
		svc := NewBadgeService(*config.GetDefault(), nil, public)

		_, err := svc.RenderLanguagesBadge(context.Background(), BadgeOptions{Username: "octocat", Authenticated: true})
		require.NoError(t, err)

		assert.Equal(t, 1, public.calls)
	})
}
