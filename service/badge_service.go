package service

import (
	"context"
	"errors"

	"github.com/FlorianRuen/langs-badge/badge"
	"github.com/FlorianRuen/langs-badge/colors"
	"github.com/FlorianRuen/langs-badge/config"
	"github.com/FlorianRuen/langs-badge/logger"
	"github.com/FlorianRuen/langs-badge/model"
	"github.com/FlorianRuen/langs-badge/usage"
	log "github.com/sirupsen/logrus"
)

// BadgeOptions parameterizes a single badge request
type BadgeOptions struct {
	Username string

	// which repositories are aggregated according to their fork status
	Forks model.ForkFilter

	// number of legend entries, 0 shows every language
	LegendLimit int

	// use the github token (when configured) to fetch the data
	Authenticated bool
}

type BadgeService interface {
	RenderLanguagesBadge(ctx context.Context, opts BadgeOptions) (string, error)
}

type badgeService struct {
	authenticated GithubService
	public        GithubService
	config        config.Config
}

// NewBadgeService creates the pipeline used by every badge endpoint
// authenticated may be nil when no token is configured, public is then used for every request
func NewBadgeService(config config.Config, authenticated GithubService, public GithubService) BadgeService {
	if authenticated == nil {
		authenticated = public
	}

	return badgeService{
		authenticated: authenticated,
		public:        public,
		config:        config,
	}
}

// RenderLanguagesBadge fetches the languages of the user repositories, ranks them and renders the SVG badge
// a user without any language gets a "no data" badge
func (s badgeService) RenderLanguagesBadge(ctx context.Context, opts BadgeOptions) (string, error) {
	githubService := s.public
	if opts.Authenticated {
		githubService = s.authenticated
	}

	maps, err := githubService.FetchUsage(ctx, opts.Username, opts.Forks)
	if err != nil {
		return "", err
	}

	aggregated, err := usage.Aggregate(maps)
	if err != nil {
		return "", err
	}

	// every language is ranked, the legend limit is applied by the renderer
	// so that the bar still shows all of them
	entries, err := usage.Rank(aggregated, colors.Lookup, 0)
	if errors.Is(err, model.ErrDivisionUndefined) {
		logger.FromContext(ctx).WithField("username", opts.Username).Info("no language found for user, will render an empty badge")
		entries = nil
	} else if err != nil {
		return "", err
	}

	legendLimit := opts.LegendLimit
	if legendLimit <= 0 {
		legendLimit = len(entries)
	}

	logger.FromContext(ctx).WithFields(log.Fields{
		"username":     opts.Username,
		"repositories": len(maps),
		"languages":    len(entries),
		"legendLimit":  legendLimit,
	}).Debug("render languages badge")

	return badge.Render(entries, model.NewRenderConfig(legendLimit))
}
