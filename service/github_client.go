package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/FlorianRuen/langs-badge/config"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// requests per hour granted by github when the current limits cannot be loaded
const (
	unauthenticatedHourlyLimit = 60
	authenticatedHourlyLimit   = 5000
)

// NewGithubClient creates the github client used to fetch repositories and languages
// the token is only used when authenticated is true, the client is created without any token otherwise
func NewGithubClient(ctx context.Context, cfg config.GithubConfig, authenticated bool) (*github.Client, error) {
	var githubClient *github.Client

	if authenticated && cfg.Token != "" {
		log.Debug("will setup github client with authorization token")
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		githubClient = github.NewClient(oauth2.NewClient(ctx, tokenSource))
	} else {
		githubClient = github.NewClient(nil)
	}

	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}

		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}

		githubClient.BaseURL = parsed
	}

	return githubClient, nil
}

// NewRateLimiter creates a local rate limiter matching the current github rate limits
// tokens already consumed (by other requests made with the same token) are consumed locally too
// if github limits cannot be loaded, the documented hourly limit is used
func NewRateLimiter(ctx context.Context, githubClient *github.Client, authenticated bool) *rate.Limiter {
	log.Debug("loading current rate limit from github")

	limit, remaining := unauthenticatedHourlyLimit, unauthenticatedHourlyLimit
	if authenticated {
		limit, remaining = authenticatedHourlyLimit, authenticatedHourlyLimit
	}

	rateLimits, _, err := githubClient.RateLimit.Get(ctx)
	if err != nil || rateLimits == nil || rateLimits.Core == nil {
		log.WithError(err).WithField("limit", limit).Warning("unable to load current github rate limits, will use default limit")
	} else {
		limit, remaining = rateLimits.Core.Limit, rateLimits.Core.Remaining
	}

	log.WithFields(log.Fields{
		"authenticated":     authenticated,
		"totalAvailable":    limit,
		"remainingRequests": remaining,
	}).Debug("will setup local rate limiter with rate limits infos from github")

	// consume X tokens according to the number of remaining tokens
	// this help us to have a right rate limiter even if external requests are made
	rateLimiter := rate.NewLimiter(rate.Every(time.Hour/time.Duration(max(limit, 1))), limit)

	if consumed := limit - remaining; consumed > 0 {
		rateLimiter.AllowN(time.Now(), consumed)
	}

	return rateLimiter
}
