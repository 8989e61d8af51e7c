package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FlorianRuen/langs-badge/config"
	"github.com/FlorianRuen/langs-badge/logger"
	"github.com/FlorianRuen/langs-badge/model"
	"github.com/google/go-github/v66/github"

	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"

	"golang.org/x/time/rate"
)

type GithubService interface {
	FetchUsage(ctx context.Context, username string, forks model.ForkFilter) ([]model.LanguageByteMap, error)
	FetchRepositories(ctx context.Context, username string, forks model.ForkFilter) ([]model.GithubRepository, error)
	GetRepositoriesLanguages(ctx context.Context, repos []model.GithubRepository) ([]model.LanguageByteMap, error)
	FetchLanguagesForSingleRepository(ctx context.Context, r model.GithubRepository, swg *sizedwaitgroup.SizedWaitGroup, ch chan<- model.GithubRepositoryLanguages) error

	HandleRequestErrors(err error) error
}

type githubService struct {
	githubClient      *github.Client
	githubRateLimiter *rate.Limiter
	config            config.Config
}

// a badge costs 1 + N requests: one to list the repositories of the user
// and one ListLanguages per repository kept after the fork filter
// ListLanguages rate limit = 60 calls per hour for non-authenticated and 5000 calls for authenticated
func NewGithubService(config config.Config, githubClient *github.Client, rateLimiter *rate.Limiter) GithubService {
	return githubService{
		githubClient:      githubClient,
		githubRateLimiter: rateLimiter,
		config:            config,
	}
}

// FetchUsage returns the languages of every repository of the user, one map per repository
// repositories without any language detected are not part of the result
func (s githubService) FetchUsage(ctx context.Context, username string, forks model.ForkFilter) ([]model.LanguageByteMap, error) {
	repos, err := s.FetchRepositories(ctx, username, forks)
	if err != nil {
		return nil, err
	}

	return s.GetRepositoriesLanguages(ctx, repos)
}

// FetchRepositories lists the repositories of the user (first page only) and applies the fork filter
// repositories rejected by the fork filter are dropped
func (s githubService) FetchRepositories(ctx context.Context, username string, forks model.ForkFilter) ([]model.GithubRepository, error) {
	logEntry := logger.FromContext(ctx)

	if !s.githubRateLimiter.Allow() {
		logEntry.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return nil, model.ErrRateLimitReached
	}

	logEntry.WithFields(log.Fields{
		"username": username,
		"fork":     forks.Fork,
		"forkMode": forks.Mode,
	}).Info("fetch repositories from github")

	repos, _, err := s.githubClient.Repositories.ListByUser(
		ctx,
		username,
		&github.RepositoryListByUserOptions{
			ListOptions: github.ListOptions{
				Page:    1,
				PerPage: s.config.Github.PerPage,
			},
		},
	)

	if err != nil {
		return nil, s.handleRequestErrors(logEntry, err)
	}

	filtered := make([]model.GithubRepository, 0, len(repos))

	for _, r := range repos {

		// an owner and a name are required to request the languages
		if r == nil || r.Owner == nil || r.Owner.Login == nil || r.Name == nil {
			logEntry.WithField("username", username).Debug("repository found with invalid information. skipped")
			continue
		}

		if !forks.Keep(r.GetFork()) {
			continue
		}

		filtered = append(filtered, model.GithubRepository{
			ID:         r.GetID(),
			Owner:      r.GetOwner().GetLogin(),
			Repository: r.GetName(),
			Fork:       r.GetFork(),
		})
	}

	logEntry.WithFields(log.Fields{
		"username":             username,
		"repositoriesFound":    len(repos),
		"repositoriesFiltered": len(filtered),
	}).Debug("repositories filtered on fork status")

	return filtered, nil
}

// GetRepositoriesLanguages will fetch the languages used for each repository in parameters
// requests are made in parallel, at most MaxParallelTasksAllowed at the same time
// the first failed request fails the whole call, no partial result is returned
func (s githubService) GetRepositoriesLanguages(ctx context.Context, repos []model.GithubRepository) ([]model.LanguageByteMap, error) {
	logEntry := logger.FromContext(ctx)

	// rate limit check: consume tokens/requests for each repo that we need to load languages from
	// if there is not enought requests, return an error to avoid loading for only a part of repositories
	if !s.githubRateLimiter.AllowN(time.Now(), len(repos)) {
		logEntry.WithField("repositoriesToLoad", len(repos)).Warning("not enought requests in rate limiter to load languages for all repositories")
		return nil, model.ErrRateLimitReached
	}

	swg := sizedwaitgroup.New(max(s.config.Tasks.MaxParallelTasksAllowed, 1))
	results := make(chan model.GithubRepositoryLanguages, len(repos))

	for _, r := range repos {
		swg.Add()
		go s.FetchLanguagesForSingleRepository(ctx, r, &swg, results)
	}

	logEntry.Debug("waiting for all threads for loading repositories to be finished")
	swg.Wait()
	logEntry.Debug("all threads for loading repositories languages finished")

	close(results)

	langMap := make(map[int64]model.LanguageByteMap, len(repos))
	for result := range results {
		if result.Err != nil {
			return nil, result.Err
		}

		langMap[result.RepositoryID] = result.Languages
	}

	// keep the order of the repositories list, empty maps are dropped
	usage := make([]model.LanguageByteMap, 0, len(repos))
	for _, r := range repos {
		if languages := langMap[r.ID]; len(languages) > 0 {
			usage = append(usage, languages)
		}
	}

	return usage, nil
}

// FetchLanguagesForSingleRepository get the languages for a specific repository
// the result (or the error) is sent to the channel, the error is also returned
// note: we are not checking the rate limit in this function, because done in the parent function
func (s githubService) FetchLanguagesForSingleRepository(ctx context.Context, r model.GithubRepository, swg *sizedwaitgroup.SizedWaitGroup, ch chan<- model.GithubRepositoryLanguages) error {
	defer swg.Done()

	logEntry := logger.FromContext(ctx)
	logEntry.WithFields(log.Fields{
		"repositoryID": r.ID,
		"owner":        r.Owner,
		"repository":   r.Repository,
	}).Debug("fetch languages for repository")

	res, _, err := s.githubClient.Repositories.ListLanguages(ctx, r.Owner, r.Repository)

	if err != nil {
		err = s.handleRequestErrors(logEntry, err)
		ch <- model.GithubRepositoryLanguages{RepositoryID: r.ID, Err: err}
		return err
	}

	ch <- model.GithubRepositoryLanguages{RepositoryID: r.ID, Languages: model.LanguageByteMap(res)}
	return nil
}

// HandleRequestErrors manage errors including github rate limit errors at the same location
// If error is a rate limit error, this function will update the local rate limiter to consume all available requests
// the upstream error is kept in the returned error chain
func (s githubService) HandleRequestErrors(err error) error {
	return s.handleRequestErrors(log.NewEntry(log.StandardLogger()), err)
}

func (s githubService) handleRequestErrors(logEntry *log.Entry, err error) error {
	var rateLimitErr *github.RateLimitError
	var abuseRateLimitErr *github.AbuseRateLimitError

	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseRateLimitErr) {
		if tokens := int(s.githubRateLimiter.Tokens()); tokens > 0 {
			s.githubRateLimiter.AllowN(time.Now(), tokens)
		}

		logEntry.WithError(err).Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return fmt.Errorf("%w: %w", model.ErrRateLimitReached, err)
	}

	logEntry.WithError(err).Error("error catched when fetching data from github")
	return fmt.Errorf("%w: %w", model.ErrUpstreamRequestFailed, err)
}
