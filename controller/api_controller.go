package controller

import (
	"net/http"
	"strconv"

	"github.com/FlorianRuen/langs-badge/config"
	"github.com/FlorianRuen/langs-badge/model"
	"github.com/FlorianRuen/langs-badge/service"
	"github.com/gin-gonic/gin"
)

const strictTransportSecurity = "max-age=63072000; includeSubDomains; preload"

type APIController interface {
	GetTopLanguages(ctx *gin.Context)
	GetLanguageStats(ctx *gin.Context)
	Health(ctx *gin.Context)
}

type apiController struct {
	badgeService service.BadgeService
	config       config.Config
}

func NewAPIController(config config.Config, service service.BadgeService) APIController {
	return apiController{
		badgeService: service,
		config:       config,
	}
}

// badgeVariant describes how an endpoint drives the badge pipeline
type badgeVariant struct {
	authenticated bool
	limitLegend   bool
	forkMode      model.ForkMode
}

var (
	// fork=true keeps forked repositories only
	topLanguagesVariant = badgeVariant{authenticated: true, limitLegend: true, forkMode: model.ForkModeExact}

	// forks are excluded unless fork=true, which adds them to the sources
	languageStatsVariant = badgeVariant{authenticated: false, limitLegend: false, forkMode: model.ForkModeInclude}
)

// GetTopLanguages renders the badge with the configured token and a legend limited to count entries
func (s apiController) GetTopLanguages(c *gin.Context) {
	s.renderBadge(c, topLanguagesVariant)
}

// GetLanguageStats renders the badge without token, every language is listed in the legend
func (s apiController) GetLanguageStats(c *gin.Context) {
	s.renderBadge(c, languageStatsVariant)
}

func (s apiController) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s apiController) renderBadge(c *gin.Context, variant badgeVariant) {
	var badgeQuery model.BadgeQuery
	if err := c.ShouldBindQuery(&badgeQuery); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	opts := service.BadgeOptions{
		Username:      badgeQuery.Username,
		Forks:         badgeQuery.ForkFilter(variant.forkMode),
		Authenticated: variant.authenticated,
	}

	if opts.Username == "" {
		opts.Username = s.config.Badge.DefaultUsername
	}

	if variant.limitLegend {
		opts.LegendLimit = s.parseCount(badgeQuery.Count)
	}

	// execute the request
	svg, err := s.badgeService.RenderLanguagesBadge(c.Request.Context(), opts)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Cache-Control", "s-maxage="+strconv.Itoa(s.config.Badge.CacheMaxAge))
	c.Header("Strict-Transport-Security", strictTransportSecurity)
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

// parseCount falls back to the default count for anything but a positive integer
func (s apiController) parseCount(count string) int {
	if parsed, err := strconv.Atoi(count); err == nil && parsed > 0 {
		return parsed
	}

	if s.config.Badge.DefaultCount > 0 {
		return s.config.Badge.DefaultCount
	}

	return model.DefaultLegendLimit
}
