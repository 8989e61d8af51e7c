package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FlorianRuen/langs-badge/config"
	"github.com/FlorianRuen/langs-badge/controller"
	"github.com/FlorianRuen/langs-badge/logger"
	"github.com/FlorianRuen/langs-badge/model"
	"github.com/FlorianRuen/langs-badge/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "langs-badge",
		Short:         "Render the most used languages of a GitHub user as an SVG badge",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd(), renderCmd())

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

// setup loads the configuration, configures the logger and builds the badge pipeline
func setup(ctx context.Context) (*config.Config, service.BadgeService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load configuration: %w", err)
	}

	// configure logger
	logger.Setup(cfg.Logs)

	// one client without token is always available
	// the authenticated one is only created when a token is configured
	publicClient, err := service.NewGithubClient(ctx, cfg.Github, false)
	if err != nil {
		return nil, nil, err
	}

	publicService := service.NewGithubService(*cfg, publicClient, service.NewRateLimiter(ctx, publicClient, false))

	var authenticatedService service.GithubService
	if cfg.Github.Token != "" {
		authenticatedClient, err := service.NewGithubClient(ctx, cfg.Github, true)
		if err != nil {
			return nil, nil, err
		}

		authenticatedService = service.NewGithubService(*cfg, authenticatedClient, service.NewRateLimiter(ctx, authenticatedClient, true))
	} else {
		log.Warning("no github token configured, every request will be unauthenticated")
	}

	return cfg, service.NewBadgeService(*cfg, authenticatedService, publicService), nil
}

// newRouter wires the middlewares and the badge routes on a fresh gin engine
func newRouter(apiController controller.APIController) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(
		gin.Recovery(),
		logger.AccessLog(),
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET"},
			AllowHeaders:  []string{"Content-Type, Content-Length, Accept-Encoding, Host, accept, Origin, Cache-Control, X-Requested-With", logger.RequestIDHeader},
			ExposeHeaders: []string{logger.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	router.GET("/healthz", apiController.Health)

	api := router.Group("/api")
	{
		api.GET("/top-langs", apiController.GetTopLanguages)
		api.GET("/github-language-stats", apiController.GetLanguageStats)
	}

	return router
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server exposing the badge endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, badgeService, err := setup(context.Background())
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:    ":" + cfg.API.ListenPort,
				Handler: newRouter(controller.NewAPIController(*cfg, badgeService)),
			}

			go func() {
				log.Info("server listening on port " + cfg.API.ListenPort)

				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.WithError(err).Error("error while starting server")
				}
			}()

			// serve runs until SIGINT or SIGTERM, then drains for at most 15 seconds
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info("SIGINT, SIGTERM received, will shut down server ...")

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				log.WithError(err).Error("Server forced to shutdown")
				return err
			}

			log.Info("Application stopped gracefully !")
			return nil
		},
	}
}

func renderCmd() *cobra.Command {
	var username, output string
	var count int
	var fork, public bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a badge once and write it to a file or stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, badgeService, err := setup(ctx)
			if err != nil {
				return err
			}

			if username == "" {
				username = cfg.Badge.DefaultUsername
			}

			opts := service.BadgeOptions{
				Username:      username,
				Forks:         model.ForkFilter{Fork: fork, Mode: model.ForkModeExact},
				LegendLimit:   count,
				Authenticated: !public,
			}

			// the public variant has no legend cutoff and treats --fork as an inclusion
			if public {
				opts.LegendLimit = 0
				opts.Forks.Mode = model.ForkModeInclude
			}

			svg, err := badgeService.RenderLanguagesBadge(ctx, opts)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), svg)
				return err
			}

			if err := os.WriteFile(output, []byte(svg), 0o644); err != nil {
				return err
			}

			log.WithField("output", output).Info("badge written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "GitHub user (defaults to BADGE.DefaultUsername)")
	cmd.Flags().IntVarP(&count, "count", "c", 6, "Number of languages in the legend")
	cmd.Flags().BoolVar(&fork, "fork", false, "Keep forked repositories only (with --public, add them to the sources)")
	cmd.Flags().BoolVar(&public, "public", false, "Do not use the token and list every language")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty or -)")
	return cmd
}
