package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	auth "github.com/nvbf/olympic-feed/pkg/auth"
	config "github.com/nvbf/olympic-feed/pkg/config"
	metrics "github.com/nvbf/olympic-feed/pkg/metrics"
	timehelper "github.com/nvbf/olympic-feed/pkg/timeHelper"

	olympics "github.com/nvbf/olympic-feed/repos/olympics"
	resend "github.com/nvbf/olympic-feed/repos/resend"
	snapshots "github.com/nvbf/olympic-feed/repos/snapshots"

	archive "github.com/nvbf/olympic-feed/services/archive"
	games "github.com/nvbf/olympic-feed/services/games"
	live "github.com/nvbf/olympic-feed/services/live"
	medals "github.com/nvbf/olympic-feed/services/medals"
	stats "github.com/nvbf/olympic-feed/services/stats"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	location, err := timehelper.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	m := metrics.New()

	olympicsService := olympics.NewService(olympics.Options{
		BaseURL:   cfg.Olympics.BaseURL,
		PerPage:   cfg.Olympics.PerPage,
		Timeout:   cfg.Olympics.Timeout,
		UserAgent: cfg.Olympics.UserAgent,
		Metrics:   m,
	})

	gamesService := games.NewGamesService(olympicsService, location, m)
	medalsService := medals.NewMedalsService(olympicsService)
	statsService := stats.NewStatsService(olympicsService)

	hub := live.NewHub()
	go hub.Run(ctx)
	go live.NewRefresher(gamesService, hub, cfg.RefreshInterval).Run(ctx)

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSHosts) > 0 {
		corsConfig.AllowOrigins = cfg.CORSHosts
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}

	router := gin.Default()
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	games.NewHTTPHandler(games.HTTPOptions{
		Service: gamesService,
		Router:  router.Group("/games/v1"),
	})

	medals.NewHTTPHandler(medals.HTTPOptions{
		Service: medalsService,
		Router:  router.Group("/medals/v1"),
	})

	stats.NewHTTPHandler(stats.HTTPOptions{
		Service: statsService,
		Router:  router.Group("/stats/v1"),
	})

	live.NewHTTPHandler(live.HTTPOptions{
		Hub:          hub,
		Router:       router.Group("/live/v1"),
		AllowOrigins: cfg.CORSHosts,
	})

	if cfg.ArchiveEnabled() {
		credentialsOption := option.WithCredentialsJSON([]byte(cfg.Firebase.CredentialsJSON))

		firestoreClient, err := firestore.NewClient(ctx, cfg.Firebase.ProjectID, credentialsOption)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, credentialsOption)
		if err != nil {
			log.Fatalf("error initializing app: %v\n", err)
		}
		verifier, err := auth.NewVerifier(ctx, firebaseApp)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}

		archiveService := archive.NewArchiveService(
			gamesService,
			snapshots.NewService(firestoreClient),
			resend.NewService(cfg.Digest.ResendKey, cfg.Digest.From),
		)

		archiveRouter := router.Group("/archive/v1")
		archiveRouter.Use(auth.AuthMiddleware(verifier))

		archive.NewHTTPHandler(archive.HTTPOptions{
			Service: archiveService,
			Router:  archiveRouter,
		})
	} else {
		log.Printf("FIREBASE_PROJECT_ID not set, archive routes disabled\n")
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		<-ctx.Done()
		log.Printf("Shutting down\n")
		server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
