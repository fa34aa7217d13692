package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/flexly/internal/analysis"
	"github.com/2beens/flexly/internal/auth"
	"github.com/2beens/flexly/internal/cache"
	"github.com/2beens/flexly/internal/comments"
	"github.com/2beens/flexly/internal/config"
	"github.com/2beens/flexly/internal/db"
	"github.com/2beens/flexly/internal/healing"
	"github.com/2beens/flexly/internal/leaderboard"
	"github.com/2beens/flexly/internal/middleware"
	"github.com/2beens/flexly/internal/notifications"
	"github.com/2beens/flexly/internal/objectstore"
	"github.com/2beens/flexly/internal/oracle"
	"github.com/2beens/flexly/internal/profile"
	"github.com/2beens/flexly/internal/push"
	"github.com/2beens/flexly/internal/social"
	"github.com/2beens/flexly/internal/stats"
	"github.com/2beens/flexly/internal/telemetry/metrics"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/training"
	"github.com/2beens/flexly/internal/users"
	"github.com/2beens/flexly/pkg"
)

type imageStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	sessions    *auth.Sessions
	rater       *oracle.Rater
	planner     *training.Generator
	images      imageStore
	diskImages  *objectstore.DiskStore // set only for the disk store
	gcsImages   *objectstore.GCSStore  // set only for the gcs store
	fcm         *push.FCMClient

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBPassword              string
	RedisPassword           string
	OpenAIKey               string
	FCMServerKey            string
	GCSCredentialsFile      string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		MaxConns:       cfg.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, dbPool); err != nil {
			return nil, err
		}
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("flexly", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0,
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	sessions := auth.NewSessions(cfg.SessionTTL.Duration, rdb)
	go func() {
		ticker := time.NewTicker(8 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessions.ScanAndClean(ctx)
			}
		}
	}()

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "flexly-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	openaiClient := oracle.NewClient(oracle.ClientParams{
		APIKey:     params.OpenAIKey,
		BaseURL:    cfg.OracleBaseURL,
		HTTPClient: tracedHttpClient,
	})

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,
		redisClient: rdb,
		sessions:    sessions,
		rater:       oracle.NewRater(openaiClient, cfg.OracleModel, metricsManager),
		planner:     training.NewGenerator(openaiClient, cfg.PlannerModel),
		fcm: push.NewFCMClient(cfg.FCMEndpoint, params.FCMServerKey),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	switch cfg.ObjectStoreKind {
	case "gcs":
		s.gcsImages, err = objectstore.NewGCSStore(ctx, cfg.GCSBucket, params.GCSCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("new gcs store: %w", err)
		}
		s.images = s.gcsImages
	case "disk":
		s.diskImages, err = objectstore.NewDiskStore(cfg.ObjectStoreDiskPath, cfg.ObjectStoreBaseURL)
		if err != nil {
			return nil, fmt.Errorf("new disk store: %w", err)
		}
		s.images = s.diskImages
	default:
		return nil, fmt.Errorf("unknown object store kind: %s", cfg.ObjectStoreKind)
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	usersRepo := users.NewRepo(s.dbPool)
	analysisRepo := analysis.NewRepo(s.dbPool)
	commentsRepo := comments.NewRepo(s.dbPool)
	notificationsRepo := notifications.NewRepo(s.dbPool)
	plansRepo := training.NewRepo(s.dbPool)

	healer := healing.NewHealer(stats.NewAggregator(analysisRepo), usersRepo, s.metricsManager)
	dispatcher := notifications.NewDispatcher(notificationsRepo, s.fcm, s.metricsManager)
	socialManager := social.NewManager(social.ManagerParams{
		Edges:         social.NewGraph(s.dbPool),
		Notifier:      dispatcher,
		Comments:      commentsRepo,
		Submissions:   analysisRepo,
		Notifications: notificationsRepo,
		Plans:         plansRepo,
		Sessions:      s.sessions,
		Users:         usersRepo,
		Metrics:       s.metricsManager,
	})
	analysisService := analysis.NewService(analysis.ServiceParams{
		Rater:     s.rater,
		Store:     s.images,
		Repo:      analysisRepo,
		Users:     usersRepo,
		Comments:  commentsRepo,
		Metrics:   s.metricsManager,
		MaxImages: s.config.MaxImagesPerSubmission,
	})

	r.HandleFunc("/", s.handleRoot).Methods("GET").Name("root")

	auth.NewHandler(auth.NewService(usersRepo, s.sessions)).SetupRoutes(r)

	// fixed /users/... paths go before /users/{id}
	ranker := leaderboard.NewRanker(
		usersRepo,
		healer,
		cache.NewPageCache(s.config.LeaderboardCacheSize, s.config.LeaderboardCacheTTL.Duration),
		s.config.LeaderboardSize,
		s.config.HealBatchLimit,
	)
	leaderboard.NewHandler(ranker).SetupRoutes(r)
	profile.NewHandler(usersRepo, healer, socialManager).SetupRoutes(r)
	social.NewHandler(socialManager, usersRepo).SetupRoutes(r)

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	analysis.NewHandler(analysisService, s.config.MaxImageSizeMB).SetupRoutes(
		r,
		middleware.RateLimit(reqRateLimiter, "analysis-create", s.config.AnalysisRateLimitPerMin, s.metricsManager),
	)
	comments.NewHandler(comments.NewService(commentsRepo, analysisRepo)).SetupRoutes(r)
	notifications.NewHandler(notificationsRepo).SetupRoutes(r)
	training.NewHandler(training.NewService(s.planner, plansRepo, usersRepo, healer)).SetupRoutes(r)

	if s.diskImages != nil {
		r.HandleFunc("/images/{key:.+}", s.diskImages.HandleGet).Methods("GET").Name("image")
	}

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessions)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSONResponse(w, map[string]string{
		"status":  "ok",
		"version": s.versionInfo,
	}, http.StatusOK)
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// oracle calls with several images can take a while
		WriteTimeout: 2 * time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.gcsImages != nil {
		if err := s.gcsImages.Close(); err != nil {
			log.Errorf("failed to close gcs client: %s", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close()
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
