package main

import (
	"context"
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/flexly/internal"
	"github.com/2beens/flexly/internal/config"
	"github.com/2beens/flexly/internal/logging"

	log "github.com/sirupsen/logrus"
)

// set with -ldflags "-X main.version=..." on release builds
var version = ""

type secrets struct {
	dbPassword         string
	redisPassword      string
	openAIKey          string
	fcmServerKey       string
	gcsCredentialsFile string
	sentryDSN          string
	honeycombEnabled   bool
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	sec := secretsFromEnv()
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled && sec.sentryDSN != "",
		SentryDSN:        sec.sentryDSN,
		SentryServerName: "flexly-backend",
	})
	log.Warnf("---->> running in [%s] environment, port %d", cfg.Environment, cfg.Port)
	sec.warnMissing(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo(),
			DBPassword:              sec.dbPassword,
			RedisPassword:           sec.redisPassword,
			OpenAIKey:               sec.openAIKey,
			FCMServerKey:            sec.fcmServerKey,
			GCSCredentialsFile:      sec.gcsCredentialsFile,
			HoneycombTracingEnabled: sec.honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received, stopping ...")
	server.GracefulShutdown()
}

func secretsFromEnv() secrets {
	return secrets{
		dbPassword:         os.Getenv("FLEXLY_DB_PASS"),
		redisPassword:      os.Getenv("FLEXLY_REDIS_PASS"),
		openAIKey:          os.Getenv("OPENAI_API_KEY"),
		fcmServerKey:       os.Getenv("FCM_SERVER_KEY"),
		gcsCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		sentryDSN:          os.Getenv("SENTRY_DSN"),
		honeycombEnabled:   os.Getenv("HONEYCOMB_ENABLED") == "true",
	}
}

func (s secrets) warnMissing(cfg *config.Config) {
	if s.openAIKey == "" {
		log.Errorln("OPENAI_API_KEY not set, submissions and training plans will fail")
	}
	if s.fcmServerKey == "" {
		log.Warnln("FCM_SERVER_KEY not set, push notifications disabled")
	}
	if s.redisPassword == "" {
		log.Warnln("FLEXLY_REDIS_PASS not set")
	}
	if cfg.ObjectStoreKind == "gcs" && s.gcsCredentialsFile == "" {
		log.Warnln("GOOGLE_APPLICATION_CREDENTIALS not set, using default gcs credentials")
	}
	if s.honeycombEnabled && os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("HONEYCOMB_API_KEY not set")
	}
}

// versionInfo falls back to the git HEAD, the binary then has to run from the project root.
func versionInfo() string {
	if version != "" {
		return version
	}
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		log.Tracef("get last commit hash: %s", err)
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
