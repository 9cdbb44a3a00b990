package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/vzoverflow/vzoverflow/handler"
	"github.com/vzoverflow/vzoverflow/modules/security"
	"github.com/vzoverflow/vzoverflow/pkg/config"
	"github.com/vzoverflow/vzoverflow/pkg/email"
	"github.com/vzoverflow/vzoverflow/pkg/httpserver"
	"github.com/vzoverflow/vzoverflow/pkg/logger"
	"github.com/vzoverflow/vzoverflow/pkg/pg"
	"github.com/vzoverflow/vzoverflow/pkg/redis"
	"github.com/vzoverflow/vzoverflow/pkg/requestid"
	"github.com/vzoverflow/vzoverflow/pkg/totp"
	"github.com/vzoverflow/vzoverflow/svc/twofactor"
)

type appConfig struct {
	PG    pg.Config
	Redis redis.Config
	HTTP  httpserver.Config
	Email email.Config
	TwoFA twofactor.Config

	UseRedis    bool   `env:"OTP_STORE_REDIS" envDefault:"false"`
	DevEmailDir string `env:"DEV_EMAIL_DIR" envDefault:"./tmp/emails"`
}

func main() {
	log := logger.New(
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	var cfg appConfig
	config.MustLoad(&cfg)

	ctx := context.Background()

	encryptionKey, err := totp.LoadEncryptionKey()
	if err != nil {
		log.Error("load encryption key", logger.Error(err))
		os.Exit(1)
	}

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		log.Error("connect postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		log.Error("run migrations", logger.Error(err))
		os.Exit(1)
	}

	// One-time codes live in Postgres by default; Redis is an opt-in
	// alternative for deployments that want TTL-driven cleanup.
	var codeStore twofactor.CodeStore = twofactor.NewPGStore(pool)
	if cfg.UseRedis {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Error("connect redis", logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()
		codeStore = twofactor.NewRedisStore(client, nil)
	}

	sender := newSender(cfg, log)
	storage := security.NewPGStorage(pool)

	codes := twofactor.NewCodeService(codeStore, sender,
		twofactor.WithLogger(log),
		twofactor.WithIssuer(cfg.TwoFA.Issuer),
		twofactor.WithCodeTTL(cfg.TwoFA.CodeTTL),
	)
	twofa := twofactor.NewService(codes, storage, encryptionKey,
		twofactor.WithServiceLogger(log),
		twofactor.WithServiceIssuer(cfg.TwoFA.Issuer),
	)

	errorHandler := handler.NewErrorHandler(log)
	securityModule := security.NewService(twofa, storage, errorHandler)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))

	// Demo authentication: trust an X-User-ID header. A real deployment
	// replaces this with its session or token middleware.
	r.Route("/security", func(sr chi.Router) {
		sr.Use(headerAuth)
		sr.Mount("/", securityModule.Handle())
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// newSender picks Postmark when a server token is configured, falling back
// to the filesystem dev sender.
func newSender(cfg appConfig, log *slog.Logger) email.EmailSender {
	if cfg.Email.PostmarkServerToken != "" {
		sender, err := email.NewPostmarkClient(cfg.Email)
		if err != nil {
			log.Error("postmark client", logger.Error(err))
			os.Exit(1)
		}
		return sender
	}

	log.Warn("no postmark token configured, writing emails to disk",
		logger.Component("mailer"))
	return email.NewDevSender(cfg.DevEmailDir)
}

// headerAuth is the demo session layer.
func headerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get("X-User-ID"))
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(security.WithUserID(r.Context(), id)))
	})
}
