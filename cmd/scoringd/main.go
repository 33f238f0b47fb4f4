package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/virtualpatient/clinsim/internal/ai"
	api "github.com/virtualpatient/clinsim/internal/api/http"
	"github.com/virtualpatient/clinsim/internal/auth"
	"github.com/virtualpatient/clinsim/internal/cache"
	"github.com/virtualpatient/clinsim/internal/config"
	"github.com/virtualpatient/clinsim/internal/db"
	"github.com/virtualpatient/clinsim/internal/notify"
	"github.com/virtualpatient/clinsim/internal/scoring"
	"github.com/virtualpatient/clinsim/internal/store/mongostore"
	"github.com/virtualpatient/clinsim/internal/store/sqlstore"
)

// scoringStore is what both storage backends provide to this binary.
type scoringStore interface {
	scoring.SessionStore
	scoring.MetricsStore
	api.ResultGetter
	SaveResult(ctx context.Context, sessionID string, res *scoring.ScoringResult) error
	ActiveRubric(ctx context.Context) (scoring.Rubric, error)
	SeedDefaultRubric(ctx context.Context) error
}

type competencyNotifier interface {
	NotifyCompetencyUpdate(ctx context.Context, userID string, res *scoring.ScoringResult) error
}

// resultSink joins the persistence backend with the task-queue notifier into
// the single collaborator the scoring service expects.
type resultSink struct {
	store    scoringStore
	notifier competencyNotifier
}

func (s resultSink) SaveResult(ctx context.Context, sessionID string, res *scoring.ScoringResult) error {
	return s.store.SaveResult(ctx, sessionID, res)
}

func (s resultSink) NotifyCompetencyUpdate(ctx context.Context, userID string, res *scoring.ScoringResult) error {
	return s.notifier.NotifyCompetencyUpdate(ctx, userID, res)
}

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// --- Store backend ---
	var store scoringStore
	switch cfg.StoreDriver {
	case "mongo":
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("mongo connect failed: %v", err)
		}
		store = mongostore.NewStore(client, cfg.MongoDB)
	default:
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store = sqlstore.NewStore(dbh, cfg.DBDriver)
	}
	if err := store.SeedDefaultRubric(ctx); err != nil {
		log.Fatalf("seed rubric: %v", err)
	}
	rubric, err := store.ActiveRubric(ctx)
	if err != nil {
		log.Fatalf("load active rubric: %v", err)
	}

	// --- Redis: result cache + competency task queue ---
	var resultCache *cache.ResultCache
	var notifier competencyNotifier = notify.LogNotifier{}
	if cfg.RedisAddr != "" {
		resultCache = cache.NewResultCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		notifier = notify.NewNotifier(cfg.RedisAddr)
	}

	// --- Scoring service ---
	opts := []scoring.Option{scoring.WithAITimeout(cfg.AITimeout)}
	aiClient := ai.NewClient(ai.Config{
		BaseURL:   cfg.AIBaseURL,
		APIKey:    cfg.AIAPIKey,
		Evaluator: cfg.AIEvaluator,
		Timeout:   cfg.AITimeout,
	})
	if aiClient.IsAvailable() {
		opts = append(opts, scoring.WithAIEvaluator(aiClient))
	} else {
		log.Printf("ai evaluator not configured, scoring runs rule-based only")
	}
	svc, err := scoring.NewService(store, store, resultSink{store: store, notifier: notifier}, rubric, opts...)
	if err != nil {
		log.Fatalf("scoring service: %v", err)
	}

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc))
	}

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(auth.RequireRole("instructor", "admin")).
			Post("/api/sessions/{sessionID}/score", api.ScoreSessionHandler(svc, resultCache))
		pr.Get("/api/sessions/{sessionID}/result", api.GetResultHandler(store, resultCache))
		pr.Get("/api/rubrics/active", api.GetActiveRubricHandler(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, store=%s)", cfg.HTTPAddr, cfg.Mode, cfg.StoreDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
