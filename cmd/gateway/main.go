package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/lifeprep/backend/internal/api/http"
	auth "github.com/lifeprep/backend/internal/auth/middleware"
	"github.com/lifeprep/backend/internal/config"
	"github.com/lifeprep/backend/internal/db"
	"github.com/lifeprep/backend/internal/importer"
	"github.com/lifeprep/backend/internal/question"
	"github.com/lifeprep/backend/internal/rbac"
	"github.com/lifeprep/backend/internal/session"
	"github.com/lifeprep/backend/internal/storage"
	syncx "github.com/lifeprep/backend/internal/sync"
	"github.com/lifeprep/backend/internal/tts"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	questions := question.NewSQLStore(dbh)
	sessions := session.NewStore(dbh, []byte(cfg.SessionSecret))
	events := syncx.NewEventRepo(dbh)
	imp := importer.New(questions)

	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	synth := tts.NewOpenAI(cfg.OpenAIAPIKey, cfg.TTSModel, cfg.TTSVoice)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	examCfg := api.ExamConfig{
		Size:            cfg.ExamSize,
		DurationSeconds: cfg.ExamDurationSec,
		PassMark:        cfg.ExamPassMark,
	}

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
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, cfg.AdminUser, cfg.AdminPassHash))

	// Quiz taking: anonymous, session-cookie scoped
	r.Get("/api/practice/{mode}", api.PracticeQuestionHandler(questions, sessions))
	r.Post("/api/practice/{mode}/answer", api.PracticeAnswerHandler(questions, sessions))
	r.Get("/api/practice/{mode}/subcategories", api.PracticeSubcategoriesHandler(questions))

	r.Post("/api/exam/start", api.ExamStartHandler(questions, sessions, examCfg))
	r.Get("/api/exam", api.ExamViewHandler(questions, sessions, examCfg, events))
	r.Post("/api/exam/answer", api.ExamAnswerHandler(questions, sessions))
	r.Post("/api/exam/next", api.ExamNextHandler(questions, sessions, examCfg, events))
	r.Post("/api/exam/time", api.ExamTimeHandler(sessions, examCfg, events))

	r.Get("/api/listen", api.ListenHandler(questions, sessions))
	r.Post("/api/listen", api.ListenActionHandler(questions, sessions))

	r.Get("/api/tts", api.TTSHandler(synth))

	// Staff-only: question bank management and stats resets
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("stats:reset")).
			Post("/api/practice/{mode}/reset", api.PracticeResetHandler(sessions))
		pr.With(rbac.Require("questions:import")).
			Post("/api/questions/import", api.ImportQuestionsHandler(imp, blobs, events))
		pr.With(rbac.Require("questions:view")).
			Get("/api/questions", api.ListQuestionsHandler(questions))
		pr.With(rbac.Require("questions:view")).
			Get("/api/questions/{id}", api.GetQuestionHandler(questions))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
