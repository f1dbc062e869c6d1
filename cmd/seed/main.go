package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"notely/internal/auth"
	"notely/internal/config"
	"notely/internal/db"
	apperrors "notely/internal/errors"
	"notely/internal/logger"
	"notely/internal/model"
	"notely/internal/repository"
	"notely/internal/service"
)

//go:embed seed.json
var seedData []byte

// SeedData is the demo account and its notes.
type SeedData struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Notes    []SeedNote `json:"notes"`
}

// SeedNote is one demo note.
type SeedNote struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	IsFavorite bool   `json:"is_favorite"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting seed script")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN())
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	var data SeedData
	if err := json.Unmarshal(seedData, &data); err != nil {
		log.Fatalw("failed to parse seed data", "error", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL), auth.NewTokenStore(nil))

	created, err := seed(context.Background(), log, authService, userRepo, noteRepo, data)
	if err != nil {
		log.Fatalw("seed failed", "error", err)
	}
	log.Infow("seed completed", "email", data.Email, "notes_created", created)
}

// seed creates the demo user if missing and adds its notes when the user has none.
func seed(
	ctx context.Context,
	log *zap.SugaredLogger,
	authService service.AuthService,
	userRepo repository.UserRepository,
	noteRepo repository.NoteRepository,
	data SeedData,
) (int, error) {
	user, err := authService.SignUp(ctx, data.Email, data.Password)
	switch {
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		log.Infow("demo user already exists", "email", data.Email)
		if user, err = userRepo.FindByEmail(ctx, data.Email); err != nil {
			return 0, fmt.Errorf("find demo user: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("create demo user: %w", err)
	}

	existing, err := noteRepo.List(ctx, repository.NoteFilter{UserID: user.ID})
	if err != nil {
		return 0, fmt.Errorf("list demo notes: %w", err)
	}
	if len(existing) > 0 {
		log.Infow("demo notes already present, skipping", "count", len(existing))
		return 0, nil
	}

	for _, n := range data.Notes {
		note := &model.Note{
			Title:      n.Title,
			Content:    n.Content,
			UserID:     user.ID,
			IsFavorite: n.IsFavorite,
		}
		if err := noteRepo.Create(ctx, note); err != nil {
			return 0, fmt.Errorf("create note %q: %w", n.Title, err)
		}
	}
	return len(data.Notes), nil
}
