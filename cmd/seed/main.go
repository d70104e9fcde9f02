// Package main creates the admin account from ADMIN_EMAIL and ADMIN_PASSWORD.
// Running it again with an existing email changes nothing.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/morocco-events/backend/config"
	"github.com/morocco-events/backend/internal/auth"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/database"
	"github.com/morocco-events/backend/pkg/validation"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	validation.Init()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	svc := auth.NewService(auth.NewRepository(pool), auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TokenTTL()), nil, logger)
	u, err := svc.CreateUser(ctx, auth.CreateUserInput{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, models.RoleAdmin)
	switch {
	case apperr.Is(err, apperr.KindDuplicateEmail):
		logger.Info("admin already exists", zap.String("email", cfg.Admin.Email))
	case err != nil:
		logger.Fatal("create admin", zap.Error(err))
	default:
		logger.Info("admin created", zap.String("id", u.ID.String()), zap.String("email", u.Email))
	}
}
