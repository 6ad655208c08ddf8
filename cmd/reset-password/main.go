package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"retail-mis-console/internal/config"
	"retail-mis-console/internal/logger"
	"retail-mis-console/internal/model"
	"retail-mis-console/internal/repository"
	"retail-mis-console/internal/service"
	"retail-mis-console/pkg/database"
	"retail-mis-console/pkg/jwt"
	"retail-mis-console/pkg/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "superadmin@example.com", "console user to update")
	password := flag.String("password", "", "new password (min 6 characters)")
	createRole := flag.String("create", "", "create the user with this role when it does not exist")
	name := flag.String("name", "", "full name for a created user")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	if *password == "" {
		lg.Fatal("-password is required")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database.DSN(), lg)
	if err != nil {
		lg.Fatal("database unavailable", zap.Error(err))
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepo(db)
	authService := service.NewAuthService(userRepo, jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL), lg)

	// 3. Update, or create when asked to
	err = authService.SetPassword(ctx, *email, *password)
	if errors.Is(err, service.ErrUserNotFound) && *createRole != "" {
		err = createUser(ctx, userRepo, *email, *name, *createRole, *password)
		if err == nil {
			lg.Info("user created", zap.String("email", logger.MaskEmail(*email)), zap.String("role", *createRole))
			return
		}
	}
	if err != nil {
		lg.Fatal("failed to reset password", zap.String("email", logger.MaskEmail(*email)), zap.Error(err))
	}

	lg.Info("password reset", zap.String("email", logger.MaskEmail(*email)))
}

func createUser(ctx context.Context, repo repository.UserRepository, email, name, roleName, password string) error {
	role, err := model.ParseRole(roleName)
	if err != nil {
		return err
	}
	if name == "" {
		name = role.DisplayName()
	}

	user := &model.User{Email: email, FullName: name, Role: role, IsActive: true}
	user.CreatedBy = "reset-password"
	user.UpdatedBy = "reset-password"
	if err := validator.FirstError(user); err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return repo.Create(ctx, user)
}
