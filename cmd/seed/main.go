package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-identity-service/config"
	"github.com/oksasatya/go-identity-service/internal/application"
	"github.com/oksasatya/go-identity-service/internal/container"
	"github.com/oksasatya/go-identity-service/pkg/helpers"
)

// seed creates the bootstrap account through the regular sign-up path so the
// stored record passes the same validation as any other user.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer c.Close()

	res := c.Service.SignUp(ctx, application.SignUpCommand{
		Email:     cfg.SeedEmail,
		Password:  cfg.SeedPassword,
		FirstName: cfg.SeedFirstName,
		LastName:  cfg.SeedLastName,
	})
	switch res.Kind {
	case application.KindNone:
		fmt.Printf("seeded user: id=%s email=%s name=%s %s\n",
			res.Data.User.ID, res.Data.User.Email, res.Data.User.FirstName, res.Data.User.LastName)
	case application.KindEmailInUse:
		fmt.Printf("user %s already seeded\n", cfg.SeedEmail)
	default:
		log.Fatalf("failed to seed user (%s): %s", res.Kind, strings.Join(res.Errors, "; "))
	}
}
