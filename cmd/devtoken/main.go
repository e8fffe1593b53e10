// Command devtoken prints an access token for an existing user so the booking
// API can be exercised locally without the identity service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/stayhost/stayhost-api/internal/config"
	"github.com/stayhost/stayhost-api/internal/domain/user"
	"github.com/stayhost/stayhost-api/internal/pkg/database"
	"github.com/stayhost/stayhost-api/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id to issue the token for")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	id, err := uuid.Parse(*userID)
	if err != nil {
		log.Fatalf("Invalid -user: %v", err)
	}

	cfg := config.Load()
	if cfg.IsProduction() {
		log.Fatal("Refusing to mint tokens in production")
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.ClosePostgres(db)

	u, err := user.NewRepository(db).GetByID(context.Background(), id)
	if err != nil {
		log.Fatalf("Failed to load user: %v", err)
	}
	if u == nil {
		log.Fatalf("User %s not found", id)
	}

	token, err := jwt.NewService(cfg.JWTSecret, *ttl).GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Printf("# %s (%s)\n", u.Email, u.Role)
	fmt.Println(token)
}
