// Command seeduser creates an initial account directly in the database, for
// bootstrapping a fresh deployment.
package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"sofhub/internal/config"
	"sofhub/internal/domain"
	"sofhub/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: seeduser <email> <password> [full name]")
	}
	email, password := os.Args[1], os.Args[2]
	fullName := ""
	if len(os.Args) > 3 {
		fullName = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		IsActive:     true,
	}
	if err := postgres.NewUserRepo(db).Create(context.Background(), user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	log.Printf("created user %s (%s)", user.Email, user.ID)
}
