// Command createadmin creates the admin account used to call /api and
// prints a signed access token for it.  An existing admin is left alone.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/iliyamo/library-membership/internal/config"
	"github.com/iliyamo/library-membership/internal/database"
	"github.com/iliyamo/library-membership/internal/repository"
	"github.com/iliyamo/library-membership/internal/utils"
)

func main() {
	cfg := config.Load()
	if cfg.DBDriver == config.DriverMemory {
		log.Fatal("createadmin needs DB_DRIVER=mysql or DB_DRIVER=sqlite")
	}
	name := envOr("ADMIN_NAME", "Admin")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	admins := repository.NewAdminRepo(db)
	if _, err := admins.GetByEmail(ctx, email); err == nil {
		fmt.Println("admin user already exists")
		return
	} else if !errors.Is(err, repository.ErrAdminNotFound) {
		log.Fatalf("lookup admin: %v", err)
	}

	admin, err := admins.Create(ctx, name, email, password, cfg.BcryptCost)
	if errors.Is(err, repository.ErrDuplicateKey) {
		fmt.Println("admin user already exists")
		return
	}
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	fmt.Printf("admin created: %s <%s>\n", admin.Name, admin.Email)

	if cfg.JWTSecret == "" {
		fmt.Println("JWT_SECRET not set; no access token issued")
		return
	}
	tok, err := utils.NewAccessToken(cfg.JWTSecret, admin.ID, admin.Role, cfg.AccessTTL)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Printf("access token (expires %s):\n%s\n", tok.Exp.Format(time.RFC3339), tok.Token)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
