package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/tenant"
	"go-backoffice/pkg/database"
)

// Operator tool: resets a user's password inside one tenant. Uses the admin
// session so the audit hooks still record the operator as the actor.
func main() {
	tenantID := flag.Int64("tenant", 0, "tenant id the user belongs to")
	cdUsuario := flag.String("user", "", "login code of the user")
	password := flag.String("password", "", "new password to set")
	flag.Parse()

	if *tenantID <= 0 || *cdUsuario == "" || *password == "" {
		log.Fatal("usage: reset-password -tenant <id> -user <cdusuario> -password <new>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()
	tc := tenant.Context{TenantID: *tenantID, Actor: "reset-password-cli"}
	ctx := context.Background()

	var user model.Usuario
	err := repository.AdminSession(ctx, db, tc).
		Where("tenant_id = ? AND cd_usuario = ?", tc.TenantID, *cdUsuario).
		First(&user).Error
	if err != nil {
		log.Fatalf("user %s not found in tenant %d: %v", *cdUsuario, *tenantID, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	err = repository.AdminSession(ctx, db, tc).
		Model(&user).
		Update("senha_user", string(hashed)).Error
	if err != nil {
		log.Fatalf("failed to update password: %v", err)
	}

	log.Printf("password for %s (tenant %d) has been reset", *cdUsuario, *tenantID)
}
