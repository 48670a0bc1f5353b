package main

import (
	"fmt"
	"log"

	"auth-api/internal/config"
	"auth-api/internal/database"
	"auth-api/internal/roles"
	"auth-api/internal/server"
	"auth-api/internal/service"
	"auth-api/internal/store"
	"auth-api/internal/token"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	issuer, err := token.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}

	users := store.NewUserStore(database.DB, cfg.Password)
	engine := roles.NewEngine(database.DB)
	auth := service.NewAuthService(users, engine, issuer)

	r := server.NewRouter(auth, issuer)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
