// Package main is the entry point for the employee directory API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"employeedirectory/src/app/server"
	"employeedirectory/src/infra/config"
	"employeedirectory/src/infra/db"
	"employeedirectory/src/infra/logger"
	"employeedirectory/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log, closeLog := logger.New(cfg.Log)
	defer closeLog()
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	// Initialize database connection
	pg, err := db.New(context.Background(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	// Initialize repositories
	employeeRepo := repo.NewEmployeeRepository(pg.Pool, nil, log)

	// Create and run HTTP server
	srv := server.New(cfg, log, employeeRepo)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
