package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}
	config.Connect()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Run migrations
	if err := config.Migrations(config.DB); err != nil {
		config.Logger.Fatal().Err(err).Msg("could not run migrations")
	}

	// Seeding skips anything that already exists
	config.SeedDefaultAdmin()

	handler := routes.RegisterRoutes()
	handlerWithCORS := enableCORS(handler)
	config.Logger.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handlerWithCORS); err != nil {
		config.Logger.Fatal().Err(err).Msg("server stopped")
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Required CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Internal-Token, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		// Handle preflight (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
