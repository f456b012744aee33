package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/catalog"
	intconfig "backoffice/internal/config"
	router "backoffice/internal/http"
	"backoffice/internal/http/handlers"
	"backoffice/internal/upstream"
	"backoffice/internal/wizard"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	client := upstream.NewClient(env.UpstreamURL, env.UpstreamToken)
	svc := catalog.NewService(client)

	// Best effort warm-up; endpoints reload lazily if the upstream was down
	// at boot.
	warm, cancelWarm := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Refresh(warm); err != nil {
		log.Printf("warning: initial catalog load failed: %v", err)
	}
	cancelWarm()

	handlers.Configure(handlers.Deps{
		Env:      env,
		Upstream: client,
		Catalog:  svc,
		Wizards:  wizard.NewStore(),
		Views:    handlers.NewViewRegistry(),
	})

	// Router (Gin engine)
	r := router.NewRouter(env)
	handlers.SetRouter(r)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening at http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
