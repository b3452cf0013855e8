package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"intrachat/internal/common"
	"intrachat/internal/wire"
)

func main() {
	log.Println("Starting Chat Service...")

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	app, err := wire.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize chat service: %v", err)
	}

	log.Println("✅ Database connected and migrated")

	router := mux.NewRouter()
	router.Use(common.CORSMiddleware)
	router.Use(common.LoggingMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		common.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"sessions": app.Registry.TotalSessions(),
		})
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(common.AuthMiddleware)
	app.ChatHandler.RegisterRoutes(api)
	app.NotificationHandler.RegisterRoutes(api)

	router.HandleFunc("/ws/system_messages/", app.WSHandler.ServeSystemMessages)
	if app.Config.Server.Environment == "development" {
		router.HandleFunc("/ws/test/", app.WSHandler.ServeEcho)
	}

	addr := app.Config.Server.Host + ":" + app.Config.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.Config.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Chat Service running on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Chat Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app.Dispatcher.Shutdown()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Chat Service stopped")
}
