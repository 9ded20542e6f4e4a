package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blinkeyit_back_end/internal/config"
	"blinkeyit_back_end/internal/database"
	"blinkeyit_back_end/internal/handlers"
	"blinkeyit_back_end/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()
	if err := config.ValidateEnvironment(); err != nil {
		log.Fatal("❌ Configuration invalide : ", err)
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	log.Println("✅ Stripe initialisé")

	database.ConnectDatabases()
	defer database.CloseMongo()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal("❌ Erreur création des index : ", err)
	}
	cancel()
	log.Println("✅ Index MongoDB vérifiés")

	handlers.InitOAuthProviders()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Getenv("FRONTEND_URL", "http://localhost:5173")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	port := config.Getenv("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Println("🚀 Serveur Blinkey It lancé sur le port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Erreur serveur : ", err)
		}
	}()

	// Arrêt propre : on laisse 10s aux requêtes en cours
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⚠️ Arrêt du serveur...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("❌ Arrêt forcé : ", err)
	}
	log.Println("✅ Serveur arrêté")
}
