package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Variables d'environnement obligatoires — le serveur refuse de démarrer
// sans elles.
var requiredEnv = []string{
	"MONGODB_URI",
	"JWT_ACCESS_SECRET",
	"JWT_REFRESH_SECRET",
	"STRIPE_SECRET_KEY",
	"FRONTEND_URL",
}

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// ValidateEnvironment vérifie la présence des variables obligatoires.
func ValidateEnvironment() error {
	var missing []string
	for _, key := range requiredEnv {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("variables d'environnement manquantes: %v", missing)
	}

	if len(os.Getenv("JWT_ACCESS_SECRET")) < 32 {
		log.Println("⚠️  JWT_ACCESS_SECRET fait moins de 32 caractères — déconseillé en production")
	}
	return nil
}

// Getenv retourne la valeur d'une variable ou un défaut.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
