package main

import (
	"log"
	"os"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/db"
	"github.com/TaskHive/TH-Backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()
	accounts.Init()

	path := "internal/seeds/data/fixtures.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := seeds.SeedAll(path); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
