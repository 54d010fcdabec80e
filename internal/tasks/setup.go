package tasks

import (
	"log"

	"github.com/TaskHive/TH-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "workspace"); err != nil {
		log.Fatal("Failed to ensure schema workspace: ", err)
	}

	if err := db.DB.AutoMigrate(&Task{}); err != nil {
		log.Fatal("Failed to auto-migrate task tables: ", err)
	}
}
