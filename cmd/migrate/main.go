package main

import (
	"log"
	"os"

	"content-platform-be/internal/model"
	"content-platform-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: gen_random_uuid() lives in pgcrypto on older servers
	log.Println("Step 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto: %v. Continuing...", err)
	}

	// 4. AutoMigrate
	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.Content{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: indexes and views AutoMigrate does not express
	log.Println("Step 3: Creating Indexes and Views...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_contents_type_created ON contents (type, created_at DESC) WHERE deleted_at IS NULL;`,

		// Descriptor bundles are queried by @graph node type.
		`CREATE INDEX IF NOT EXISTS idx_contents_descriptors ON contents USING GIN (descriptors jsonb_path_ops);`,

		// View: content still waiting for the indexer
		`CREATE OR REPLACE VIEW stale_content_index AS
		 SELECT id, type, title, updated_at, indexed_at
		 FROM contents
		 WHERE deleted_at IS NULL AND (indexed_at IS NULL OR indexed_at < updated_at);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed via GORM.")
}
