// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"resonate/internal/config"
	"resonate/internal/database"
	"resonate/internal/middleware"
	"resonate/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 12, "Number of users to create")
	audiosPerUser := flag.Int("audios", 6, "Number of uploads per user")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plain passwords (dev only, much faster)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	middleware.InitMiddleware(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.DefaultOptions()
	opts.Users = *numUsers
	opts.AudiosPerUser = *audiosPerUser
	opts.DryRun = *dryRun
	opts.SkipBcrypt = *skipBcrypt

	if err := seed.Demo(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed")
}
