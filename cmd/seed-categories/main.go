package main

import (
	"context"
	"flag"
	"log"
	"time"

	"xnews/internal/category"
	"xnews/pkg/database"
)

func main() {
	var (
		dbPath = flag.String("db", database.DefaultConfig().Path, "SQLite database file")
		file   = flag.String("file", "data/categories.yaml", "YAML file listing categories")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names, err := category.LoadSeedFile(*file)
	if err != nil {
		log.Fatalf("load seed file failed: %v", err)
	}

	db := database.MustOpen(database.Config{Path: *dbPath})
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	created, err := category.Seed(ctx, category.NewRepo(db), names)
	if err != nil {
		log.Fatalf("seed categories failed: %v", err)
	}

	log.Printf("seeded %d new categories from %s (%d listed)", created, *file, len(names))
}
