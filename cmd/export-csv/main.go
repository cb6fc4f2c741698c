package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"xnews/internal/category"
	"xnews/internal/news"
	"xnews/pkg/database"
)

func main() {
	var (
		dbPath        = flag.String("db", database.DefaultConfig().Path, "SQLite database file")
		newsOut       = flag.String("news", "data/news.csv", "output CSV path for news")
		categoriesOut = flag.String("categories", "data/categories.csv", "output CSV path for categories")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.Config{Path: *dbPath})
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	items, err := news.NewRepo(db).ListAll(ctx)
	if err != nil {
		log.Fatalf("list news failed: %v", err)
	}
	if err := writeFile(*newsOut, func(w io.Writer) error { return news.WriteCSV(w, items) }); err != nil {
		log.Fatalf("export news failed: %v", err)
	}

	cats, err := category.NewRepo(db).List(ctx)
	if err != nil {
		log.Fatalf("list categories failed: %v", err)
	}
	if err := writeFile(*categoriesOut, func(w io.Writer) error { return category.WriteCSV(w, cats) }); err != nil {
		log.Fatalf("export categories failed: %v", err)
	}

	log.Printf("exported %d news to %s and %d categories to %s", len(items), *newsOut, len(cats), *categoriesOut)
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
