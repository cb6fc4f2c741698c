package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"xnews/pkg/database"
	"xnews/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// GetByID returns (nil, nil) when the category does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name
		FROM categories
		WHERE id = ?
	`, id)

	var c models.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *Repo) GetByName(ctx context.Context, name string) (*models.Category, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name
		FROM categories
		WHERE name = ?
	`, name)

	var c models.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

func (r *Repo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name
		FROM categories
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Create is used by seeding only; no HTTP route creates categories.
func (r *Repo) Create(ctx context.Context, name string) (*models.Category, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO categories (name)
		VALUES (?)
	`, name)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", database.Classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &models.Category{ID: id, Name: name}, nil
}
