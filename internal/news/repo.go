package news

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"xnews/pkg/database"
	"xnews/pkg/models"
)

var (
	ErrDuplicateTitle  = fmt.Errorf("%w: news title already exists", database.ErrConstraintViolation)
	ErrUnknownCategory = fmt.Errorf("%w: category does not exist", database.ErrConstraintViolation)
)

const selectNews = `
	SELECT n.id, n.category_id, c.name, n.title, n.text, n.created
	FROM news n
	JOIN categories c ON c.id = n.category_id
`

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNews(s rowScanner) (models.News, error) {
	var n models.News
	var created time.Time
	if err := s.Scan(&n.ID, &n.CategoryID, &n.CategoryName, &n.Title, &n.Text, &created); err != nil {
		return n, err
	}
	n.Created = created
	return n, nil
}

// ListAll returns every article in insertion order.
func (r *Repo) ListAll(ctx context.Context) ([]models.News, error) {
	return r.list(ctx, selectNews+` ORDER BY n.id ASC`)
}

// ListByCategory returns the articles of one category; an unknown category
// yields an empty slice.
func (r *Repo) ListByCategory(ctx context.Context, categoryID int64) ([]models.News, error) {
	return r.list(ctx, selectNews+` WHERE n.category_id = ? ORDER BY n.id ASC`, categoryID)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]models.News, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	out := make([]models.News, 0)
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news row: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// GetByID returns (nil, nil) when the article does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*models.News, error) {
	row := r.DB.QueryRowContext(ctx, selectNews+` WHERE n.id = ?`, id)

	n, err := scanNews(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan news: %w", err)
	}
	return &n, nil
}

// Insert stores a new article stamped with the current time. A taken title
// fails with ErrDuplicateTitle and a missing category with ErrUnknownCategory.
func (r *Repo) Insert(ctx context.Context, categoryID int64, title, text string) (*models.News, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO news (category_id, title, text, created)
		VALUES (?, ?, ?, ?)
	`, categoryID, title, text, time.Now().UTC())
	if err != nil {
		err = database.Classify(err)
		switch {
		case errors.Is(err, database.ErrUniqueViolation):
			return nil, fmt.Errorf("insert news: %w", ErrDuplicateTitle)
		case errors.Is(err, database.ErrForeignKeyViolation):
			return nil, fmt.Errorf("insert news: %w", ErrUnknownCategory)
		}
		return nil, fmt.Errorf("insert news: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	n, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("insert news: row %d vanished", id)
	}
	return n, nil
}
