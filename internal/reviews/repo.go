package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"xnews/pkg/database"
	"xnews/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Create stores a review stamped with the current time. Store-level
// rejections wrap database.ErrConstraintViolation.
func (r *Repo) Create(ctx context.Context, name, text, email string, rating int) (*models.Review, error) {
	created := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (name, text, email, rating, created)
		VALUES (?, ?, ?, ?, ?)
	`, name, text, email, rating, created)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", database.Classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &models.Review{
		ID:      id,
		Name:    name,
		Text:    text,
		Email:   email,
		Rating:  rating,
		Created: created,
	}, nil
}

// GetByID is not routed; reviews are write-only from the site's point of view.
func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, text, email, rating, created
		FROM reviews
		WHERE id = ?
	`, id)

	var review models.Review
	var created time.Time
	if err := row.Scan(&review.ID, &review.Name, &review.Text, &review.Email, &review.Rating, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	review.Created = created
	return &review, nil
}
