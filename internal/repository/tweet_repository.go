package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/draftwirehq/draftwire/internal/models"
	"github.com/google/uuid"
)

type TweetRepository interface {
	Create(ctx context.Context, tx *sql.Tx, tweet *models.Tweet) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, bool, error)
	List(ctx context.Context, skip, limit int) ([]*models.Tweet, error)
}

type tweetRepository struct {
	db *sql.DB
}

func NewTweetRepository(db *sql.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tx *sql.Tx, tweet *models.Tweet) (uuid.UUID, error) {
	query := `
		INSERT INTO tweets (id, content, twitter_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if tweet.ID == uuid.Nil {
		tweet.ID = uuid.New()
	}

	var id uuid.UUID
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, tweet.ID, tweet.Content, tweet.TwitterID).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, tweet.ID, tweet.Content, tweet.TwitterID).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return uuid.Nil, err
	}

	return id, nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, bool, error) {
	var tweet models.Tweet
	query := `SELECT id, content, twitter_id, created_at FROM tweets WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tweet.ID, &tweet.Content, &tweet.TwitterID, &tweet.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &tweet, true, nil
}

func (r *tweetRepository) List(ctx context.Context, skip, limit int) ([]*models.Tweet, error) {
	query := `SELECT id, content, twitter_id, created_at FROM tweets ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var tweets []*models.Tweet
	for rows.Next() {
		var tweet models.Tweet
		if err := rows.Scan(&tweet.ID, &tweet.Content, &tweet.TwitterID, &tweet.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		tweets = append(tweets, &tweet)
	}
	return tweets, rows.Err()
}
