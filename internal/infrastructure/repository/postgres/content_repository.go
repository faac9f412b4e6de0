package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/northcourt/club-api/internal/domain/content"
	qb "github.com/northcourt/club-api/internal/platform/querybuilder"
)

type newsTableModel struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Body        string    `db:"body"`
	PublishedAt time.Time `db:"published_at"`
	CreatedAt   time.Time `db:"created_at"`
}

type mediaTableModel struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	Kind      string    `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

type merchTableModel struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	PriceCents int64          `db:"price_cents"`
	ImageURL   sql.NullString `db:"image_url"`
	Active     bool           `db:"active"`
	CreatedAt  time.Time      `db:"created_at"`
}

type ContentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ListNews(ctx context.Context) ([]content.NewsPost, error) {
	query, args, err := qb.Select("*").From("news_posts").
		OrderBy("published_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list news query: %w", err)
	}

	var rows []newsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	out := make([]content.NewsPost, 0, len(rows))
	for _, row := range rows {
		out = append(out, content.NewsPost{
			ID:          row.ID,
			Title:       row.Title,
			Body:        row.Body,
			PublishedAt: row.PublishedAt,
			CreatedAt:   row.CreatedAt,
		})
	}

	return out, nil
}

func (r *ContentRepository) CreateNews(ctx context.Context, item content.NewsPost) error {
	query, args, err := qb.InsertModel("news_posts", newsTableModel{
		ID:          item.ID,
		Title:       item.Title,
		Body:        item.Body,
		PublishedAt: item.PublishedAt,
		CreatedAt:   item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert news query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert news: %w", err)
	}

	return nil
}

func (r *ContentRepository) DeleteNews(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, "news_posts", id)
}

func (r *ContentRepository) ListMedia(ctx context.Context) ([]content.MediaItem, error) {
	query, args, err := qb.Select("*").From("media_items").
		OrderBy("created_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list media query: %w", err)
	}

	var rows []mediaTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}

	out := make([]content.MediaItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, content.MediaItem{
			ID:        row.ID,
			Title:     row.Title,
			URL:       row.URL,
			Kind:      row.Kind,
			CreatedAt: row.CreatedAt,
		})
	}

	return out, nil
}

func (r *ContentRepository) CreateMedia(ctx context.Context, item content.MediaItem) error {
	query, args, err := qb.InsertModel("media_items", mediaTableModel{
		ID:        item.ID,
		Title:     item.Title,
		URL:       item.URL,
		Kind:      item.Kind,
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert media query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert media: %w", err)
	}

	return nil
}

func (r *ContentRepository) DeleteMedia(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, "media_items", id)
}

func (r *ContentRepository) ListMerch(ctx context.Context) ([]content.MerchItem, error) {
	query, args, err := qb.Select("*").From("merch_items").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list merch query: %w", err)
	}

	var rows []merchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list merch: %w", err)
	}

	out := make([]content.MerchItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, merchFromRow(row))
	}

	return out, nil
}

func (r *ContentRepository) GetMerchByID(ctx context.Context, id string) (content.MerchItem, bool, error) {
	query, args, err := qb.Select("*").From("merch_items").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return content.MerchItem{}, false, fmt.Errorf("build select merch query: %w", err)
	}

	var row merchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return content.MerchItem{}, false, nil
		}
		return content.MerchItem{}, false, fmt.Errorf("get merch: %w", err)
	}

	return merchFromRow(row), true, nil
}

func (r *ContentRepository) CreateMerch(ctx context.Context, item content.MerchItem) error {
	query, args, err := qb.InsertModel("merch_items", merchTableModel{
		ID:         item.ID,
		Name:       item.Name,
		PriceCents: item.PriceCents,
		ImageURL:   nullString(item.ImageURL),
		Active:     item.Active,
		CreatedAt:  item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert merch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert merch: %w", err)
	}

	return nil
}

func (r *ContentRepository) DeleteMerch(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, "merch_items", id)
}

func (r *ContentRepository) deleteByID(ctx context.Context, table, id string) (bool, error) {
	query, args, err := qb.DeleteFrom(table).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete %s query: %w", table, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete from %s rows affected: %w", table, err)
	}

	return affected > 0, nil
}

func merchFromRow(row merchTableModel) content.MerchItem {
	return content.MerchItem{
		ID:         row.ID,
		Name:       row.Name,
		PriceCents: row.PriceCents,
		ImageURL:   row.ImageURL.String,
		Active:     row.Active,
		CreatedAt:  row.CreatedAt,
	}
}
