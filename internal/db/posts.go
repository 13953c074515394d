package db

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Post is a blog/FAQ article. Unpublished posts are only visible through
// the admin surface.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const postColumns = `id, slug, title, content, published, created_at, updated_at`

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePost inserts a post. An empty slug is derived from the title.
func (db *DB) CreatePost(ctx context.Context, p *Post) (*Post, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("post title cannot be empty")
	}
	slug := p.Slug
	if slug == "" {
		slug = Slugify(p.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("post slug cannot be empty")
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO posts (slug, title, content, published)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+postColumns,
		slug, p.Title, p.Content, p.Published,
	)
	created, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return created, nil
}

// GetPostBySlug retrieves a post by slug; nil when absent
func (db *DB) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	p, err := scanPost(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}

// ListPosts returns posts newest-first; publishedOnly hides drafts
func (db *DB) ListPosts(ctx context.Context, publishedOnly bool) ([]*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// UpdatePost replaces the mutable fields of a post; nil when absent
func (db *DB) UpdatePost(ctx context.Context, id uuid.UUID, p *Post) (*Post, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE posts
		 SET slug = $1, title = $2, content = $3, published = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING `+postColumns,
		p.Slug, p.Title, p.Content, p.Published, id,
	)
	updated, err := scanPost(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return updated, nil
}

// DeletePost removes a post; reports whether a row was deleted
func (db *DB) DeletePost(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
