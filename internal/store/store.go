package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vectorpad/vectorpad/engine-go/internal/typeid"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Document struct {
	ID         string
	Name       string
	OwnerID    string
	Width      float64
	Height     float64
	Background string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		u.ID, u.Email, u.Password, u.DisplayName).Scan(&u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE email = $1`,
		email).Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	var u User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (s *Store) CreateDocument(ctx context.Context, d Document) (Document, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO documents (id, name, owner_id, width, height, background)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		d.ID, d.Name, d.OwnerID, d.Width, d.Height, d.Background).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Document{}, err
	}
	return d, nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (Document, error) {
	var d Document
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, owner_id, width, height, background, created_at, updated_at
		FROM documents WHERE id = $1`,
		id).Scan(&d.ID, &d.Name, &d.OwnerID, &d.Width, &d.Height, &d.Background, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (s *Store) ListDocumentsForUser(ctx context.Context, ownerID string) ([]Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, owner_id, width, height, background, created_at, updated_at
		FROM documents WHERE owner_id = $1
		ORDER BY updated_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Name, &d.OwnerID, &d.Width, &d.Height, &d.Background, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *Store) RenameDocument(ctx context.Context, id, name string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE documents SET name = $2, updated_at = now() WHERE id = $1`,
		id, name)
	return err
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}

// SaveSnapshot compresses and appends a new snapshot version for the
// document, returning the version it was stored as.
func (s *Store) SaveSnapshot(ctx context.Context, documentID string, payload []byte) (int32, error) {
	compressed, err := compressZstd(payload)
	if err != nil {
		return 0, fmt.Errorf("compress snapshot: %w", err)
	}

	var version int32
	err = s.pool.QueryRow(ctx, `
		INSERT INTO snapshots (id, document_id, version, payload)
		SELECT $1, $2, COALESCE(MAX(version), 0) + 1, $3
		FROM snapshots WHERE document_id = $2
		RETURNING version`,
		typeid.NewSnapshotID(), documentID, compressed).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}

	if _, err := s.pool.Exec(ctx, `
		UPDATE documents SET updated_at = now() WHERE id = $1`, documentID); err != nil {
		return 0, fmt.Errorf("touch document: %w", err)
	}
	return version, nil
}

// GetLatestSnapshot returns the newest snapshot payload, decompressed.
func (s *Store) GetLatestSnapshot(ctx context.Context, documentID string) ([]byte, int32, error) {
	var compressed []byte
	var version int32
	err := s.pool.QueryRow(ctx, `
		SELECT payload, version FROM snapshots
		WHERE document_id = $1
		ORDER BY version DESC LIMIT 1`,
		documentID).Scan(&compressed, &version)
	if err != nil {
		return nil, 0, err
	}

	payload, err := decompressZstd(compressed)
	if err != nil {
		return nil, 0, fmt.Errorf("decompress snapshot: %w", err)
	}
	return payload, version, nil
}
