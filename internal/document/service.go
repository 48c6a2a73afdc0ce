package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vectorpad/vectorpad/engine-go/internal/store"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrForbidden = errors.New("forbidden")
)

// Service mediates document CRUD between the HTTP layer and the store.
// Documents are single-owner; only the owner may read or modify one.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Summary is the document metadata returned by the CRUD endpoints. The
// entity payload itself travels through snapshots.
type Summary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	OwnerID    string  `json:"ownerId"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*Summary, error) {
	doc := NewEmptyDocument(name)

	row, err := s.store.CreateDocument(ctx, store.Document{
		ID:         doc.ID,
		Name:       doc.Name,
		OwnerID:    ownerID,
		Width:      doc.Width,
		Height:     doc.Height,
		Background: doc.Background,
	})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	// Seed version 1 so the editor always has a snapshot to load.
	payload, err := doc.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal empty document: %w", err)
	}
	if _, err := s.store.SaveSnapshot(ctx, doc.ID, payload); err != nil {
		return nil, fmt.Errorf("seed snapshot: %w", err)
	}

	return rowToSummary(row), nil
}

func (s *Service) Get(ctx context.Context, documentID, userID string) (*Summary, error) {
	row, err := s.getOwned(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	return rowToSummary(row), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := s.store.ListDocumentsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]Summary, len(rows))
	for i, row := range rows {
		docs[i] = *rowToSummary(row)
	}
	return docs, nil
}

func (s *Service) Rename(ctx context.Context, documentID, userID, name string) (*Summary, error) {
	if _, err := s.getOwned(ctx, documentID, userID); err != nil {
		return nil, err
	}
	if err := s.store.RenameDocument(ctx, documentID, name); err != nil {
		return nil, fmt.Errorf("rename document: %w", err)
	}

	row, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return rowToSummary(row), nil
}

func (s *Service) Delete(ctx context.Context, documentID, userID string) error {
	if _, err := s.getOwned(ctx, documentID, userID); err != nil {
		return err
	}
	return s.store.DeleteDocument(ctx, documentID)
}

func (s *Service) GetLatestSnapshot(ctx context.Context, documentID, userID string) (json.RawMessage, error) {
	if _, err := s.getOwned(ctx, documentID, userID); err != nil {
		return nil, err
	}

	payload, _, err := s.store.GetLatestSnapshot(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return payload, nil
}

// SaveSnapshot validates the payload as a document and appends it as a
// new snapshot version.
func (s *Service) SaveSnapshot(ctx context.Context, documentID, userID string, payload json.RawMessage) (int32, error) {
	if _, err := s.getOwned(ctx, documentID, userID); err != nil {
		return 0, err
	}

	doc, err := Parse(payload)
	if err != nil {
		return 0, fmt.Errorf("parse document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return 0, fmt.Errorf("validate document: %w", err)
	}
	if doc.ID != documentID {
		return 0, fmt.Errorf("document id %s does not match %s", doc.ID, documentID)
	}

	version, err := s.store.SaveSnapshot(ctx, documentID, payload)
	if err != nil {
		return 0, fmt.Errorf("save snapshot: %w", err)
	}
	return version, nil
}

func (s *Service) getOwned(ctx context.Context, documentID, userID string) (store.Document, error) {
	row, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Document{}, ErrNotFound
		}
		return store.Document{}, fmt.Errorf("get document: %w", err)
	}
	if row.OwnerID != userID {
		return store.Document{}, ErrForbidden
	}
	return row, nil
}

func rowToSummary(row store.Document) *Summary {
	return &Summary{
		ID:         row.ID,
		Name:       row.Name,
		OwnerID:    row.OwnerID,
		Width:      row.Width,
		Height:     row.Height,
		Background: row.Background,
		CreatedAt:  row.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  row.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
