package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/menye94/park-pricing/internal/storage"
)

// DocumentStore keeps each quote as one JSON document in a storage.Storage.
type DocumentStore struct {
	storage storage.Storage
}

// NewDocumentStore creates a LocalStore backed by s.
func NewDocumentStore(s storage.Storage) *DocumentStore {
	return &DocumentStore{storage: s}
}

func documentKey(quoteID string) string {
	return "quotes/" + quoteID + ".json"
}

// Load returns the stored document, or an empty one for an unknown quote.
// Documents written as a bare item list are still accepted.
func (d *DocumentStore) Load(ctx context.Context, quoteID string) (*Document, error) {
	data, err := d.storage.Get(ctx, documentKey(quoteID))
	if errors.Is(err, storage.ErrNotFound) {
		return &Document{Items: []LineItem{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var doc Document
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &doc.Items)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode quote %s: %w", quoteID, err)
	}
	if doc.Items == nil {
		doc.Items = []LineItem{}
	}
	return &doc, nil
}

// Save replaces the stored document.
func (d *DocumentStore) Save(ctx context.Context, quoteID string, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode quote %s: %w", quoteID, err)
	}
	return d.storage.Put(ctx, documentKey(quoteID), data, &storage.Metadata{
		ContentType: "application/json",
		QuoteID:     quoteID,
		UpdatedAt:   time.Now().UTC(),
	})
}

// ListQuotes returns the ids of all stored quotes.
func (d *DocumentStore) ListQuotes(ctx context.Context) ([]string, error) {
	keys, err := d.storage.List(ctx, "quotes/")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(k, "quotes/"), ".json"))
	}
	return ids, nil
}
