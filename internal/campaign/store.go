// Package campaign persists campaign documents and ad tags in Firestore.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = errors.New("document not found")

// Store wraps a Firestore client
type Store struct {
	client *firestore.Client
}

// Document is a raw Firestore document with its ID
type Document struct {
	ID   string
	Data map[string]any
}

// AdTagSet is the tag document the production agent stores for a final video.
// Tag categories follow the ad placement taxonomy in the agent instructions.
type AdTagSet struct {
	VideoURI      string    `firestore:"videoUri"`
	ContentTags   []string  `firestore:"contentTags"`
	EmotionalTags []string  `firestore:"emotionalTags"`
	StylisticTags []string  `firestore:"stylisticTags"`
	CreatedAt     time.Time `firestore:"createdAt"`
}

// NewStore creates a campaign store against the configured Firestore database
func NewStore(ctx context.Context, project, database string) (*Store, error) {
	if project == "" {
		return nil, fmt.Errorf("GCP project must be set via config or GOOGLE_CLOUD_PROJECT")
	}
	if database == "" {
		database = "(default)"
	}
	client, err := firestore.NewClientWithDatabase(ctx, project, database)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close releases the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}

// StoreDocument writes data to a collection and returns the document ID.
// With an explicit ID the document is overwritten; otherwise Firestore
// generates one.
func (s *Store) StoreDocument(ctx context.Context, collection string, data map[string]any, docID string) (string, error) {
	col := s.client.Collection(collection)

	if docID != "" {
		if _, err := col.Doc(docID).Set(ctx, data); err != nil {
			return "", fmt.Errorf("failed to store document %s/%s: %w", collection, docID, err)
		}
		return docID, nil
	}

	ref, _, err := col.Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to store document in %s: %w", collection, err)
	}
	return ref.ID, nil
}

// ReadDocument fetches a single document. Returns ErrNotFound if missing.
func (s *Store) ReadDocument(ctx context.Context, collection, docID string) (map[string]any, error) {
	snap, err := s.client.Collection(collection).Doc(docID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s/%s: %w", collection, docID, err)
	}
	return snap.Data(), nil
}

// ListDocuments returns all documents in a collection
func (s *Store) ListDocuments(ctx context.Context, collection string) ([]Document, error) {
	it := s.client.Collection(collection).Documents(ctx)
	defer it.Stop()

	var docs []Document
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// SaveAdTags stores a tag set for a final video in the ad_tags collection
func (s *Store) SaveAdTags(ctx context.Context, tags AdTagSet) (string, error) {
	if tags.CreatedAt.IsZero() {
		tags.CreatedAt = time.Now()
	}
	ref, _, err := s.client.Collection("ad_tags").Add(ctx, tags)
	if err != nil {
		return "", fmt.Errorf("failed to store ad tags: %w", err)
	}
	return ref.ID, nil
}
