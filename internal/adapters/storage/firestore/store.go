package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

// keywordScanLimit bounds how many recent records FindLatestByKeyword pulls
// for client-side matching; Firestore has no substring query.
const keywordScanLimit = 200

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore-backed record store for the given project.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) responsesCol() *firestore.CollectionRef {
	return s.client.Collection("agent_responses")
}

type responseDoc struct {
	SessionID       string    `firestore:"session_id"`
	UserID          string    `firestore:"user_id"`
	AgentName       string    `firestore:"agent_name"`
	ResponseContent string    `firestore:"response_content"`
	CreatedAt       time.Time `firestore:"created_at"`
}

// SaveResponse creates a new document per record, never overwriting.
func (s *Store) SaveResponse(ctx context.Context, rec *domain.ResponseRecord) error {
	doc := responseDoc{
		SessionID:       string(rec.SessionID),
		UserID:          string(rec.UserID),
		AgentName:       rec.AgentName,
		ResponseContent: rec.Content,
		CreatedAt:       rec.CreatedAt,
	}

	_, err := s.responsesCol().Doc(string(rec.ID)).Create(ctx, doc)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("firestore SaveResponse: record %s already exists", rec.ID)
		}
		return fmt.Errorf("firestore SaveResponse: %w", err)
	}
	return nil
}

// FindLatestByKeyword walks recent records newest-first and matches the
// keyword client-side.
func (s *Store) FindLatestByKeyword(ctx context.Context, keyword string) (*domain.ResponseRecord, error) {
	q := s.responsesCol().OrderBy("created_at", firestore.Desc).Limit(keywordScanLimit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	needle := strings.ToLower(keyword)

	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore FindLatestByKeyword: %w", err)
		}

		var doc responseDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode responseDoc: %w", err)
		}

		if strings.Contains(strings.ToLower(doc.ResponseContent), needle) {
			return &domain.ResponseRecord{
				ID:        domain.ResponseRecordID(snap.Ref.ID),
				SessionID: domain.SessionID(doc.SessionID),
				UserID:    domain.UserID(doc.UserID),
				AgentName: doc.AgentName,
				Content:   doc.ResponseContent,
				CreatedAt: doc.CreatedAt,
			}, nil
		}
	}

	return nil, domain.ErrRecordNotFound
}
