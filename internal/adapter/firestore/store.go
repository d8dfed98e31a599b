// Package firestore adapts the snow-report document collection to the
// domain.ReportSource interface.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	firestorego "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/couchcryptid/snow-report-service/internal/config"
	"github.com/couchcryptid/snow-report-service/internal/domain"
)

// ErrUnavailable is returned by the disabled store for every query.
var ErrUnavailable = errors.New("report store unavailable")

// Store implements domain.ReportSource on a Firestore collection.
type Store struct {
	client     *firestorego.Client
	collection string
	logger     *slog.Logger
}

// New connects to Firestore. Without a credentials file the client falls
// back to application-default credentials (and honors
// FIRESTORE_EMULATOR_HOST, which the integration tests rely on).
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	var opts []option.ClientOption
	if cfg.FirestoreCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentialsFile))
	}
	client, err := firestorego.NewClient(ctx, cfg.FirestoreProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect firestore: %w", err)
	}
	return &Store{
		client:     client,
		collection: cfg.FirestoreCollection,
		logger:     logger,
	}, nil
}

// LatestReportDate returns the newest snapshot date in the collection, ""
// when the collection is empty.
func (s *Store) LatestReportDate(ctx context.Context) (string, error) {
	iter := s.client.Collection(s.collection).
		OrderBy("date", firestorego.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query latest report date: %w", err)
	}

	date, ok := doc.Data()["date"].(string)
	if !ok {
		s.logger.Warn("newest document has no usable date field", "doc", doc.Ref.ID)
		return "", nil
	}
	return date, nil
}

// ReportsByDate returns every document whose date field equals date exactly.
func (s *Store) ReportsByDate(ctx context.Context, date string) ([]domain.RawDoc, error) {
	docs, err := s.client.Collection(s.collection).
		Where("date", "==", date).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("query reports for %s: %w", date, err)
	}

	out := make([]domain.RawDoc, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.RawDoc(doc.Data()))
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Disabled is the ReportSource for deployments without Firestore configured.
// Every query fails with ErrUnavailable, so the refresher serves default
// tables instead of crashing at startup.
type Disabled struct{}

func (Disabled) LatestReportDate(context.Context) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) ReportsByDate(context.Context, string) ([]domain.RawDoc, error) {
	return nil, ErrUnavailable
}
