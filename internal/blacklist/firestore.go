package blacklist

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jonesrussell/product-curator/internal/models"
)

// exclusionField is the single boolean field each category document
// carries. The name matches the documents written by the original
// deployment, so existing data keeps working.
const exclusionField = "is_exclude"

// FirestoreStore implements Store on a Firestore collection with one
// document per normalized category name.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore connects to Firestore. credentialsFile may be empty
// to use application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile, collection string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &FirestoreStore{
		client:     client,
		collection: collection,
	}, nil
}

func (f *FirestoreStore) Get(ctx context.Context, key string) (bool, error) {
	snap, err := f.client.Collection(f.collection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get category document: %w", err)
	}

	excluded, ok := snap.Data()[exclusionField].(bool)
	return ok && excluded, nil
}

func (f *FirestoreStore) Set(ctx context.Context, key string, excluded bool) error {
	_, err := f.client.Collection(f.collection).Doc(key).Set(ctx, map[string]any{
		exclusionField: excluded,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("set category document: %w", err)
	}
	return nil
}

func (f *FirestoreStore) ListBlacklisted(ctx context.Context) ([]string, error) {
	iter := f.client.Collection(f.collection).
		Where(exclusionField, "==", true).
		Documents(ctx)
	defer iter.Stop()

	ids := make([]string, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scan blacklisted categories: %w", err)
		}
		ids = append(ids, snap.Ref.ID)
	}
	return ids, nil
}

func (f *FirestoreStore) ListAll(ctx context.Context) ([]models.CategoryStatus, error) {
	iter := f.client.Collection(f.collection).Documents(ctx)
	defer iter.Stop()

	categories := make([]models.CategoryStatus, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scan categories: %w", err)
		}
		excluded, ok := snap.Data()[exclusionField].(bool)
		categories = append(categories, models.CategoryStatus{
			ID:            snap.Ref.ID,
			IsBlacklisted: ok && excluded,
		})
	}
	return categories, nil
}

// Close releases the underlying client.
func (f *FirestoreStore) Close() error {
	return f.client.Close()
}
