package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/somoscreators/taskboard/internal/domain/task"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCS reads the task export from a Cloud Storage object. When Object is
// empty the most recently updated object under Prefix is used.
type GCS struct {
	client *storage.Client
	bucket string
	object string
	prefix string
}

// NewGCS creates a GCS source.
// It assumes the client is authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS).
func NewGCS(ctx context.Context, bucket, object, prefix string, opts ...option.ClientOption) (*GCS, error) {
	if bucket == "" {
		return nil, errors.New("gcs source: bucket is required")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, object: object, prefix: prefix}, nil
}

// Fetch reads and decodes the export object.
func (g *GCS) Fetch(ctx context.Context) ([]task.Raw, error) {
	name := g.object
	if name == "" {
		latest, err := g.latest(ctx)
		if err != nil {
			return nil, err
		}
		name = latest
	}

	r, err := g.client.Bucket(g.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: gs://%s/%s", ErrNotFound, g.bucket, name)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	defer r.Close()

	return Decode(r)
}

func (g *GCS) latest(ctx context.Context) (string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: g.prefix})
	var objects []*storage.ObjectAttrs
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to list objects: %w", err)
		}
		objects = append(objects, attrs)
	}
	name, ok := newestJSON(objects)
	if !ok {
		return "", fmt.Errorf("%w: gs://%s/%s*", ErrNotFound, g.bucket, g.prefix)
	}
	return name, nil
}

// newestJSON picks the most recently updated .json object.
func newestJSON(objects []*storage.ObjectAttrs) (string, bool) {
	var best *storage.ObjectAttrs
	for _, o := range objects {
		if !strings.HasSuffix(o.Name, ".json") {
			continue
		}
		if best == nil || o.Updated.After(best.Updated) {
			best = o
		}
	}
	if best == nil {
		return "", false
	}
	return best.Name, true
}

// Close releases the storage client.
func (g *GCS) Close() error {
	return g.client.Close()
}
