package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// GCSStore mirrors the snapshot to a Google Cloud Storage object, used as
// an off-machine backup target. It assumes Application Default Credentials
// are configured (gcloud auth application-default login).
type GCSStore struct {
	bucket string
	object string
}

// NewGCSStore creates a store writing to gs://bucket/object.
func NewGCSStore(bucket, object string) *GCSStore {
	if object == "" {
		object = "wealthmind/snapshot.json"
	}
	return &GCSStore{bucket: bucket, object: object}
}

// URI returns the gs:// location of the snapshot object.
func (s *GCSStore) URI() string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, s.object)
}

// Load reads the snapshot object. A missing object yields a fresh initial
// snapshot rather than an error.
func (s *GCSStore) Load(ctx context.Context) (*Snapshot, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCSStore.Load: create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("GCSStore.Load: open %s: %w", s.URI(), err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("GCSStore.Load: read %s: %w", s.URI(), err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("GCSStore.Load: decode %s: %w", s.URI(), err)
	}
	return &snap, nil
}

// Save uploads the snapshot, replacing the previous object version.
func (s *GCSStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("GCSStore.Save: encode: %w", err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("GCSStore.Save: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(s.bucket).Object(s.object).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("GCSStore.Save: write %s: %w", s.URI(), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("GCSStore.Save: finalize %s: %w", s.URI(), err)
	}
	return nil
}
