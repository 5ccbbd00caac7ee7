package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/standupbot/standup-services/internal/models"
)

// Config holds MinIO connection configuration for report archival.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Archiver stores rendered reports in a MinIO bucket so summaries survive
// beyond the chat scrollback. Archival is best-effort everywhere it is used.
type Archiver struct {
	client *minio.Client
	bucket string
}

// New creates an Archiver and ensures the bucket exists.
func New(cfg *Config) (*Archiver, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	a := &Archiver{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		// tolerate pre-existing buckets
		exist, xerr := mc.BucketExists(ctx, a.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return a, nil
}

// SaveReport uploads the report as JSON under reports/<date>.json.
// Regenerating a report for the same date overwrites the archived copy.
func (a *Archiver) SaveReport(ctx context.Context, rep *models.Report) error {
	b, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	key := fmt.Sprintf("reports/%s.json", rep.Date)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(b), int64(len(b)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("archive report %s: %w", rep.Date, err)
	}
	return nil
}
