package mirror

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/shinyyama/spool-backend/internal/model"
	"github.com/shinyyama/spool-backend/internal/reqctx"
)

// GCSMirror copies committed catalog files into a Cloud Storage bucket so
// deployments with an ephemeral disk still serve every contribution.
type GCSMirror struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSMirror(ctx context.Context, bucket, prefix, credentialsFile string) (*GCSMirror, error) {
	opts := []option.ClientOption{option.WithUserAgent("spool-backend")}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCSMirror{client: client, bucket: bucket, prefix: prefix}, nil
}

func (m *GCSMirror) Publish(ctx context.Context, files []model.CatalogFile) error {
	for _, f := range files {
		publicURL, err := m.upload(ctx, f)
		if err != nil {
			return fmt.Errorf("upload %s: %w", f.Key, err)
		}
		log.Printf("[mirror] rid=%s slug=%s stage=uploaded key=%s url=%s", reqctx.RID(ctx), reqctx.Slug(ctx), f.Key, publicURL)
	}
	return nil
}

func (m *GCSMirror) Close() error {
	return m.client.Close()
}

func (m *GCSMirror) upload(ctx context.Context, f model.CatalogFile) (string, error) {
	token := uuid.NewString()
	objectPath := ObjectPath(m.prefix, f.Key)
	w := m.client.Bucket(m.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = f.ContentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := w.Write(f.Data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return DownloadURL(m.bucket, objectPath, token), nil
}

// ObjectPath joins the configured prefix and a catalog key.
func ObjectPath(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	key = strings.TrimLeft(key, "/")
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}

// DownloadURL builds the token-authorized public URL for an uploaded object.
func DownloadURL(bucket, objectPath, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(objectPath), token)
}
