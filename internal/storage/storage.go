package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rs/zerolog/log"
)

// Storage persists one generated document under a slash separated key and
// returns where it ended up (a file path or a CDN URL).
type Storage interface {
	SaveDocument(ctx context.Context, key string, body []byte) (string, error)
}

type LocalStorage struct {
	outputDir string
}

type SpacesStorage struct {
	client   s3iface.S3API
	bucket   string
	cdnURL   string
	endpoint string
}

func NewLocalStorage(outputDir string) *LocalStorage {
	return &LocalStorage{outputDir: outputDir}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return NewSpacesStorageWithClient(s3.New(sess), bucket, cdnURL, endpoint), nil
}

func NewSpacesStorageWithClient(client s3iface.S3API, bucket, cdnURL, endpoint string) *SpacesStorage {
	return &SpacesStorage{
		client:   client,
		bucket:   bucket,
		cdnURL:   cdnURL,
		endpoint: endpoint,
	}
}

// cleanKey rejects keys that would escape the output root.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("empty document key %q", key)
	}
	return cleaned, nil
}

// SaveDocument writes to a temp file next to the target and renames it into
// place, so readers never observe a half written document.
func (ls *LocalStorage) SaveDocument(ctx context.Context, key string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	target := filepath.Join(ls.outputDir, filepath.FromSlash(cleaned))
	dir := filepath.Dir(target)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close document: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("failed to chmod document: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return "", fmt.Errorf("failed to move document into place: %w", err)
	}

	log.Debug().Str("path", target).Int("bytes", len(body)).Msg("document written")
	return target, nil
}

func (ss *SpacesStorage) SaveDocument(ctx context.Context, key string, body []byte) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	_, err = ss.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(ss.bucket),
		Key:          aws.String(cleaned),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(getContentType(cleaned)),
		CacheControl: aws.String("public, max-age=300"),
		ACL:          aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", cleaned).Msg("Failed to upload document to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	// Return the CDN URL
	cdnURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), cleaned)
	return cdnURL, nil
}

func getContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
