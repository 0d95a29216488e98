package folder_sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/censuskit/censuskit/helpers"
	"github.com/censuskit/censuskit/types"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const GcpStorageFolderSourceIdentifier = "gcp_storage"

// GcpStorageFolderSource is a [FolderSource] that reads a folder held in a
// GCP Storage bucket.
type GcpStorageFolderSource struct {
	Config     GcpStorageFolderSourceConfig
	Extensions types.ExtensionLookup
	client     *storage.Client
}

func NewGcpStorageFolderSource(ctx context.Context, config GcpStorageFolderSourceConfig) (*GcpStorageFolderSource, error) {
	s := &GcpStorageFolderSource{
		Config:     config,
		Extensions: types.NewExtensionLookup(config.Extensions),
	}

	if err := s.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}
	s.client = client

	slog.Info("Initialized GcpStorageFolderSource", "bucket", s.Config.Bucket, "prefix", s.Config.Prefix, "extensions", s.Extensions)
	return s, nil
}

func (s *GcpStorageFolderSource) Identifier() string {
	return GcpStorageFolderSourceIdentifier
}

func (s *GcpStorageFolderSource) Close() error {
	return s.client.Close()
}

func (s *GcpStorageFolderSource) ValidateConfig() error {
	if s.Config.Bucket == "" {
		return errors.New("bucket is required")
	}

	// Check format of extensions
	var invalidExtensions []string
	for _, e := range s.Config.Extensions {
		if len(e) == 0 {
			invalidExtensions = append(invalidExtensions, "<empty>")
		} else if e[0] != '.' {
			invalidExtensions = append(invalidExtensions, e)
		}
	}
	if len(invalidExtensions) > 0 {
		return fmt.Errorf("invalid extensions: %s", strings.Join(invalidExtensions, ","))
	}

	return nil
}

func (s *GcpStorageFolderSource) ListFiles(ctx context.Context) ([]*types.RemoteFile, error) {
	bucket := s.client.Bucket(s.Config.Bucket)
	query := &storage.Query{Prefix: s.Config.Prefix}

	var files []*types.RemoteFile
	objectIterator := bucket.Objects(ctx, query)
	for {
		obj, err := objectIterator.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("failed to list objects in bucket: %s", err.Error())
		}
		if s.Extensions.IsValid(obj.Name) {
			location := fmt.Sprintf("gs://%s/%s", s.Config.Bucket, obj.Name)
			files = append(files, types.NewRemoteFile(obj.Name, types.WithSize(obj.Size), types.WithSourceLocation(location)))
		}
	}
	return files, nil
}

func (s *GcpStorageFolderSource) DownloadFile(ctx context.Context, file *types.RemoteFile, destDir string) error {
	bucket := s.client.Bucket(s.Config.Bucket)
	obj := bucket.Object(file.Name)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return fmt.Errorf("failed to get object reader: %s", err.Error())
	}
	defer reader.Close()

	localFilePath := filepath.Join(destDir, file.Base())
	outFile, err := os.Create(localFilePath)
	if err != nil {
		return &FilesystemError{Path: localFilePath, Err: err}
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, reader); err != nil {
		return &FilesystemError{Path: localFilePath, Err: err}
	}

	return nil
}

func (s *GcpStorageFolderSource) getClient(ctx context.Context) (*storage.Client, error) {
	opts, err := s.setSessionConfig()
	if err != nil {
		return nil, fmt.Errorf("failed setting GCP Storage client config: %s", err.Error())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Storage client: %s", err.Error())
	}

	return client, nil
}

func (s *GcpStorageFolderSource) setSessionConfig() ([]option.ClientOption, error) {
	var opts []option.ClientOption

	// Credentials
	if s.Config.Credentials != nil {
		credentials, err := helpers.PathOrContents(*s.Config.Credentials)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %s", err.Error())
		}

		opts = append(opts, option.WithCredentialsJSON([]byte(credentials)))
	}

	// Quota Project
	quotaProject := os.Getenv("GOOGLE_CLOUD_QUOTA_PROJECT")

	if s.Config.QuotaProject != nil {
		quotaProject = *s.Config.QuotaProject
	}

	if quotaProject != "" {
		opts = append(opts, option.WithQuotaProject(quotaProject))
	}

	return opts, nil
}
