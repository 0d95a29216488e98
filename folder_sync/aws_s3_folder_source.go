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

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/censuskit/censuskit/types"
	typehelpers "github.com/turbot/go-kit/types"
)

const (
	AwsS3FolderSourceIdentifier = "aws_s3"
	defaultBucketRegion         = "us-east-1"
)

// AwsS3FolderSource is a [FolderSource] that reads a folder held in an S3
// bucket.
type AwsS3FolderSource struct {
	Config     AwsS3FolderSourceConfig
	Extensions types.ExtensionLookup
	client     *s3.Client
}

func NewAwsS3FolderSource(ctx context.Context, cfg AwsS3FolderSourceConfig) (*AwsS3FolderSource, error) {
	s := &AwsS3FolderSource{
		Config:     cfg,
		Extensions: types.NewExtensionLookup(cfg.Extensions),
	}

	if err := s.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if s.Config.Region == nil {
		slog.Info("No region set, using default", "region", defaultBucketRegion)
		region := defaultBucketRegion
		s.Config.Region = &region
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}
	s.client = client

	slog.Info("Initialized AwsS3FolderSource", "bucket", s.Config.Bucket, "prefix", s.Config.Prefix, "extensions", s.Extensions)
	return s, nil
}

func (s *AwsS3FolderSource) Identifier() string {
	return AwsS3FolderSourceIdentifier
}

func (s *AwsS3FolderSource) Close() error {
	return nil
}

func (s *AwsS3FolderSource) ValidateConfig() error {
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

func (s *AwsS3FolderSource) ListFiles(ctx context.Context) ([]*types.RemoteFile, error) {
	var files []*types.RemoteFile

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: &s.Config.Bucket,
		Prefix: &s.Config.Prefix,
	})

	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get page of S3 objects, %w", err)
		}
		for _, object := range output.Contents {
			key := typehelpers.SafeString(object.Key)
			if !s.Extensions.IsValid(key) {
				continue
			}
			location := fmt.Sprintf("s3://%s/%s", s.Config.Bucket, key)
			var size int64
			if object.Size != nil {
				size = *object.Size
			}
			files = append(files, types.NewRemoteFile(key, types.WithSize(size), types.WithSourceLocation(location)))
		}
	}

	return files, nil
}

func (s *AwsS3FolderSource) DownloadFile(ctx context.Context, file *types.RemoteFile, destDir string) error {
	getObjectOutput, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.Config.Bucket,
		Key:    &file.Name,
	})
	if err != nil {
		return fmt.Errorf("failed to download file, %w", err)
	}
	defer getObjectOutput.Body.Close()

	localFilePath := filepath.Join(destDir, file.Base())
	outFile, err := os.Create(localFilePath)
	if err != nil {
		return &FilesystemError{Path: localFilePath, Err: err}
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, getObjectOutput.Body); err != nil {
		return &FilesystemError{Path: localFilePath, Err: err}
	}

	return nil
}

func (s *AwsS3FolderSource) getClient(ctx context.Context) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	// add credentials if provided
	if s.Config.AccessKey != "" && s.Config.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.Config.AccessKey, s.Config.SecretKey, s.Config.SessionToken)))
	}

	opts = append(opts, config.WithRegion(typehelpers.SafeString(s.Config.Region)))

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %w", err)
	}

	return s3.NewFromConfig(cfg), nil
}
