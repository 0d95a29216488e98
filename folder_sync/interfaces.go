package folder_sync

import (
	"context"

	"github.com/censuskit/censuskit/types"
)

// FolderSource is a remote folder that can be listed and downloaded from.
// Listing is metadata-only - no file content is fetched.
type FolderSource interface {
	Identifier() string
	ListFiles(ctx context.Context) ([]*types.RemoteFile, error)
	DownloadFile(ctx context.Context, file *types.RemoteFile, destDir string) error
	Close() error
}
