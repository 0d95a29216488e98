package folder_sync

import (
	"context"
	"log/slog"
	"os"

	"github.com/censuskit/censuskit/helpers"
)

// Syncer ensures every file present in a remote folder is also present in a
// local directory. Comparison is by filename only - a locally corrupted file
// whose name matches the remote one is treated as already present.
type Syncer struct {
	source  FolderSource
	destDir string
}

func NewSyncer(source FolderSource, destDir string) *Syncer {
	return &Syncer{
		source:  source,
		destDir: destDir,
	}
}

// Sync lists the remote folder and downloads it if the local directory does
// not already hold every remote file.
//
// When any file is missing the whole remote folder is fetched again,
// already-present files included. The missing names drive the decision and
// the log line, not the download set. This matches the behavior of the
// system this tool replaced and keeps a partially-synced directory from
// drifting out of step with the remote folder.
func (s *Syncer) Sync(ctx context.Context) error {
	remoteFiles, err := s.source.ListFiles(ctx)
	if err != nil {
		return &RemoteListError{Source: s.source.Identifier(), Err: err}
	}

	remote := make(map[string]struct{}, len(remoteFiles))
	for _, f := range remoteFiles {
		remote[f.Base()] = struct{}{}
	}

	entries, err := os.ReadDir(s.destDir)
	if err != nil {
		return &FilesystemError{Path: s.destDir, Err: err}
	}
	local := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		local[e.Name()] = struct{}{}
	}

	missing := helpers.MissingFrom(remote, local)
	if len(missing) == 0 {
		slog.Info("All files already downloaded", "source", s.source.Identifier(), "dest", s.destDir)
		return nil
	}

	slog.Info("Downloading files", "missing", missing, "source", s.source.Identifier(), "dest", s.destDir)
	for _, f := range remoteFiles {
		if err := s.source.DownloadFile(ctx, f, s.destDir); err != nil {
			return err
		}
		slog.Debug("downloaded file", "file", f.Name)
	}

	return nil
}
