package folder_sync

import "fmt"

// RemoteListError indicates the remote folder could not be listed - the
// source is unreachable or its identifier is invalid.
type RemoteListError struct {
	Source string
	Err    error
}

func (e *RemoteListError) Error() string {
	return fmt.Sprintf("failed to list remote folder (%s): %s", e.Source, e.Err)
}

func (e *RemoteListError) Unwrap() error {
	return e.Err
}

// FilesystemError indicates the local destination could not be read or
// written - the directory is missing, unreadable, or a file write failed.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem error at %s: %s", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
