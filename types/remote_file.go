package types

import "path"

// RemoteFile describes a single file in a remote folder, as returned by a
// metadata-only listing. No content is fetched to build one.
type RemoteFile struct {
	// Name is the object key relative to the folder root
	Name string `json:"name"`
	// Size in bytes as reported by the remote listing
	Size int64 `json:"size,omitempty"`
	// SourceLocation identifies where the file came from, e.g. "gs://bucket/prefix"
	SourceLocation string `json:"source_location,omitempty"`
}

func NewRemoteFile(name string, opts ...RemoteFileOpts) *RemoteFile {
	res := &RemoteFile{
		Name: name,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Base returns the filename component of the object key, which is what local
// directory contents are compared against.
func (f *RemoteFile) Base() string {
	return path.Base(f.Name)
}

type RemoteFileOpts func(*RemoteFile)

func WithSize(size int64) RemoteFileOpts {
	return func(f *RemoteFile) {
		f.Size = size
	}
}

func WithSourceLocation(location string) RemoteFileOpts {
	return func(f *RemoteFile) {
		f.SourceLocation = location
	}
}
