// Package folder_sync mirrors a remote cloud-storage folder into a local
// directory.
//
// A [FolderSource] lists the files in a remote folder (metadata only) and can
// download individual files. Sources provided:
// - [GcpStorageFolderSource]
// - [AwsS3FolderSource]
//
// The [Syncer] compares the remote filename set against the local directory's
// contents. If every remote file is already present locally nothing is
// downloaded; otherwise the whole remote folder is fetched again. Comparison
// is by filename only, so file contents are never checked.
package folder_sync
