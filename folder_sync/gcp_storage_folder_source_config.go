package folder_sync

// GcpStorageFolderSourceConfig is the configuration for [GcpStorageFolderSource]
type GcpStorageFolderSourceConfig struct {
	Bucket     string
	Prefix     string
	Extensions []string

	// Credentials is a path to a service account key file, or the key JSON
	// itself. Application default credentials are used when unset.
	Credentials  *string
	QuotaProject *string
}
