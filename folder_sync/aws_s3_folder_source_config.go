package folder_sync

// AwsS3FolderSourceConfig is the configuration for [AwsS3FolderSource]
type AwsS3FolderSourceConfig struct {
	Bucket     string
	Prefix     string
	Extensions []string

	Region       *string
	AccessKey    string
	SecretKey    string
	SessionToken string
}
