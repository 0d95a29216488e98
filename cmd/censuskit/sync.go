package main

import (
	"context"
	"fmt"

	"github.com/censuskit/censuskit/config"
	"github.com/censuskit/censuskit/folder_sync"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	typehelpers "github.com/turbot/go-kit/types"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [flags]",
		Short: "Mirror a remote cloud-storage folder into a local directory",
		RunE:  runSyncCmd,
	}

	cmd.Flags().String("source", folder_sync.GcpStorageFolderSourceIdentifier, "Remote source type: gcp_storage or aws_s3")
	cmd.Flags().String("bucket", "", "Bucket holding the remote folder")
	cmd.Flags().String("prefix", "", "Object key prefix identifying the folder within the bucket")
	cmd.Flags().String("dest", "", "Local destination directory (must exist)")
	cmd.Flags().String("credentials", "", "GCP service account key file or contents")
	cmd.Flags().String("region", "", "AWS region of the bucket")
	cmd.Flags().StringSlice("extension", nil, "Only sync files with this extension, repeatable")
	viper.BindPFlag("sync.source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("sync.bucket", cmd.Flags().Lookup("bucket"))
	viper.BindPFlag("sync.prefix", cmd.Flags().Lookup("prefix"))
	viper.BindPFlag("sync.dest", cmd.Flags().Lookup("dest"))
	viper.BindPFlag("sync.credentials", cmd.Flags().Lookup("credentials"))
	viper.BindPFlag("sync.region", cmd.Flags().Lookup("region"))
	viper.BindPFlag("sync.extensions", cmd.Flags().Lookup("extension"))

	return cmd
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	sc := &config.Sync{
		Name:        "cli",
		Source:      viper.GetString("sync.source"),
		Bucket:      viper.GetString("sync.bucket"),
		Destination: viper.GetString("sync.dest"),
		Extensions:  viper.GetStringSlice("sync.extensions"),
	}
	if prefix := viper.GetString("sync.prefix"); prefix != "" {
		sc.Prefix = &prefix
	}
	if credentials := viper.GetString("sync.credentials"); credentials != "" {
		sc.Credentials = &credentials
	}
	if region := viper.GetString("sync.region"); region != "" {
		sc.Region = &region
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	return runSync(cmd.Context(), sc)
}

func runSync(ctx context.Context, sc *config.Sync) error {
	source, err := newFolderSource(ctx, sc)
	if err != nil {
		return err
	}
	defer source.Close()

	return folder_sync.NewSyncer(source, sc.Destination).Sync(ctx)
}

func newFolderSource(ctx context.Context, sc *config.Sync) (folder_sync.FolderSource, error) {
	prefix := typehelpers.SafeString(sc.Prefix)

	switch sc.Source {
	case folder_sync.GcpStorageFolderSourceIdentifier:
		return folder_sync.NewGcpStorageFolderSource(ctx, folder_sync.GcpStorageFolderSourceConfig{
			Bucket:      sc.Bucket,
			Prefix:      prefix,
			Extensions:  sc.Extensions,
			Credentials: sc.Credentials,
		})
	case folder_sync.AwsS3FolderSourceIdentifier:
		return folder_sync.NewAwsS3FolderSource(ctx, folder_sync.AwsS3FolderSourceConfig{
			Bucket:     sc.Bucket,
			Prefix:     prefix,
			Extensions: sc.Extensions,
			Region:     sc.Region,
		})
	default:
		return nil, fmt.Errorf("unknown source %q", sc.Source)
	}
}
