package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/store/export"
	"github.com/spf13/cobra"
)

// ArchiveFactory builds the S3 report archive for a bucket.
type ArchiveFactory func(ctx context.Context, awsProfile, bucket string) (*export.ReportArchive, error)

func S3ArchiveFactory(ctx context.Context, awsProfile, bucket string) (*export.ReportArchive, error) {
	cfg, err := export.LoadAWSConfig(ctx, awsProfile)
	if err != nil {
		return nil, err
	}
	return export.NewReportArchive(export.NewS3Client(cfg), bucket)
}

type ExportCmd struct {
	flags      reportFlags
	bucket     string
	key        string
	awsProfile string
	envs       EnvironmentFactory
	archives   ArchiveFactory
}

func NewExportCmd(envs EnvironmentFactory, archives ArchiveFactory) *cobra.Command {
	ec := &ExportCmd{envs: envs, archives: archives}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a property's revenue report to S3 as JSON",
		RunE:  ec.run,
	}

	ec.flags.register(cmd)
	cmd.Flags().StringVar(&ec.bucket, "bucket", "", "Destination S3 bucket")
	cmd.Flags().StringVar(&ec.key, "key", "", "Object key (default revenue/<tenant>/<property>/<month>.json)")
	cmd.Flags().StringVar(&ec.awsProfile, "aws-profile", "", "AWS shared config profile")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	report, err := ec.flags.report(cmd, ec.envs)
	if err != nil {
		return err
	}

	archive, err := ec.archives(cmd.Context(), ec.awsProfile, ec.bucket)
	if err != nil {
		return fmt.Errorf("failed to prepare report archive: %w", err)
	}

	key := ec.key
	if key == "" {
		key = export.DefaultKey(*report)
	}
	if err := archive.Put(cmd.Context(), key, *report); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported s3://%s/%s\n", ec.bucket, key)
	return nil
}
