package commands

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/services/export"
	"github.com/spf13/cobra"
)

type ExportAllCmd struct {
	profile     string
	tenantID    string
	month       int
	year        int
	bucket      string
	awsProfile  string
	concurrency int
	envs        EnvironmentFactory
	archives    ArchiveFactory
}

func NewExportAllCmd(envs EnvironmentFactory, archives ArchiveFactory) *cobra.Command {
	ec := &ExportAllCmd{envs: envs, archives: archives}
	cmd := &cobra.Command{
		Use:   "export-all",
		Short: "Upload the revenue report of every property of a tenant to S3",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.profile, "profile", "", "Connection profile name")
	cmd.Flags().StringVar(&ec.tenantID, "tenant", "", "Tenant ID")
	cmd.Flags().IntVar(&ec.month, "month", 0, "Report month (1-12), requires --year")
	cmd.Flags().IntVar(&ec.year, "year", 0, "Report year, requires --month")
	cmd.Flags().StringVar(&ec.bucket, "bucket", "", "Destination S3 bucket")
	cmd.Flags().StringVar(&ec.awsProfile, "aws-profile", "", "AWS shared config profile")
	cmd.Flags().IntVar(&ec.concurrency, "concurrency", 4, "Reports computed in parallel")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}

func (ec *ExportAllCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	env, err := ec.envs(ctx, ec.profile)
	if err != nil {
		return fmt.Errorf("failed to load profile %s: %w", ec.profile, err)
	}
	defer closeEnvironment(cmd, env)

	archive, err := ec.archives(ctx, ec.awsProfile, ec.bucket)
	if err != nil {
		return fmt.Errorf("failed to prepare report archive: %w", err)
	}

	runner := export.NewRunner(env.Directory, env.Revenue, archive, export.RunnerConfig{
		Concurrency: ec.concurrency,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range runner.Progress() {
			fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] s3://%s/%s\n",
				p.ExportedReports, p.TotalReports, ec.bucket, p.Key)
		}
	}()

	err = runner.Run(ctx, ec.tenantID, optionalIntFlag(cmd, "month", ec.month), optionalIntFlag(cmd, "year", ec.year))
	<-done
	return err
}
