package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

const commandTimeout = 60 * time.Second

// reportFlags are shared by every command that computes a revenue report.
type reportFlags struct {
	profile    string
	propertyID string
	tenantID   string
	month      int
	year       int
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.profile, "profile", "", "Connection profile name")
	cmd.Flags().StringVar(&f.propertyID, "property", "", "Property ID")
	cmd.Flags().StringVar(&f.tenantID, "tenant", "", "Tenant ID owning the property")
	cmd.Flags().IntVar(&f.month, "month", 0, "Report month (1-12), requires --year")
	cmd.Flags().IntVar(&f.year, "year", 0, "Report year, requires --month")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("property")
	_ = cmd.MarkFlagRequired("tenant")
}

func (f *reportFlags) report(cmd *cobra.Command, envs EnvironmentFactory) (*api.RevenueReport, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	env, err := envs(ctx, f.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", f.profile, err)
	}
	defer closeEnvironment(cmd, env)

	report, err := env.Revenue.GetRevenueSummary(ctx, domain.SummaryRequest{
		PropertyID: f.propertyID,
		TenantID:   f.tenantID,
		Month:      optionalIntFlag(cmd, "month", f.month),
		Year:       optionalIntFlag(cmd, "year", f.year),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue summary: %w", err)
	}

	out := adapters.MapRevenueReportDomainToApi(*report)
	return &out, nil
}

type SummaryCmd struct {
	flags    reportFlags
	format   string
	envs     EnvironmentFactory
	reporter *export.Reporter
}

func NewSummaryCmd(envs EnvironmentFactory, reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{envs: envs, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show monthly revenue for a property",
		RunE:  sc.run,
	}

	sc.flags.register(cmd)
	cmd.Flags().StringVar(&sc.format, "format", export.FormatTable, "Output format: table or json")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	report, err := sc.flags.report(cmd, sc.envs)
	if err != nil {
		return err
	}
	return sc.reporter.Handle(*report, sc.format)
}
