package commands

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type PropertiesCmd struct {
	profile  string
	tenantID string
	envs     EnvironmentFactory
	reporter *export.Reporter
}

func NewPropertiesCmd(envs EnvironmentFactory, reporter *export.Reporter) *cobra.Command {
	pc := &PropertiesCmd{envs: envs, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "List the properties of a tenant",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profile, "profile", "", "Connection profile name")
	cmd.Flags().StringVar(&pc.tenantID, "tenant", "", "Tenant ID")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func (pc *PropertiesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	env, err := pc.envs(ctx, pc.profile)
	if err != nil {
		return fmt.Errorf("failed to load profile %s: %w", pc.profile, err)
	}
	defer closeEnvironment(cmd, env)

	properties, err := env.Directory.ListProperties(ctx, pc.tenantID)
	if err != nil {
		return err
	}

	out := make([]api.Property, 0, len(properties))
	for _, p := range properties {
		out = append(out, adapters.MapPropertyDomainToApi(p))
	}
	return pc.reporter.HandleProperties(out)
}
