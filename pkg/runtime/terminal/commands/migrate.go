package commands

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/store/database"
	"github.com/spf13/cobra"
)

type MigrateCmd struct {
	profile string
	envs    EnvironmentFactory
}

func NewMigrateCmd(envs EnvironmentFactory) *cobra.Command {
	mc := &MigrateCmd{envs: envs}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the reservation schema migrations",
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.profile, "profile", "", "Connection profile name")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (mc *MigrateCmd) run(cmd *cobra.Command, _ []string) error {
	env, err := mc.envs(cmd.Context(), mc.profile)
	if err != nil {
		return fmt.Errorf("failed to load profile %s: %w", mc.profile, err)
	}
	defer closeEnvironment(cmd, env)

	if err := database.RunMigrations(env.Settings); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied for profile %s\n", mc.profile)
	return nil
}
