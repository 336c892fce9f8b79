package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/revenue-atlas/pkg/services/fixtures"
	"github.com/spf13/cobra"
)

type SeedCmd struct {
	profile string
	file    string
	envs    EnvironmentFactory
}

func NewSeedCmd(envs EnvironmentFactory) *cobra.Command {
	sc := &SeedCmd{envs: envs}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load properties and reservations from a JSON dataset",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profile, "profile", "", "Connection profile name")
	cmd.Flags().StringVar(&sc.file, "file", "", "Path to the JSON dataset")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(sc.file)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := fixtures.ReadDataset(f)
	if err != nil {
		return err
	}

	env, err := sc.envs(cmd.Context(), sc.profile)
	if err != nil {
		return fmt.Errorf("failed to load profile %s: %w", sc.profile, err)
	}
	defer closeEnvironment(cmd, env)

	if err := env.Loader.Load(cmd.Context(), ds); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d properties and %d reservations\n",
		len(ds.Properties), len(ds.Reservations))
	return nil
}
