package terminal

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/revenue-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const DefaultProfilesFile = ".revenuecfg"

// CLI represents the command-line interface
type CLI struct {
	profilesPath string
	reporter     *export.Reporter
	logger       zerolog.Logger
	environments commands.EnvironmentFactory
	archives     commands.ArchiveFactory
	rootCmd      *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	ProfilesPath string
	Output       io.Writer
	Logger       *zerolog.Logger
	// Environments overrides profile resolution, mainly for tests.
	Environments commands.EnvironmentFactory
	Archives     commands.ArchiveFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ProfilesPath == "" {
		home, _ := os.UserHomeDir()
		opts.ProfilesPath = filepath.Join(home, DefaultProfilesFile)
	}
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		profilesPath: opts.ProfilesPath,
		reporter:     export.NewReporter(opts.Output),
		logger:       logger,
		environments: opts.Environments,
		archives:     opts.Archives,
	}
	if cli.environments == nil {
		cli.environments = cli.profileEnvironment
	}
	if cli.archives == nil {
		cli.archives = commands.S3ArchiveFactory
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(context.Background()))
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "revenue",
		Short:         "Property revenue reporting tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cli.profilesPath, "profiles", cli.profilesPath,
		"Path to the connection profiles file")

	cmd.AddCommand(commands.NewSummaryCmd(cli.environments, cli.reporter))
	cmd.AddCommand(commands.NewPropertiesCmd(cli.environments, cli.reporter))
	cmd.AddCommand(commands.NewMigrateCmd(cli.environments))
	cmd.AddCommand(commands.NewSeedCmd(cli.environments))
	cmd.AddCommand(commands.NewExportCmd(cli.environments, cli.archives))
	cmd.AddCommand(commands.NewExportAllCmd(cli.environments, cli.archives))
	cmd.AddCommand(commands.NewTokenCmd())

	return cmd
}

func (cli *CLI) profileEnvironment(ctx context.Context, profile string) (*commands.Environment, error) {
	registry, err := config.NewRegistry(cli.profilesPath)
	if err != nil {
		return nil, err
	}
	settings, err := registry.GetSettings(ctx, profile)
	if err != nil {
		return nil, err
	}
	return commands.NewEnvironment(ctx, *settings), nil
}
