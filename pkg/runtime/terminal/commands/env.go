package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/services/fixtures"
	"github.com/de-tools/revenue-atlas/pkg/services/property"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/de-tools/revenue-atlas/pkg/store/database"
	propertystore "github.com/de-tools/revenue-atlas/pkg/store/property"
	"github.com/de-tools/revenue-atlas/pkg/store/pool"
	reservationstore "github.com/de-tools/revenue-atlas/pkg/store/reservation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Environment is the wiring a command needs to talk to one database profile.
type Environment struct {
	Settings    database.Settings
	Provisioner *pool.Provisioner
	Revenue     revenue.Service
	Directory   property.Directory
	Loader      *fixtures.Loader
}

func NewEnvironment(ctx context.Context, settings database.Settings) *Environment {
	provisioner := pool.NewProvisioner(pool.Opener(database.NewOpener(settings)), *zerolog.Ctx(ctx))
	properties := propertystore.NewStore(settings.Driver)
	reservations := reservationstore.NewStore(settings.Driver)
	return &Environment{
		Settings:    settings,
		Provisioner: provisioner,
		Revenue:     revenue.NewService(provisioner, reservations),
		Directory:   property.NewDirectory(provisioner, properties),
		Loader:      fixtures.NewLoader(provisioner, properties, reservations),
	}
}

func (e *Environment) Close() error {
	return e.Provisioner.Shutdown()
}

// EnvironmentFactory resolves a named connection profile.
type EnvironmentFactory func(ctx context.Context, profile string) (*Environment, error)

func optionalIntFlag(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := value
	return &v
}

func closeEnvironment(cmd *cobra.Command, env *Environment) {
	if err := env.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to close database pool: %v\n", err)
	}
}
