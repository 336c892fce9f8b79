package config

import (
	"context"
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/store/database"
	"gopkg.in/ini.v1"
)

// Registry resolves named connection profiles for the CLI, read from an INI
// file such as ~/.revenuecfg:
//
//	[staging]
//	driver = postgres
//	dsn    = postgres://...
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetSettings(ctx context.Context, profile string) (*database.Settings, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetSettings(_ context.Context, profile string) (*database.Settings, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	settings := &database.Settings{
		Driver:       section.Key("driver").MustString(database.DriverPostgres),
		DSN:          section.Key("dsn").String(),
		MaxOpenConns: section.Key("max_open_conns").MustInt(4),
		PingTimeout:  section.Key("ping_timeout").MustDuration(0),
		Migrate:      section.Key("migrate").MustBool(false),
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile, err)
	}
	return settings, nil
}
