package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/plexiform/gdocs-cli/internal/auth"
	"github.com/plexiform/gdocs-cli/internal/config"
	"github.com/plexiform/gdocs-cli/internal/docs"
	"github.com/plexiform/gdocs-cli/internal/drive"
	"github.com/plexiform/gdocs-cli/internal/google"
	"github.com/plexiform/gdocs-cli/internal/sheets"
)

type services struct {
	cfg    *config.Config
	docs   *docs.Service
	drive  *drive.Service
	sheets *sheets.Service
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// credentialPaths resolves the credential file locations, letting the
// config file override the shared defaults.
func credentialPaths(cfg *config.Config) (auth.Paths, error) {
	paths, err := auth.DefaultPaths()
	if err != nil {
		return auth.Paths{}, err
	}
	if cfg.Credentials != "" {
		paths.Credentials = cfg.Credentials
	}
	if cfg.Token != "" {
		paths.Token = cfg.Token
	}
	return paths, nil
}

// newServices loads config, ensures a valid token (refreshing if needed)
// and wires the API services around one shared client.
func newServices(ctx context.Context) (*services, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	paths, err := credentialPaths(cfg)
	if err != nil {
		return nil, err
	}
	tok, err := auth.EnsureToken(ctx, paths)
	if err != nil {
		return nil, err
	}

	client := google.NewClient(tok.AccessToken, cfg.Timeout())
	if debugFlag {
		client.EnableDebug(os.Stderr)
	}
	return &services{
		cfg:    cfg,
		docs:   docs.NewService(client),
		drive:  drive.NewService(client),
		sheets: sheets.NewService(client),
	}, nil
}

// runOperation is the shared command body: bootstrap, run, emit one JSON
// envelope either way.
func runOperation(operation string, fn func(ctx context.Context, svc *services) (map[string]any, error)) error {
	ctx := context.Background()
	svc, err := newServices(ctx)
	if err != nil {
		return emitError(operation, err)
	}
	result, err := fn(ctx, svc)
	if err != nil {
		return emitError(operation, err)
	}
	return emitResult(result)
}
