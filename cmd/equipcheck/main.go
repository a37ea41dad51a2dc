// Command equipcheck records equipment inspections from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	checklistfile "github.com/custodia-labs/equipcheck/internal/adapters/driven/checklist/file"
	configfile "github.com/custodia-labs/equipcheck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/equipcheck/internal/adapters/driven/storage/null"
	"github.com/custodia-labs/equipcheck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/equipcheck/internal/adapters/driving/cli"
	"github.com/custodia-labs/equipcheck/internal/core/domain"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driven"
	"github.com/custodia-labs/equipcheck/internal/core/ports/driving"
	"github.com/custodia-labs/equipcheck/internal/core/services"
	"github.com/custodia-labs/equipcheck/internal/logger"
)

// version is injected with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage prefers the user-facing text for storage failures and keeps
// command errors (bad flags, unknown keys) as they are.
func errorMessage(err error) string {
	var se *domain.StorageError
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStorageUnavailable) || errors.As(err, &se) {
		if logger.IsVerbose() {
			fmt.Fprintln(os.Stderr, "Detail:", err)
		}
		return domain.UserMessage(err)
	}
	return err.Error()
}

func run(ctx context.Context) error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("reading settings: %v; using defaults", err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}
	logger.SetVerbose(settings.Verbose)
	logger.Section("equipcheck " + version)

	var store driven.InspectionStore
	sqliteStore, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		logger.Error("opening inspection database: %v", err)
		store = null.NewInspectionStore(err)
	} else {
		defer func() {
			if cerr := sqliteStore.Close(); cerr != nil {
				logger.Error("closing inspection database: %v", cerr)
			}
		}()
		logger.Debug("inspection database at %s", sqliteStore.Path())
		store = sqliteStore
	}

	checklist, err := checklistfile.NewTemplateStore(settings.ChecklistPath)
	if err != nil {
		return fmt.Errorf("opening checklist: %w", err)
	}

	inspectionService := services.NewInspectionService(store)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Inspections: inspectionService,
		Settings:    settingsService,
		NewWorkflow: func() driving.Workflow {
			return services.NewWorkflow(inspectionService, checklist)
		},
	})

	return cli.Execute(ctx)
}
