package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akozyrev/checkride/internal/app"
	"github.com/akozyrev/checkride/internal/logging"
	"github.com/akozyrev/checkride/internal/screens/train"
	"github.com/akozyrev/checkride/internal/store"
)

// runApp opens the store and launches the TUI. A non-empty checklistRef
// skips the home screen and flies that checklist directly.
func runApp(cmd *cobra.Command, checklistRef string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The console is owned by the TUI; logs go to a file or nowhere.
	logger, closeLog, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = closeLog() }()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	logger.Info().Str("db", dbPath).Msg("starting checkride")

	opts := app.Options{Store: st, Logger: logger}
	if checklistRef != "" {
		cockpitID, checklistID, err := st.Cockpits().FindChecklist(context.Background(), checklistRef)
		if err != nil {
			return fmt.Errorf("resolve checklist %q: %w", checklistRef, err)
		}
		opts.InitialScreen = train.NewFor(st, cockpitID, checklistID)
	}

	return app.Run(opts)
}
