package main

import (
	"fmt"

	"adam/config"
	"adam/filter"
	"adam/logging"
	"adam/prefs"
	"adam/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBrowseCmd(a *app) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive article browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewFile(logFile, a.verbose || a.settings.Debug)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer logger.Sync()

			loader, closeFn, err := a.openLoader(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer closeFn()

			p, err := prefs.Load(a.settings.PrefsPath)
			if err != nil {
				// Fall back to defaults; saving later rewrites the file
				logger.Warn("Failed to load preferences", zap.Error(err))
			}

			model := tui.NewModel(loader, tui.Options{
				Engine: filter.NewEngine(
					filter.WithLogger(logger),
					filter.WithRangeCache(config.RangeCacheSize)),
				Logger:    logger,
				Prefs:     p,
				PrefsPath: a.settings.PrefsPath,
			})

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browser exited: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "adam.log", "Where the browser writes its log")
	return cmd
}
