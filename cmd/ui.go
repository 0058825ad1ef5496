package cmd

import (
	"context"
	"fmt"

	"github.com/CosmoTheDev/lockrelay/internal/config"
	"github.com/CosmoTheDev/lockrelay/internal/database"
	"github.com/CosmoTheDev/lockrelay/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the terminal dashboard",
	Long:  `Opens the interactive terminal UI showing every tracked server, its lock state, the current holder, and the subscribed channel.`,
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	app := tui.NewApp(db)
	return app.Run()
}
