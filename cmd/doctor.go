package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/CosmoTheDev/lockrelay/internal/config"
	"github.com/CosmoTheDev/lockrelay/internal/database"
	"github.com/CosmoTheDev/lockrelay/internal/store"
	"github.com/CosmoTheDev/lockrelay/internal/telegram"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify credentials, database, and bot health",
	Long: `Checks that the required configuration keys are set, the database can
be reached and migrated, and the Telegram bot token is accepted by the
Bot API.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	allOK := true

	fmt.Println("=== lockrelay doctor ===")
	fmt.Println()

	// Check required keys
	fmt.Print("Configuration ............ ")
	if err := cfg.Validate(); err != nil {
		fmt.Printf("FAIL (%s)\n", err)
		allOK = false
	} else {
		fmt.Println("OK")
	}

	// Check database
	fmt.Print("Database ................. ")
	db, err := database.New(cfg.Database)
	if err != nil {
		fmt.Printf("FAIL (%s)\n", err)
		allOK = false
	} else {
		if err := db.Ping(ctx); err != nil {
			fmt.Printf("FAIL (%s)\n", err)
			allOK = false
		} else if err := db.Migrate(ctx); err != nil {
			fmt.Printf("FAIL (migrations: %s)\n", err)
			allOK = false
		} else {
			fmt.Printf("OK (%s)\n", db.Driver())

			// Count tracked servers while we have a connection.
			fmt.Print("Tracked servers .......... ")
			servers, err := store.New(db).AllServers(ctx)
			switch {
			case err != nil:
				fmt.Printf("FAIL (%s)\n", err)
				allOK = false
			case len(servers) == 0:
				fmt.Println("WARN (none provisioned — insert rows into ServerStatus)")
			default:
				open := 0
				for _, s := range servers {
					if s.IsOpen {
						open++
					}
				}
				fmt.Printf("OK (%d tracked, %d open)\n", len(servers), open)
			}
		}
		db.Close()
	}

	// Check Telegram bot
	fmt.Print("Telegram bot ............. ")
	if cfg.Telegram.Token == "" {
		fmt.Println("FAIL (no token — run 'lockrelay onboard')")
		allOK = false
	} else {
		bot := telegram.NewClient(cfg.Telegram.Token)
		if name, err := bot.Me(ctx); err != nil {
			fmt.Printf("FAIL (%s)\n", err)
			allOK = false
		} else {
			fmt.Printf("OK (@%s)\n", name)
		}
	}

	fmt.Println()
	if allOK {
		fmt.Println(successStyle.Render("All checks passed — lockrelay is ready!"))
		return nil
	}
	fmt.Println(warnStyle.Render("Some checks failed — run 'lockrelay onboard' to fix."))
	return errors.New("doctor found problems")
}
