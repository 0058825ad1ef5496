package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CosmoTheDev/lockrelay/internal/config"
	"github.com/CosmoTheDev/lockrelay/internal/telegram"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Interactive setup wizard for lockrelay",
	Long: `Walks you through configuring lockrelay:
  - GitHub webhook secret (shared with the repository webhook)
  - Telegram bot token and webhook secret
  - Database backend (SQLite by default, MySQL optional)
  - Optional reminder schedule for open locks

Servers themselves are provisioned directly in the ServerStatus table;
the wizard only sets up credentials and storage.`,
	RunE: runOnboard,
}

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#14B8A6")).
	MarginBottom(1)

var successStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#10B981"))

var warnStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F59E0B"))

var dimStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#6B7280"))

func runOnboard(cmd *cobra.Command, args []string) error {
	fmt.Println()
	fmt.Println(headerStyle.Render("  lockrelay — GitHub push → Telegram lock relay"))
	fmt.Println(dimStyle.Render("  Flip a per-server lock table from push events and notify channels.\n"))

	// Load existing config or start fresh.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		cfg = &config.Config{}
	}

	// --- Step 1: GitHub webhook secret ---
	fmt.Println(headerStyle.Render("  Step 1/4 · GitHub Webhook"))
	fmt.Println(dimStyle.Render("  The same secret must be set on the repository webhook so that"))
	fmt.Println(dimStyle.Render("  push deliveries carry a valid x-hub-signature-256 header.\n"))

	githubSecret := cfg.GitHub.WebhookSecret

	ghForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub webhook secret").
				Description("Repository settings → Webhooks → Secret. Any long random string works.").
				EchoMode(huh.EchoModePassword).
				Value(&githubSecret),
		),
	)
	if err := ghForm.Run(); err != nil {
		return err
	}
	cfg.GitHub.WebhookSecret = strings.TrimSpace(githubSecret)

	// --- Step 2: Telegram bot ---
	fmt.Println(headerStyle.Render("\n  Step 2/4 · Telegram Bot"))
	fmt.Println(dimStyle.Render("  Create a bot with @BotFather, then register this relay as its"))
	fmt.Println(dimStyle.Render("  webhook via setWebhook with the same secret_token.\n"))

	botToken := cfg.Telegram.Token
	tgSecret := cfg.Telegram.WebhookSecret

	tgForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bot API token").
				Placeholder("123456:ABC-DEF...").
				EchoMode(huh.EchoModePassword).
				Value(&botToken),
			huh.NewInput().
				Title("Webhook secret token").
				Description("Telegram echoes this back in x-telegram-bot-api-secret-token.").
				EchoMode(huh.EchoModePassword).
				Value(&tgSecret),
		),
	)
	if err := tgForm.Run(); err != nil {
		return err
	}
	cfg.Telegram.Token = strings.TrimSpace(botToken)
	cfg.Telegram.WebhookSecret = strings.TrimSpace(tgSecret)

	if cfg.Telegram.Token != "" {
		fmt.Print("  Checking bot token... ")
		bot := telegram.NewClient(cfg.Telegram.Token)
		if name, err := bot.Me(context.Background()); err != nil {
			fmt.Println(warnStyle.Render("warning: " + err.Error()))
		} else {
			fmt.Println(successStyle.Render("@" + name))
		}
	}

	// --- Step 3: Database ---
	fmt.Println(headerStyle.Render("\n  Step 3/4 · Database"))

	driver := cfg.Database.Driver
	if driver == "" {
		driver = "sqlite"
	}
	dsn := cfg.Database.DSN

	dbForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("SQLite (zero setup, single file)", "sqlite"),
					huh.NewOption("MySQL (shared deployments)", "mysql"),
				).
				Value(&driver),
		),
	)
	if err := dbForm.Run(); err != nil {
		return err
	}
	cfg.Database.Driver = driver

	if driver == "mysql" {
		dsnForm := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("MySQL DSN").
				Placeholder("user:pass@tcp(127.0.0.1:3306)/lockrelay").
				Value(&dsn),
		))
		if err := dsnForm.Run(); err != nil {
			return err
		}
		cfg.Database.DSN = strings.TrimSpace(dsn)
	}

	// --- Step 4: Reminder schedule ---
	fmt.Println(headerStyle.Render("\n  Step 4/4 · Open-Lock Reminder (optional)"))
	fmt.Println(dimStyle.Render("  A cron expression; the relay posts a digest of servers still"))
	fmt.Println(dimStyle.Render("  open to their subscribed channels. Leave blank to disable.\n"))

	schedule := cfg.Reminder.Schedule

	remForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reminder schedule").
				Description(`Examples: "@every 6h", "0 9 * * *", "@daily"`).
				Placeholder("@every 6h  (optional)").
				Value(&schedule),
		),
	)
	if err := remForm.Run(); err != nil {
		return err
	}
	cfg.Reminder.Schedule = strings.TrimSpace(schedule)

	// Save config
	cfgPath, _ := config.ConfigPath(cfgFile)
	if err := config.Save(cfg, cfgPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("  Setup complete!"))
	fmt.Printf("  Config saved to: %s\n\n", dimStyle.Render(cfgPath))

	if err := cfg.Validate(); err != nil {
		fmt.Println(warnStyle.Render("  Config is still incomplete: " + err.Error()))
		fmt.Println(dimStyle.Render("  Re-run 'lockrelay onboard' to fill in the missing keys."))
		fmt.Println()
	}

	fmt.Println(dimStyle.Render("  Next steps:"))
	fmt.Println(dimStyle.Render("    lockrelay doctor   — verify credentials and database health"))
	fmt.Println(dimStyle.Render("    lockrelay serve    — start the relay daemon"))
	fmt.Println(dimStyle.Render("    lockrelay ui       — launch the terminal dashboard"))
	fmt.Println()

	slog.Debug("Onboarding complete", "config", cfgPath)
	return nil
}
