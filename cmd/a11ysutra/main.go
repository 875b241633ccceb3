package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/a11ysutra/a11ysutra-cli/internal/config"
	"github.com/a11ysutra/a11ysutra-cli/internal/logging"
	"github.com/a11ysutra/a11ysutra-cli/internal/output"
	"github.com/a11ysutra/a11ysutra-cli/internal/session"
	"github.com/a11ysutra/a11ysutra-cli/pkg/sutra"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Shared command dependencies, initialized in the persistent pre-run.
var (
	cfg          *config.Config
	sessionStore *session.Store
	apiClient    *sutra.Client
	ui           *output.UI
)

var rootCmd = &cobra.Command{
	Use:           "a11ysutra",
	Short:         "A11ySutra - WCAG accessibility auditing client",
	Long:          `a11ysutra is a command-line client for the A11ySutra accessibility audit service. It submits URLs for WCAG 2.1/2.2 auditing, browses AI-augmented violation reports and audit history, and exports reports as PDF.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initDeps()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("a11ysutra %s\n", Version)
		if BuildTime != "unknown" {
			fmt.Printf("Built: %s\n", BuildTime)
		}
		if GitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", GitCommit)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
}

func initDeps() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: "a11ysutra",
		FilePath:  cfg.LogFile,
	})

	ui = output.New()

	sessionStore = session.NewStore(cfg.SessionPath)
	sess, err := sessionStore.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	apiClient, err = sutra.NewClient(sutra.ClientConfig{
		BaseURL: cfg.APIURL,
		Token:   sess.Token,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	log.Debug().Str("api_url", cfg.APIURL).Bool("authenticated", sess.Authenticated).Msg("Client initialized")
	return nil
}

// requireAuth rejects authenticated commands when no session is present.
func requireAuth() error {
	if !sessionStore.Current().Authenticated {
		return fmt.Errorf("not signed in - run 'a11ysutra login' first")
	}
	return nil
}

func main() {
	defer logging.Shutdown()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
