package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GregMSThompson/ledger-backend/internal/bootstrap"
	"github.com/GregMSThompson/ledger-backend/internal/config"
	"github.com/GregMSThompson/ledger-backend/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Operator tooling for the ledger backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.String("project", "", "GCP project id (env PROJECTID)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOGLEVEL)")
	flags.String("timezone", "", "IANA zone used for monthly figures (env TIMEZONE)")

	_ = viper.BindPFlag("projectid", flags.Lookup("project"))
	_ = viper.BindPFlag("loglevel", flags.Lookup("log-level"))
	_ = viper.BindPFlag("timezone", flags.Lookup("timezone"))

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(balancesCmd())
	rootCmd.AddCommand(migrateLegacyCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers flags over the environment. config.New has already
// loaded any .env file, so viper sees those values too.
func loadConfig() *config.Config {
	cfg := config.New()
	if v := viper.GetString("projectid"); v != "" {
		cfg.ProjectID = v
	}
	if v := viper.GetString("loglevel"); v != "" {
		cfg.LogLevel = v
	}
	if v := viper.GetString("timezone"); v != "" {
		cfg.TimeZone = v
	}
	return cfg
}

// openData connects to Firestore and returns a context carrying the logger.
func openData(cmd *cobra.Command) (context.Context, *config.Config, *bootstrap.Bootstrap, error) {
	cfg := loadConfig()
	bs, err := bootstrap.RunData(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return logger.ToContext(cmd.Context(), bs.Log), cfg, bs, nil
}
