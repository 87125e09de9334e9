package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dqscore/dqscore/internal/config"
)

var (
	cfgFile  string
	logLevel string
	quiet    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dqscore",
	Short: "Data quality scoring for tabular data",
	Long: `dqscore scores CSV datasets along five explainable quality
dimensions (completeness, uniqueness, consistency, validity, timeliness)
and combines them into a single weighted Data Quality Score.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.dqscore/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-essential output")
}

func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	switch logLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	if !quiet {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
