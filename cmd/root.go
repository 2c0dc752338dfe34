package cmd

import (
	"time"

	"github.com/oxgen/pyexpr/cli"
	"github.com/oxgen/pyexpr/internal/telemetry"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	defaultConfigFile = ""
	defaultDebug      = false

	shutdownTimeout = 10 * time.Second
)

var (
	configFile string
	debug      bool

	// conf is loaded before any subcommand runs; command flags override it.
	conf = cli.NewDefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "pyexpr",
	Short: "pyexpr renders Python expressions built from expression documents",
	Long:  "pyexpr renders Python expressions built from YAML expression documents, and generates Go code that builds them with the expr package",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	SilenceUsage: true,
}

func loadConfig() error {
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	if configFile != "" {
		if err := conf.LoadFromFile(configFile); err != nil {
			return err
		}
	}
	return nil
}

func startTelemetry() (*telemetry.Agent, error) {
	return telemetry.Start(conf.Telemetry.Enabled, conf.Telemetry.AppName, conf.LicenseKey())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile, "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", defaultDebug, "enable debugging output")
	cobra.MarkFlagFilename(rootCmd.PersistentFlags(), "config", "yaml", "yml") // for file completion
}
