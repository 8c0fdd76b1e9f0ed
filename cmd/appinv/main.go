package main

import (
	"fmt"
	"io"
	"os"

	"github.com/appinv/appinv/internal/config"
	"github.com/appinv/appinv/internal/inventory"
	"github.com/appinv/appinv/internal/logging"
	"github.com/appinv/appinv/internal/regsource"
	"github.com/spf13/cobra"
)

var (
	version  = "0.1.0"
	cfgFile  string
	output   string
	matchBy  string
	withHost bool
)

var rootCmd = &cobra.Command{
	Use:   "appinv",
	Short: "Installed application inventory",
	Long:  `appinv reads the Windows uninstall registry (native and WOW6432Node) and answers installed-application queries`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("appinv v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is appinv.yaml in the platform config dir)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format: text, json or yaml")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(uninstallStringCmd)
	rootCmd.AddCommand(displayVersionCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// newService loads config, sets up logging and wires the inventory service
// to the live registry.
func newService() (*inventory.Service, *config.Config) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fail("Failed to load config: %v", err)
	}
	cfg.Validate()

	if output != "" {
		cfg.Output = output
	}

	initLogging(cfg)

	src, err := regsource.Live()
	if err != nil {
		fail("%v", err)
	}

	svc := inventory.New(src)
	svc.SetPlaceholder(cfg.Placeholder)
	return svc, cfg
}

func initLogging(cfg *config.Config) {
	var out io.Writer
	if cfg.LogFile != "" {
		rw, err := logging.NewRotatingWriter(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			out = rw
		}
	}
	logging.Init(cfg.LogFormat, cfg.LogLevel, out)
}

func parseMode() inventory.MatchMode {
	mode, err := inventory.ParseMatchMode(matchBy)
	if err != nil {
		fail("%v", err)
	}
	return mode
}
