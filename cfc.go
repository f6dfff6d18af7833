package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/NickyBoy89/cfc/compile"
	"github.com/NickyBoy89/cfc/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options are shared by every subcommand
type options struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "cfc",
		Short: "Compile class declarations into a single-inheritance class hierarchy",
		Long: `cfc reads the class declarations of every configured parcel, links each
class to its parent, and lays out the method table and instance variables
of every class.

Parcels and their source directories are read from cfc.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
			var err error
			opts.cfg, err = config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is ./cfc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information")

	rootCmd.AddCommand(newTreeCmd(opts))
	rootCmd.AddCommand(newVtableCmd(opts))
	rootCmd.AddCommand(newGraphCmd(opts))
	rootCmd.AddCommand(newIndexCmd(opts))
	return rootCmd
}

// compile builds the class hierarchy described by the loaded config
func (o *options) compile(cmd *cobra.Command) (*compile.Result, error) {
	result, err := compile.Run(cmd.Context(), o.cfg)
	if err != nil {
		return nil, fmt.Errorf("compilation failed: %w", err)
	}
	return result, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
