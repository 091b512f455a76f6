package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/phanxgames/evergreen"
	"github.com/spf13/cobra"
)

// sceneOpts holds the flags shared by the commands that build a scene.
type sceneOpts struct {
	config    string // TOML file overlaid on the reference config
	seed      uint64 // fixed seed; only used when the flag is set
	particles int    // particle count override; 0 keeps the config value
	noPost    bool   // disable bloom, tone mapping and vignette
}

func (o *sceneOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "TOML scene config file")
	f.Uint64Var(&o.seed, "seed", 0, "random seed for a reproducible scene")
	f.IntVar(&o.particles, "particles", 0, "number of particles (default from config)")
	f.BoolVar(&o.noPost, "no-post", false, "disable post-processing")
}

// load builds the scene config: reference values, then the config file,
// then flags.
func (o *sceneOpts) load(cmd *cobra.Command) (evergreen.Config, error) {
	cfg := evergreen.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = evergreen.LoadConfig(o.config); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("seed") {
		seed := o.seed
		cfg.Seed = &seed
	}
	if o.particles > 0 {
		cfg.Field.Count = o.particles
	}
	if o.noPost {
		cfg.Post.Enabled = false
	}
	return cfg, cfg.Validate()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "evergreen",
		Short:        "An interactive 3D Christmas tree made of particles",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newTermCmd())
	root.AddCommand(newSnowflakeCmd())
	root.AddCommand(newDefaultsCmd())
	return root
}

// newDefaultsCmd prints the reference configuration as TOML, as a starting
// point for --config files.
func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the reference scene config as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(evergreen.DefaultConfig()); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return nil
		},
	}
}
