package main

import (
	"github.com/notargets/structpack/layout"
	"github.com/notargets/structpack/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	configPath string
	dimX, dimY int
	device     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "structpack",
		Short:         "Verify struct padding across the host-device boundary",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(opts.verbose)
			if err != nil {
				return err
			}
			logging.SetLogger(l)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Logger().Sync()
		},
	}

	opts.bindFlags(root.PersistentFlags())
	root.AddCommand(newRunCmd(opts), newLayoutCmd())
	return root
}

func (o *options) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "YAML file with dimX, dimY, intStart and longStart")
	fs.IntVar(&o.dimX, "dimx", 4, "grid extent in x")
	fs.IntVar(&o.dimY, "dimy", 4, "grid extent in y")
	fs.StringVar(&o.device, "device", "host", "where the kernels run: host, Serial, OpenMP, CUDA, OpenCL or auto")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
}

// gridConfig loads the config file when given; explicitly set --dimx and
// --dimy flags win over the file.
func (o *options) gridConfig(fs *pflag.FlagSet) (layout.Config, error) {
	cfg := layout.DefaultConfig(o.dimX, o.dimY)
	if o.configPath != "" {
		var err error
		if cfg, err = layout.LoadConfig(o.configPath); err != nil {
			return layout.Config{}, err
		}
		if fs.Changed("dimx") {
			cfg.DimX = o.dimX
		}
		if fs.Changed("dimy") {
			cfg.DimY = o.dimY
		}
	}
	return cfg, cfg.Validate()
}
