package main

import (
	"fmt"

	"github.com/notargets/gocca"
	"github.com/notargets/structpack/harness"
	"github.com/notargets/structpack/logging"
	"github.com/notargets/structpack/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Populate and verify the small_struct and small_struct_2 buffers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.gridConfig(cmd.Flags())
			if err != nil {
				return err
			}

			var device *gocca.OCCADevice
			switch opts.device {
			case "host":
			case "auto":
				device, err = utils.CreateDevice("")
			default:
				device, err = utils.CreateDevice(opts.device)
			}
			if err != nil {
				return err
			}
			if device != nil {
				defer device.Free()
			}

			logging.Logger().Info("running layout tests",
				zap.Int("dimX", cfg.DimX), zap.Int("dimY", cfg.DimY),
				zap.String("device", opts.device))

			suite := harness.NewSuite(harness.DefaultTests(device, cfg)...)
			sum := suite.Run(cmd.Context())

			out := cmd.OutOrStdout()
			for _, t := range suite.Tests() {
				fmt.Fprintln(out, t)
			}
			if !sum.OK() {
				return fmt.Errorf("layout tests did not pass: %s", sum)
			}
			return nil
		},
	}
}
