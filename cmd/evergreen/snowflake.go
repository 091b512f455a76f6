package main

import (
	"github.com/phanxgames/evergreen"
	"github.com/spf13/cobra"
)

func newSnowflakeCmd() *cobra.Command {
	var (
		size int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "snowflake",
		Short: "Write the snowflake sprite as a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := evergreen.WriteSnowflakePNG(out, size); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("snowflake written", "path", out, "size", size)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 128, "sprite size in pixels")
	cmd.Flags().StringVarP(&out, "out", "o", "snowflake.png", "output PNG path")
	return cmd
}
