package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print project and session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dialTBV()
			if err != nil {
				return err
			}
			defer c.Close()

			v := c.PluginVersion()
			fmt.Printf("Plugin version:  %d.%d.%d\n", v[0], v[1], v[2])

			if name, _, err := c.GetProjectName(); err == nil {
				fmt.Printf("Project:         %s\n", name)
			}
			if folder, _, err := c.GetWatchFolder(); err == nil {
				fmt.Printf("Watch folder:    %s\n", folder)
			}

			tp, _, err := c.GetCurrentTimePoint()
			if err != nil {
				return err
			}
			expected, _, err := c.GetExpectedNrOfTimePoints()
			if err != nil {
				return err
			}
			fmt.Printf("Time point:      %d / %d\n", tp, expected)

			dims, _, err := c.GetDimsOfFunctionalData()
			if err != nil {
				return err
			}
			fmt.Printf("Volume dims:     %d x %d x %d\n", dims[0], dims[1], dims[2])
			return nil
		},
	}
}
