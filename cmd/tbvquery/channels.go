package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func channelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "Print Turbo-Satori channel state and current oxy/deoxy samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dialSatori()
			if err != nil {
				return err
			}
			defer c.Close()

			rate, _, err := c.GetSamplingRate()
			if err != nil {
				return err
			}
			total, _, err := c.GetNrOfChannels()
			if err != nil {
				return err
			}
			selected, _, err := c.GetSelectedChannels()
			if err != nil {
				return err
			}
			fmt.Printf("Sampling rate: %.2f Hz\n", rate)
			fmt.Printf("Channels:      %d total, %d selected\n", total, len(selected))

			converted, _, err := c.IsDataOxyDeoxyConverted()
			if err != nil {
				return err
			}
			if !converted {
				fmt.Println("oxy/deoxy conversion not available yet")
				return nil
			}

			frame, _, err := c.GetCurrentTimePoint()
			if err != nil {
				return err
			}
			oxy, _, err := c.OxyDataOfSelectedChannels(frame)
			if err != nil {
				return err
			}
			deoxy, _, err := c.DeoxyDataOfSelectedChannels(frame)
			if err != nil {
				return err
			}
			for i, ch := range selected {
				fmt.Printf("  channel %2d: oxy=%+.5f deoxy=%+.5f\n", ch, oxy[i], deoxy[i])
			}
			return nil
		},
	}
}
