package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the current time point until the run completes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dialTBV()
			if err != nil {
				return err
			}
			defer c.Close()

			expected, _, err := c.GetExpectedNrOfTimePoints()
			if err != nil {
				return err
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			last := int32(0)
			for {
				select {
				case <-stop:
					return nil
				case <-ticker.C:
				}

				tp, rt, err := c.GetCurrentTimePoint()
				if err != nil {
					return err
				}
				if tp == last {
					continue
				}
				last = tp

				cond, _, err := c.GetCurrentProtocolCondition()
				if err != nil {
					return err
				}
				fmt.Printf("t=%-5d condition=%-3d rt=%s\n", tp, cond, rt)

				if expected > 0 && tp >= expected {
					fmt.Println("run complete")
					return nil
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "poll interval")
	return cmd
}
