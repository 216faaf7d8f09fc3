package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func roiCmd() *cobra.Command {
	var betas bool

	cmd := &cobra.Command{
		Use:   "roi",
		Short: "Print per-ROI statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dialTBV()
			if err != nil {
				return err
			}
			defer c.Close()

			n, _, err := c.GetNrOfROIs()
			if err != nil {
				return err
			}
			fmt.Printf("ROIs: %d\n", n)

			for roi := int32(0); roi < n; roi++ {
				mean, _, err := c.GetMeanOfROI(roi)
				if err != nil {
					return err
				}
				voxels, _, err := c.GetNrOfVoxelsOfROI(roi)
				if err != nil {
					return err
				}
				fmt.Printf("  ROI %d: mean=%.3f voxels=%d\n", roi+1, mean, voxels)

				if betas {
					bs, _, err := c.AllBetasOfROI(roi)
					if err != nil {
						return err
					}
					for i, b := range bs {
						fmt.Printf("    beta[%d]=%.4f\n", i, b)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&betas, "betas", false, "include per-predictor betas")
	return cmd
}
