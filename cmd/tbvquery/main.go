// Command tbvquery is a diagnostic console for Turbo-BrainVoyager and
// Turbo-Satori servers: it connects, runs a handful of catalogue queries,
// and prints the results. Useful for checking a scanner link before an
// experiment script takes over.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tbv-rpc/client"
	"tbv-rpc/middleware"
	"tbv-rpc/satori"
	"tbv-rpc/tbv"
)

var (
	flagHost    string
	flagPort    int
	flagTimeout time.Duration
	flagVerbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tbvquery",
		Short: "Query a running Turbo-BrainVoyager or Turbo-Satori server",
		Long: `tbvquery talks the network plugin protocol of the Turbo-BrainVoyager
and Turbo-Satori real-time analysis servers. Point it at a running
server (or the bundled simulator) to inspect project state, ROI
statistics, or fNIRS channel data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "127.0.0.1", "server host")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 55555, "server port")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 2*time.Second, "per-request response budget")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every request")

	rootCmd.AddCommand(
		infoCmd(),
		watchCmd(),
		roiCmd(),
		channelsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func dialOptions() []client.Option {
	log := zerolog.Nop()
	if flagVerbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}
	return []client.Option{
		client.WithTimeout(flagTimeout),
		client.WithLogger(log),
		client.WithMiddleware(middleware.Logging(log)),
	}
}

func dialTBV() (*tbv.Client, error) {
	return tbv.Dial(flagHost, flagPort, dialOptions()...)
}

func dialSatori() (*satori.Client, error) {
	return satori.Dial(flagHost, flagPort, dialOptions()...)
}
