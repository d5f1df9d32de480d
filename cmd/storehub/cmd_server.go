package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storehub/app/controllers"
	"github.com/shashiranjanraj/storehub/internal/kernel"
	"github.com/shashiranjanraj/storehub/internal/server"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"github.com/shashiranjanraj/storehub/pkg/middleware"
)

// storehub serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP and gRPC servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Start(ctx)
	},
}

// storehub route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List every registered HTTP route",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Handlers are only mounted, never called: a scratch database is enough.
		db, err := database.Open("sqlite", "file:routes?mode=memory")
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck

		stop := make(chan struct{})
		defer close(stop)
		k, err := kernel.NewHTTPKernel(db, kernel.Options{
			Services: controllers.Options{},
			CORS:     middleware.DefaultCORSOptions(),
			Stop:     stop,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
