package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eqcalc/eqcalc/internal/server"
)

// defaultServePort is used when no port is given.
const defaultServePort = 8090

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port int
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Start an HTTP server exposing evaluation as a JSON API.

POST /api/v1/eval with {"expression": "...", "variables": {...}}
returns the evaluation result. Configured variables are available to
every request; request variables shadow them.`,
		Example: `  # Start on the default port
  eqc serve

  # Custom port with a variable binding
  eqc serve --port 9000 --var tau=6.283185307179586`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", defaultServePort, "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Port:      opts.Port,
		Variables: cfg.Variables,
		Logger:    logger,
	})
	return srv.Serve(ctx)
}
