package commands

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow/internal/server"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
)

func registerServeCmd(parent *cobra.Command) {
	var (
		addr        string
		defaultKey  string
		grace       time.Duration
		showSchemas bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registered forms over HTTP",
		Long: `Serve every registered schema as an HTML form, together with the JSON
session API and the OpenAPI export.`,
		Example: `  # Serve on the configured address
  formflow serve

  # Serve on another port with the survey as landing form
  formflow serve --addr :9090 --default survey`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFromCommand(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("default") {
				a.cfg.Schemas.Default = defaultKey
			}
			if cmd.Flags().Changed("grace") {
				a.cfg.Server.Grace = grace
			}

			srv, err := newServer(a, server.WithSchemaPreview(showSchemas))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Printf("formflow: %d schemas registered", a.reg.Len())
			return srv.Run(ctx, a.cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&defaultKey, "default", "", "schema served at / (overrides schemas.default)")
	cmd.Flags().DurationVar(&grace, "grace", 0, "shutdown grace period (overrides server.grace)")
	cmd.Flags().BoolVar(&showSchemas, "show-schema", false, "embed the schema JSON below each form")

	parent.AddCommand(cmd)
}

// newServer builds the HTTP server for a, applying the configured theme to
// the HTML renderer.
func newServer(a *app, extra ...server.Option) (*server.Server, error) {
	opts := []server.Option{
		server.WithDefaultSchema(a.cfg.Schemas.Default),
		server.WithGrace(a.cfg.Server.Grace),
	}
	if selector := a.cfg.ThemeSelector(); selector != nil {
		themeCfg, err := html.ResolveTheme(selector, "", "")
		if err != nil {
			return nil, fmt.Errorf("theme: %w", err)
		}
		renderer, err := html.New(html.WithTheme(themeCfg))
		if err != nil {
			return nil, err
		}
		opts = append(opts, server.WithRenderer(renderer))
	}
	return server.New(a.reg, append(opts, extra...)...)
}
