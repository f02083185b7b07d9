package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlfluent/internal/config"
	"github.com/satishbabariya/sqlfluent/internal/statementfile"
	"github.com/satishbabariya/sqlfluent/internal/ui"
	"github.com/satishbabariya/sqlfluent/internal/watch"
	"github.com/satishbabariya/sqlfluent/pkg/client"
)

// NewCompileCommand creates the compile command.
func NewCompileCommand(opts *rootOptions) *cobra.Command {
	var (
		file      string
		watchFile bool
	)

	cmd := &cobra.Command{
		Use:   "compile -f <file>",
		Short: "Compile a statement file into SQL and parameters",
		Long: `Compile every statement of a YAML statement file and print the SQL and the
bound parameters. With a database configured, parameter types are inferred
from the table schemas; otherwise every value binds as STRING.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			b, closeFn, err := opts.compileBuilder(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			run := func() error { return compileFile(b, file) }
			if !watchFile {
				return run()
			}

			w, err := watch.NewWatcher(file, run, func(err error) { ui.PrintError("%v", err) })
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				w.Stop()
				return err
			}
			defer w.Stop()

			ui.PrintWarning("watching %s, press Ctrl+C to stop", file)
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "statement file")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "recompile when the file changes")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// compileBuilder returns a builder on the configured database, or an offline
// builder when none is configured.
func (o *rootOptions) compileBuilder(ctx context.Context) (*client.Builder, func(), error) {
	if err := o.cfg.Validate(); err != nil {
		ui.PrintWarning("no database: %v; values bind as STRING", err)
		return client.New(nil, client.WithContext(ctx)), func() {}, nil
	}

	c, err := o.connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	b := client.New(c.Driver(), client.WithContext(ctx), client.WithSchemaCache(c.SchemaCache()))
	return b, func() { c.Close() }, nil
}

func compileFile(b *client.Builder, file string) error {
	f, err := statementfile.Load(config.AppFs, file)
	if err != nil {
		return err
	}

	for i := range f.Statements {
		st := &f.Statements[i]
		st.Apply(b)

		ui.PrintSection(st.Label(i))
		ui.PrintSQL(b.GetSQL())
		ui.PrintParams(displayParams(b.GetParams()))
		if err := b.Err(); err != nil {
			ui.PrintWarning("%v", err)
		}
	}
	ui.PrintSuccess("compiled %d statement(s)", len(f.Statements))
	return nil
}

func displayParams(params client.Params) map[string]ui.Param {
	out := make(map[string]ui.Param, len(params))
	for name, p := range params {
		out[name] = ui.Param{Value: p.Value, Type: p.Type.String()}
	}
	return out
}
