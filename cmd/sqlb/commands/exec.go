package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlfluent/internal/config"
	"github.com/satishbabariya/sqlfluent/internal/statementfile"
	"github.com/satishbabariya/sqlfluent/internal/ui"
	"github.com/satishbabariya/sqlfluent/pkg/client"
)

// NewExecCommand creates the exec command.
func NewExecCommand(opts *rootOptions) *cobra.Command {
	var (
		file       string
		continueOn bool
		inTx       bool
	)

	cmd := &cobra.Command{
		Use:   `exec ["<sql>"] [-f <file>]`,
		Short: "Run raw SQL or the statements of a statement file",
		Long: `Run a raw SQL statement or every statement of a YAML statement file against
the configured database. Rows are printed as tables; other statements report
the affected row count.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var statements []statementfile.Statement
			switch {
			case file != "" && len(args) > 0:
				return errors.New("pass either raw SQL or --file, not both")
			case file != "":
				f, err := statementfile.Load(config.AppFs, file)
				if err != nil {
					return err
				}
				statements = f.Statements
			case len(args) == 1:
				statements = []statementfile.Statement{{Query: args[0]}}
			default:
				return errors.New("nothing to execute: pass raw SQL or --file")
			}

			c, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			b := client.New(c.Driver(), client.WithContext(ctx), client.WithSchemaCache(c.SchemaCache()))
			return execStatements(ctx, b, statements, continueOn, inTx)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "statement file")
	cmd.Flags().BoolVar(&continueOn, "continue", false, "report failed statements and keep going")
	cmd.Flags().BoolVar(&inTx, "tx", false, "run all statements in one transaction")

	return cmd
}

func execStatements(ctx context.Context, b *client.Builder, statements []statementfile.Statement, continueOn, inTx bool) (err error) {
	if inTx {
		if err := b.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			if err != nil {
				if rbErr := b.Rollback(); rbErr != nil {
					err = errors.Join(err, rbErr)
				}
				return
			}
			err = b.Commit()
		}()
	}

	failed := 0
	for i := range statements {
		st := &statements[i]
		st.Apply(b)
		ui.PrintSection(st.Label(i))

		if continueOn {
			if !b.ExecuteQuietly(ctx) {
				ui.PrintError("failed: %s", b.GetSQL())
				failed++
				continue
			}
		} else if err := b.Execute(ctx); err != nil {
			return fmt.Errorf("statement %s: %w", st.Label(i), err)
		}

		if err := printResult(ctx, b); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d statement(s) failed", failed, len(statements))
	}
	return nil
}

func printResult(ctx context.Context, b *client.Builder) error {
	cols := b.ResultColumns()
	if cols == nil {
		ui.PrintSuccess("%d row(s) affected", b.RowsAffected())
		return nil
	}

	rows, err := b.FetchAll(ctx)
	if err != nil {
		return err
	}
	plain := make([]map[string]any, len(rows))
	for i, r := range rows {
		plain[i] = r
	}
	if err := ui.PrintRows(cols, plain); err != nil {
		return err
	}
	ui.PrintSuccess("%d row(s)", len(rows))
	return nil
}
