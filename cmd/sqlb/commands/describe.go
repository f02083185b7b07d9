package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlfluent/internal/core/schema"
	"github.com/satishbabariya/sqlfluent/internal/ui"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>...",
		Short: "Show the normalized schema of tables",
		Long: `Describe tables the way the builder sees them: each column's declared base
type, the parameter type its values bind with and the primary key.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			resolver := schema.NewResolver(c.Driver(), c.SchemaCache())
			for _, table := range args {
				s, err := resolver.Describe(ctx, table)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(s.Order))
				for _, name := range s.Order {
					col := s.Columns[name]
					rows = append(rows, []string{
						name,
						col.DeclaredType,
						col.ParamType.String(),
						strconv.FormatBool(name == s.PrimaryKeyName()),
					})
				}

				ui.PrintSection(table)
				if err := ui.PrintTable([]string{"column", "type", "binds as", "primary key"}, rows); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
