package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akozyrev/checkride/internal/pack"
	"github.com/akozyrev/checkride/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <cockpit>",
	Short: "Export a cockpit pack",
	Long:  "Write a cockpit (matched by id or name) with its instruments and checklists as a pack JSON to stdout or --out.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		ctx := cmd.Context()
		infos, err := st.Cockpits().List(ctx)
		if err != nil {
			return err
		}
		id := ""
		for _, info := range infos {
			if info.ID == args[0] || strings.EqualFold(info.Name, args[0]) {
				id = info.ID
				break
			}
		}
		if id == "" {
			return fmt.Errorf("cockpit %q: %w", args[0], store.ErrNotFound)
		}

		c, lists, err := st.Cockpits().Get(ctx, id)
		if err != nil {
			return err
		}
		p, err := pack.Flatten(c, lists)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		return pack.Encode(out, p)
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Write the pack to a file instead of stdout")
}
