package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akozyrev/checkride/internal/pack"
	"github.com/akozyrev/checkride/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <pack.json>",
	Short: "Import a cockpit pack",
	Long:  "Validate a cockpit pack file and add its cockpit, instruments and checklists to the library with fresh ids.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		p, err := pack.Decode(f)
		if err != nil {
			return err
		}
		c, lists, err := pack.Build(p)
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		if err := st.Cockpits().Save(cmd.Context(), c, lists); err != nil {
			return fmt.Errorf("save cockpit: %w", err)
		}

		items := 0
		for _, cl := range lists {
			items += cl.Len()
		}
		cmd.Printf("Imported %q: %d instruments, %d checklists, %d items.\n",
			c.Name, c.Markers.Len(), len(lists), items)
		return nil
	},
}
