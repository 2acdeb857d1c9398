package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akozyrev/checkride/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [checklist]",
	Short: "Show attempt statistics",
	Long:  "Without arguments, lists every checklist with its attempt count and best score. With a checklist name or id, prints its full attempt history.",
	Args:  cobra.MaximumNArgs(1),
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
		if len(args) == 1 {
			return printAttempts(cmd, st, args[0])
		}

		lists, err := st.Cockpits().ListChecklists(ctx)
		if err != nil {
			return err
		}
		if len(lists) == 0 {
			cmd.Println("No checklists yet.")
			return nil
		}
		for _, info := range lists {
			attempts, err := st.Attempts().ByChecklist(ctx, info.ID)
			if err != nil {
				return err
			}
			best := 0
			for _, a := range attempts {
				if a.Percent > best {
					best = a.Percent
				}
			}
			line := fmt.Sprintf("%-24s %-24s %2d items  %3d attempts", info.CockpitName, info.Name, info.ItemCnt, len(attempts))
			if len(attempts) > 0 {
				line += fmt.Sprintf("  best %3d%%", best)
			}
			cmd.Println(line)
		}
		return nil
	},
}

func printAttempts(cmd *cobra.Command, st *store.Store, ref string) error {
	ctx := cmd.Context()
	_, checklistID, err := st.Cockpits().FindChecklist(ctx, ref)
	if err != nil {
		return err
	}
	attempts, err := st.Attempts().ByChecklist(ctx, checklistID)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		cmd.Println("No attempts yet.")
		return nil
	}
	for _, a := range attempts {
		cmd.Printf("#%-3d  %s  %3d%%\n", a.Number, a.TakenAt.Format("2006-01-02 15:04"), a.Percent)
	}
	return nil
}
