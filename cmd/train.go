package cmd

import "github.com/spf13/cobra"

var trainCmd = &cobra.Command{
	Use:   "train [checklist]",
	Short: "Fly a checklist",
	Long:  "Open the trainer. With a checklist name or id, skips the picker and flies it directly.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := ""
		if len(args) == 1 {
			ref = args[0]
		}
		return runApp(cmd, ref)
	},
}
