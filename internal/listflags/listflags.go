package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag to list commands.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("all", false, "Show every task instead of the first few per section")
		return
	}

	cmd.Flags().BoolVar(target, "all", false, "Show every task instead of the first few per section")
}

// AddJSONFlag adds a shared --json flag to commands with machine output.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}
