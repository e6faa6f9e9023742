package tui

import (
	"github.com/ilaria3312/MyLibrary/internal/util"
	"github.com/spf13/cobra"
)

// ShouldUseTUI reports whether cmd may take over the terminal. It needs a
// terminal on both ends and is off under --no-interactive or --json.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsInteractive() {
		return false
	}
	for _, name := range []string{"no-interactive", "json"} {
		if set, _ := cmd.Flags().GetBool(name); set {
			return false
		}
	}
	return true
}
