package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// output prints v as JSON when --json is set, otherwise calls render.
func output(v any, render func()) {
	if flagJSON {
		printJSON(os.Stdout, v)
		return
	}
	render()
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// label prints an aligned key/value line.
func label(name string, value any) {
	fmt.Printf("  %-12s %v\n", name+":", value)
}
