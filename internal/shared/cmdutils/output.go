package cmdutils

import (
	"fmt"
	"io"
)

const logo = "✉"

// PrintResponse writes text under a one-line banner naming the operation.
// Error envelopes get a marker in the banner.
func PrintResponse(w io.Writer, operation, text string, isError bool) {
	if text == "" {
		return
	}
	status := ""
	if isError {
		status = " (failed)"
	}
	fmt.Fprintf(w, "\n%s mailbridge %s%s\n%s\n\n", logo, operation, status, text)
}
