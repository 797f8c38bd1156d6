package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders a markdown document to the terminal. When rendering
// fails, the raw markdown is printed instead, it is readable enough.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Fprintln(os.Stdout, doc)
		return
	}
	fmt.Fprint(os.Stdout, out)
}
