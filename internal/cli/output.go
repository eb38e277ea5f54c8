package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/amirbrooks/tman/internal/store"
)

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// renderTable writes tasks as an aligned table. Only the first line of a
// note is shown.
func renderTable(w io.Writer, tasks []store.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No todos.")
		return err
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tDUE\tTAGS\tNOTE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.Name, t.Status.Label(), dash(t.DueDate), dash(strings.Join(t.Tags, ",")), firstLine(t.Note))
	}
	return tw.Flush()
}

func summary(t *store.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]", t.Name, t.Status.Label())
	if t.DueDate != "" {
		fmt.Fprintf(&b, " due %s", t.DueDate)
	}
	return b.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
