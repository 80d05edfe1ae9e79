package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/wishlist/pkg/types"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// writeTable renders rows under header with tabwriter, trimming the
// padding tabwriter leaves at line ends.
func writeTable(w io.Writer, header []string, rows [][]string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func printCategories(w io.Writer, cats []*types.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return
	}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{c.CategoryID, c.Name, c.CreatedAt.Format("2006-01-02")})
	}
	writeTable(w, []string{"ID", "NAME", "CREATED"}, rows)
	fmt.Fprintf(w, "Total: %d category(ies)\n", len(cats))
}

func printItems(w io.Writer, items []*types.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		title := i.Title
		if r := []rune(title); len(r) > 40 {
			title = string(r[:37]) + "..."
		}
		rows = append(rows, []string{i.ItemID, title, i.Link})
	}
	writeTable(w, []string{"ID", "TITLE", "LINK"}, rows)
	fmt.Fprintf(w, "Total: %d item(s)\n", len(items))
}
