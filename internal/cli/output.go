package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

// listColumns are the columns shown for application lists.
var listColumns = []string{core.ColID, core.ColAppliedDate, core.ColCompany, core.ColListingJobTitle, core.ColLocation}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) printApplication(app core.Application) error {
	if a.JSON {
		return a.printJSON(app)
	}
	a.printRecord(core.TableApplications, app.Record)
	fmt.Fprintf(a.Out, "%-20s %s\n", "Status:", app.Status)
	return nil
}

// printRecord prints the non-empty fields of rec in the table's column order.
func (a *App) printRecord(table string, rec core.Record) {
	cols := recordColumns(table, rec)
	for _, col := range cols {
		if v := rec.Text(col); v != "" {
			fmt.Fprintf(a.Out, "%-20s %s\n", col+":", v)
		}
	}
}

func recordColumns(table string, rec core.Record) []string {
	if def, ok := core.Get(table); ok {
		return def.Info.Columns
	}
	cols := make([]string, 0, len(rec))
	for col := range rec {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func (a *App) printApplications(apps []core.Application) error {
	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	for _, col := range listColumns {
		fmt.Fprintf(tw, "%s\t", col)
	}
	fmt.Fprintln(tw, "Status")
	for _, app := range apps {
		for _, col := range listColumns {
			fmt.Fprintf(tw, "%s\t", app.Record.Text(col))
		}
		fmt.Fprintln(tw, app.Status)
	}
	return tw.Flush()
}
