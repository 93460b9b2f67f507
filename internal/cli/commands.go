package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

// searchFlags are the sub-field flags shared by lookup commands.
type searchFlags struct {
	field string
	value string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.field, "field", "", "column to narrow the search by")
	cmd.Flags().StringVar(&f.value, "value", "", "value the column must contain")
}

func (f *searchFlags) search(company string) core.AppSearch {
	return core.AppSearch{Company: company, Field: f.field, Value: f.value}
}

func initCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create any missing tracker tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Service.Init(cmd.Context()); err != nil {
				return err
			}
			for _, info := range a.Service.ListTables() {
				fmt.Fprintf(a.Out, "%s (%d columns)\n", info.Name, len(info.Columns))
			}
			return nil
		},
	}
}

func findCmd(a *App) *cobra.Command {
	var sf searchFlags
	cmd := &cobra.Command{
		Use:   "find <company>",
		Short: "Find one application by company and optional sub-field",
		Long: `Find one application whose Company contains the given text.

When several applications match, the candidates are printed to stderr;
narrow the search with --field and --value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := a.Service.FindApplication(cmd.Context(), sf.search(args[0]))
			if err != nil {
				return err
			}
			return a.printApplication(app)
		},
	}
	sf.register(cmd)
	return cmd
}

func statusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <application-id>",
		Short: "Print the status of an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.Service.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.JSON {
				return a.printJSON(map[string]any{"id": args[0], "status": st})
			}
			fmt.Fprintln(a.Out, st)
			return nil
		},
	}
}

func viewCmd(a *App) *cobra.Command {
	var sf searchFlags
	cmd := &cobra.Command{
		Use:   "view <company>",
		Short: "Show an application with its consideration details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := a.Service.ApplicationView(cmd.Context(), sf.search(args[0]))
			if err != nil {
				return err
			}
			if a.JSON {
				return a.printJSON(detail)
			}
			if err := a.printApplication(detail.Application); err != nil {
				return err
			}
			if detail.Consideration != nil {
				fmt.Fprintln(a.Out)
				a.printRecord(core.TableConsiderations, detail.Consideration)
			}
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func companyCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "company <name>",
		Short: "List every application to a company, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.Service.CompanyView(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.JSON {
				return a.printJSON(view)
			}
			fmt.Fprintf(a.Out, "%s: %d applied, %d rejected\n", view.Company, view.AppliedCount, view.RejectionCount)
			return a.printApplications(view.Applications)
		},
	}
}

func latestCmd(a *App) *cobra.Command {
	var q core.LatestQuery
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "List the most recent applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := a.Service.LatestApplications(cmd.Context(), q)
			if err != nil {
				return err
			}
			if a.JSON {
				return a.printJSON(apps)
			}
			return a.printApplications(apps)
		},
	}
	cmd.Flags().StringVar(&q.Status, "status", core.StatusAll,
		"only this status: "+strings.Join(statusNames(), ", ")+" or All")
	cmd.Flags().StringVar(&q.SortField, "sort", "", "column to order the page by")
	cmd.Flags().BoolVar(&q.Descending, "desc", false, "sort descending")
	cmd.Flags().IntVar(&q.Count, "count", 10, "number of applications, 0 for all")
	return cmd
}

func logCmd(a *App) *cobra.Command {
	var (
		sf      searchFlags
		company string
		sets    []string
	)
	cmd := &cobra.Command{
		Use:   "log <kind>",
		Short: "Append a row with a logger form",
		Long: `Append a row with one of the logger forms.

Kinds: application, rejection, closure, consideration, interview, resume.
Inputs are given as repeated --set "Field=Value". Rejection, closure,
consideration and interview rows are linked to the application found with
--company (and optionally --field/--value).`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{core.FormApplication, core.FormRejection, core.FormClosure, core.FormConsideration, core.FormInterview, core.FormResume},
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := parseSets(sets)
			if err != nil {
				return err
			}

			var rec core.Record
			switch kind := args[0]; kind {
			case core.FormApplication:
				rec, err = a.Service.LogApplication(cmd.Context(), inputs)
			case core.FormResume:
				rec, err = a.Service.LogResume(cmd.Context(), inputs)
			default:
				rec, err = a.Service.LogRelated(cmd.Context(), kind, sf.search(company), inputs)
			}
			if err != nil {
				return err
			}

			if a.JSON {
				return a.printJSON(rec)
			}
			form, _ := a.Service.Forms().Form(args[0])
			a.printRecord(form.Table, rec)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, `input as "Field=Value" (repeatable)`)
	cmd.Flags().StringVar(&company, "company", "", "company of the linked application")
	sf.register(cmd)
	return cmd
}

// parseSets turns "Field=Value" pairs into form inputs.
func parseSets(sets []string) (map[string]string, error) {
	inputs := make(map[string]string, len(sets))
	for _, s := range sets {
		field, value, ok := strings.Cut(s, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("%w: --set %q must look like Field=Value", core.ErrInvalidInput, s)
		}
		inputs[field] = value
	}
	return inputs, nil
}

func statusNames() []string {
	names := make([]string, len(core.Statuses))
	for i, st := range core.Statuses {
		names[i] = string(st)
	}
	return names
}
