// Package templates holds the HTML fragments returned to HTMX requests.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

// statusColors are the badge backgrounds of each status.
var statusColors = map[core.Status]string{
	core.StatusRejected:   "#ea4335",
	core.StatusClosed:     "#b7b7b7",
	core.StatusConsidered: "#34a853",
	core.StatusNoResponse: "#ffffff",
}

// StatusColor returns the badge background for st.
func StatusColor(st core.Status) string {
	if c, ok := statusColors[st]; ok {
		return c
	}
	return statusColors[core.StatusNoResponse]
}

// ErrorAlert renders a dismissible error box.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="alert alert-error" role="alert"><p class="alert-message">%s</p>`,
			templ.EscapeString(message))
		if err != nil {
			return err
		}
		if action != "" {
			if _, err := fmt.Fprintf(w, `<p class="alert-action">%s</p>`, templ.EscapeString(action)); err != nil {
				return err
			}
		}
		if code != "" {
			if _, err := fmt.Fprintf(w, `<p class="alert-code">Code: %s</p>`, templ.EscapeString(code)); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</div>`)
		return err
	})
}

// StatusBadge renders an application status as a coloured badge.
func StatusBadge(id string, st core.Status) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<span class="status-badge" data-application-id="%s" style="background-color: %s">%s</span>`,
			templ.EscapeString(id), StatusColor(st), templ.EscapeString(string(st)))
		return err
	})
}

// MatchList renders the candidates of an ambiguous search.
func MatchList(company string, matches []core.MatchSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div class="alert alert-warning" role="alert"><p>Multiple applications found for company %s:</p><ol class="match-list">`,
			templ.EscapeString(company)); err != nil {
			return err
		}
		for _, m := range matches {
			if _, err := fmt.Fprintf(w,
				`<li><span class="match-date">%s</span> <span class="match-location">%s</span> <span class="match-title">%s</span> <span class="match-notes">%s</span></li>`,
				templ.EscapeString(m.AppliedDate),
				templ.EscapeString(m.Location),
				templ.EscapeString(m.ListingJobTitle),
				templ.EscapeString(m.Notes)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ol><p>Try using a uniquely identifying sub-field.</p></div>`)
		return err
	})
}

// ApplicationRows renders applications as table rows with status badges.
func ApplicationRows(apps []core.Application, columns []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, a := range apps {
			if _, err := io.WriteString(w, `<tr>`); err != nil {
				return err
			}
			for _, col := range columns {
				if _, err := fmt.Fprintf(w, `<td>%s</td>`, templ.EscapeString(a.Record.Text(col))); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `<td>`); err != nil {
				return err
			}
			if err := StatusBadge(a.ID(), a.Status).Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `</td></tr>`); err != nil {
				return err
			}
		}
		return nil
	})
}
