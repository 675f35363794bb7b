package cli

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

const maxNameWidth = 80

// listing builds the lines of the `ls` panel: counts, progress, rows, tip.
func listing(todos []model.Todo, f model.Filter, t ui.Theme) []string {
	done, pending := model.Stats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(todos),
	)

	lines := []string{
		header,
		t.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}
	if f != model.FilterAll {
		lines = append(lines, t.Accent.Render("Showing: "+f.Label()), "")
	}
	lines = append(lines, todoLines(model.Visible(todos, f), t)...)
	lines = append(lines, "", t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func todoLines(todos []model.Todo, t ui.Theme) []string {
	if len(todos) == 0 {
		return []string{t.Muted.Render("no todos")}
	}
	out := make([]string, 0, len(todos))
	for _, td := range todos {
		name := truncate(td.Name, maxNameWidth)
		if td.Completed {
			name = t.Done.Render(name)
		}
		id := t.Muted.Render(fmt.Sprintf("#%-3d", td.ID))
		out = append(out, fmt.Sprintf("%s %s %s", id, t.Box(td.Completed), name))
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
