package cli

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
)

func (r *runner) lsCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List todos",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return usageError{err}
			}
			e, err := r.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.load(cmd.Context()); err != nil {
				return fmt.Errorf("load: %w", err)
			}
			fmt.Fprintln(r.out, r.theme.Panel(listing(e.ctrl.Todos(), f, r.theme)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, completed or incomplete")
	return cmd
}

func (r *runner) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <name...>",
		Short:   "Add a todo (name can be multiple words)",
		Example: `  todo add "Buy milk"`,
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := r.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.load(cmd.Context()); err != nil {
				return fmt.Errorf("load: %w", err)
			}

			e.ctrl.SetDraft(strings.Join(args, " "))
			if err := e.do(e.ctrl.Submit(cmd.Context())); err != nil {
				return fmt.Errorf("add: %w", err)
			}
			r.theme.OK(r.out, fmt.Sprintf("added #%d", e.ctrl.Todos()[0].ID))
			return nil
		},
	}
}

func (r *runner) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <name...>",
		Short: "Rename a todo (marks it incomplete)",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("edit", args[0])
			if err != nil {
				return err
			}
			e, t, err := r.openWith(cmd.Context(), id)
			if err != nil {
				return err
			}
			defer e.Close()

			e.ctrl.BeginEdit(t.ID, t.Name, t.Completed)
			if err := e.ctrl.Warning(); err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			e.ctrl.SetDraft(strings.Join(args[1:], " "))
			if err := e.do(e.ctrl.Submit(cmd.Context())); err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			r.theme.OK(r.out, "updated")
			return nil
		},
	}
}

func (r *runner) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("done", args[0])
			if err != nil {
				return err
			}
			e, _, err := r.openWith(cmd.Context(), id)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.do(e.ctrl.ToggleComplete(cmd.Context(), id)); err != nil {
				return fmt.Errorf("done: %w", err)
			}
			r.theme.OK(r.out, "toggled")
			return nil
		},
	}
}

func (r *runner) rmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			e, t, err := r.openWith(cmd.Context(), id)
			if err != nil {
				return err
			}
			defer e.Close()

			if r.cfg.ConfirmDelete && !yes && !r.confirm(fmt.Sprintf("Delete %q? Are you sure you want to delete this todo? [y/N] ", t.Name)) {
				fmt.Fprintln(r.out, r.theme.Muted.Render("cancelled"))
				return nil
			}
			e.ctrl.RequestDelete(id)
			if err := e.do(e.ctrl.ConfirmDelete(cmd.Context())); err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			r.theme.OK(r.out, "removed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (r *runner) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all todos as JSON (stdout when no file is given)",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := r.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.load(cmd.Context()); err != nil {
				return fmt.Errorf("load: %w", err)
			}

			if len(args) == 0 {
				return jsonstore.Write(r.out, e.ctrl.Todos())
			}
			if err := jsonstore.Save(args[0], e.ctrl.Todos()); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			r.theme.OK(r.out, fmt.Sprintf("exported %d todos", len(e.ctrl.Todos())))
			return nil
		},
	}
}

func (r *runner) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add every todo from a JSON export (ids are reassigned)",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := jsonstore.Load(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			e, err := r.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			if err := e.store.Initialize(ctx); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			for _, t := range todos {
				if _, err := e.store.Create(ctx, t.Name, t.Completed); err != nil {
					e.log.Error("failed to import todo", "name", t.Name, "error", err)
					return fmt.Errorf("import: %w", err)
				}
			}
			r.theme.OK(r.out, fmt.Sprintf("imported %d todos", len(todos)))
			return nil
		},
	}
}

func (r *runner) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := yaml.Marshal(r.cfg)
			if err != nil {
				return fmt.Errorf("yaml marshal: %w", err)
			}
			_, err = r.out.Write(b)
			return err
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to config.yaml",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := filepath.Join(r.dir, config.FileName)
			if err := config.Save(p, r.cfg); err != nil {
				return err
			}
			r.theme.OK(r.out, "wrote "+p)
			return nil
		},
	})
	return cmd
}

// ---------------------------------------------------
// helpers
// ---------------------------------------------------

func parseID(cmd, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, usage("%s: not an id: %s (run `todo ls` to see ids)", cmd, s)
	}
	return id, nil
}

// openWith opens the store, loads it and looks up id.
func (r *runner) openWith(ctx context.Context, id int64) (*env, model.Todo, error) {
	e, err := r.open(ctx)
	if err != nil {
		return nil, model.Todo{}, err
	}
	if err := e.load(ctx); err != nil {
		e.Close()
		return nil, model.Todo{}, fmt.Errorf("load: %w", err)
	}
	for _, t := range e.ctrl.Todos() {
		if t.ID == id {
			return e, t, nil
		}
	}
	e.Close()
	return nil, model.Todo{}, fmt.Errorf("#%d: %w", id, app.ErrNotFound)
}

// confirm asks a yes/no question on the runner's streams.
func (r *runner) confirm(question string) bool {
	fmt.Fprint(r.out, question)
	line, _ := bufio.NewReader(r.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
