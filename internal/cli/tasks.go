package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/tman/internal/store"
)

func newAddCommand(a *app) *cobra.Command {
	var note, due string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a TODO",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(ws *store.Workspace) error {
				task, err := ws.AddTask(store.AddTaskInput{Name: args[0], Note: note, Due: due})
				if err != nil {
					return err
				}
				a.logger.Debug("added todo", "name", task.Name)
				return a.printTask(cmd, "Added", task)
			})
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "note to attach")
	cmd.Flags().StringVar(&due, "due", "", "due date (DD-MM-YYYY)")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var status, tag string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List TODOs",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := store.ListFilter{Tag: tag}
			if status != "" {
				s, err := store.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = &s
			}
			return a.withWorkspace(func(ws *store.Workspace) error {
				tasks, err := ws.ListTasks(filter)
				if err != nil {
					return err
				}
				a.logger.Debug("listed todos", "count", len(tasks), "status", status, "tag", tag)
				if a.opts.JSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"tasks": tasks})
				}
				return renderTable(cmd.OutOrStdout(), tasks)
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only todos with this status (ToDo|Done)")
	cmd.Flags().StringVar(&tag, "tag", "", "only todos carrying this tag")
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one TODO",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(ws *store.Workspace) error {
				task, err := ws.GetTask(args[0])
				if err != nil {
					return err
				}
				if a.opts.JSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"task": task})
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), task.RenderHuman())
				return err
			})
		},
	}
}

// mutation is a store operation applied to one named todo.
type mutation func(ws *store.Workspace, args []string) (*store.Task, error)

// newMutationCommand builds a command that changes one todo and prints it.
func newMutationCommand(a *app, use, short, verb string, nargs int, op mutation) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  usageArgs(cobra.ExactArgs(nargs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(ws *store.Workspace) error {
				task, err := op(ws, args)
				if err != nil {
					return err
				}
				a.logger.Debug("updated todo", "op", cmd.Name(), "name", task.Name)
				return a.printTask(cmd, verb, task)
			})
		},
	}
}

func newCompleteCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "complete <name>", "Complete a TODO", "Completed", 1,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.CompleteTask(args[0])
		})
}

func newUncompleteCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "uncomplete <name>", "Uncomplete a TODO", "Reopened", 1,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.UncompleteTask(args[0])
		})
}

func newAddNoteCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "add-note <name> <note>", "Add a note to a TODO that has none", "Noted", 2,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.AddNote(args[0], args[1])
		})
}

func newEditNoteCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "edit-note <name> <note>", "Replace the note of a TODO", "Noted", 2,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.EditNote(args[0], args[1])
		})
}

func newRemoveNoteCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "remove-note <name>", "Remove the note of a TODO", "Updated", 1,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.RemoveNote(args[0])
		})
}

func newAddTagCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "add-tag <name> <tag>", "Add a tag to a TODO", "Tagged", 2,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.AddTag(args[0], args[1])
		})
}

func newRemoveTagCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "remove-tag <name> <tag>", "Remove a tag from a TODO", "Updated", 2,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.RemoveTag(args[0], args[1])
		})
}

func newAddDueDateCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "add-due-date <name> <DD-MM-YYYY>", "Set the due date of a TODO", "Scheduled", 2,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.AddDueDate(args[0], args[1])
		})
}

func newChangeDueDateCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "change-due-date <name> <DD-MM-YYYY>", "Change the due date of a TODO", "Scheduled", 2,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.ChangeDueDate(args[0], args[1])
		})
}

func newRemoveDueDateCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "remove-due-date <name>", "Remove the due date of a TODO", "Updated", 1,
		func(ws *store.Workspace, args []string) (*store.Task, error) {
			return ws.RemoveDueDate(args[0])
		})
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a TODO",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(ws *store.Workspace) error {
				if err := ws.DeleteTask(args[0]); err != nil {
					return err
				}
				a.logger.Debug("deleted todo", "name", args[0])
				if a.opts.JSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"deleted": args[0]})
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", args[0])
				return err
			})
		},
	}
}

func newClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every TODO but keep the store",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(ws *store.Workspace) error {
				if err := ws.ClearTasks(); err != nil {
					return err
				}
				a.logger.Debug("cleared todos", "root", ws.Root)
				if a.opts.JSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"cleared": true})
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cleared all todos")
				return err
			})
		},
	}
}

// newDropCommand removes the store directory. It never opens the store, so
// it works while the store is unreadable.
func newDropCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop-db",
		Short: "Drop the database of TODOs",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Drop(a.cfg.Root); err != nil {
				return err
			}
			a.logger.Debug("dropped store", "root", a.cfg.Root)
			if a.opts.JSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"dropped": a.cfg.Root})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Dropped store at %s\n", a.cfg.Root)
			return err
		},
	}
}

// printTask reports a changed todo as "<verb>: <summary>" or as JSON.
func (a *app) printTask(cmd *cobra.Command, verb string, task *store.Task) error {
	if a.opts.JSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"task": task})
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, summary(task))
	return err
}
