package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/amirbrooks/tman/internal/store"
)

func newExportCommand(a *app) *cobra.Command {
	var ndjson bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every TODO to a file in the export directory",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(ws *store.Workspace) error {
				tasks, err := ws.ListTasks(store.ListFilter{})
				if err != nil {
					return err
				}
				var path string
				if ndjson {
					path, err = writeNDJSONExport(a.cfg.ExportDir, "tasks", tasks)
				} else {
					path, err = writeJSONExport(a.cfg.ExportDir, "tasks", map[string]any{"tasks": tasks})
				}
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				a.logger.Debug("exported todos", "count", len(tasks), "path", path)
				if a.opts.JSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"path": path, "count": len(tasks)})
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Wrote export to:", path)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&ndjson, "ndjson", false, "one JSON object per line instead of a single document")
	return cmd
}

func writeJSONExport(dir, base string, payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return writeExportFile(dir, base, "json", append(data, '\n'))
}

func writeNDJSONExport(dir, base string, tasks []store.Task) (string, error) {
	var b bytes.Buffer
	for _, t := range tasks {
		line, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return writeExportFile(dir, base, "ndjson", b.Bytes())
}

// writeExportFile writes data to <dir>/<base>-<ULID>.<ext> via a temp file
// and rename, so readers never see a partial export.
func writeExportFile(dir, base, ext string, data []byte) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("export directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", base, ulid.Make(), ext))
	tmp, err := os.CreateTemp(dir, ".tmp-"+base+"-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}
