package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/frier-sam/claude-code-protect/internal/backup"
	"github.com/frier-sam/claude-code-protect/internal/config"
	"github.com/spf13/cobra"
)

var (
	manifestLast      int
	manifestWorkspace string
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "List backup records from the centralized manifest",
	Long: `Reads <backup_root>/manifest.jsonl and prints one line per backup
record. This is read-only: it never mutates the manifest or the
configuration file (those are out of scope, per spec.md §1).

Examples:
  claude-code-protect manifest --last 20
  claude-code-protect manifest --workspace /home/me/project`,
	RunE: manifestCommand,
}

func init() {
	manifestCmd.Flags().IntVar(&manifestLast, "last", 0, "show only the last N records")
	manifestCmd.Flags().StringVar(&manifestWorkspace, "workspace", "", "show only records backed up from this workspace")
	rootCmd.AddCommand(manifestCmd)
}

func manifestCommand(cmd *cobra.Command, args []string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	cfg := config.Load(homeDir)
	if cfg.BackupMode != config.ModeCentralized {
		fmt.Println("claude-code-protect: backup_mode is per-folder; there is no centralized manifest to show")
		return nil
	}

	records, err := backup.ReadManifest(filepath.Join(cfg.BackupRoot, "manifest.jsonl"))
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	if manifestWorkspace != "" {
		filtered := records[:0]
		for _, rec := range records {
			if rec.Workspace == manifestWorkspace {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if manifestLast > 0 && manifestLast < len(records) {
		records = records[len(records)-manifestLast:]
	}

	if len(records) == 0 {
		fmt.Println("claude-code-protect: no backup records found")
		return nil
	}

	for _, rec := range records {
		kind := "file"
		if rec.IsDir {
			kind = "dir"
		}
		fmt.Printf("%s  %s  %s  %s  (%d bytes, %s)\n", rec.BackedUpAt, rec.ID, kind, rec.OriginalPath, rec.SizeBytes, rec.BackupFilename)
	}
	return nil
}
