package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/discovery/internal/config"
	"github.com/alfredjeanlab/discovery/internal/idgen"
	"github.com/alfredjeanlab/discovery/internal/store/postgres"
	discoverysync "github.com/alfredjeanlab/discovery/internal/sync"
)

var exportCmd = &cobra.Command{
	Use:               "export",
	Short:             "Export every project as JSONL",
	Long:              "Export every project with its records and graph stats as JSONL, reading directly from the database.",
	GroupID:           "system",
	Args:              cobra.NoArgs,
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		exportID, err := idgen.ExportID()
		if err != nil {
			return fmt.Errorf("generating export id: %w", err)
		}

		var (
			out    io.Writer = cmd.OutOrStdout()
			closer io.Closer
		)
		if path, _ := cmd.Flags().GetString("output"); path != "" && path != "-" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			out, closer = f, f
		}

		bw := bufio.NewWriter(out)
		n, err := writeExport(cmd.Context(), store, bw, closer, exportID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d projects\n", n)
		return nil
	},
}

// writeExport streams the export into bw and flushes it. A non-nil closer is
// closed afterwards; a failed close means the export may be truncated and
// is reported as an error.
func writeExport(ctx context.Context, src discoverysync.Source, bw *bufio.Writer, closer io.Closer, exportID string) (int, error) {
	n, err := discoverysync.ExportJSONL(ctx, src, bw, discoverysync.ExportOptions{ExportID: exportID})
	if err == nil {
		if ferr := bw.Flush(); ferr != nil {
			err = fmt.Errorf("writing export: %w", ferr)
		}
	} else {
		err = fmt.Errorf("exporting: %w", err)
	}
	if closer != nil {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export: %w", cerr)
		}
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func init() {
	exportCmd.Flags().StringP("output", "o", "-", "file to write (\"-\" for stdout)")
}
