package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/phrazzld/scry-cardgen/internal/batch"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/spf13/cobra"
)

type batchEntry struct {
	Source string                 `json:"source"`
	Cards  []domain.GeneratedCard `json:"cards,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var (
		workersFlag int
		langFlag    string
		hintFlag    string
		jsonFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Generate flashcards for several text or image files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs := make([]batch.Job, 0, len(args))
			for _, path := range args {
				data, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				jobs = append(jobs, batch.Job{
					Name:    path,
					Request: batchRequest(data, langFlag, hintFlag),
				})
			}

			generator, err := ctx.ensureGenerator(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			pool := batch.NewWorkerPool(generator, batch.WorkerPoolConfig{WorkerCount: workersFlag}, slog.Default())
			results := pool.Run(cmd.Context(), jobs)

			entries := make([]batchEntry, len(results))
			failed := 0
			for i, r := range results {
				entries[i] = batchEntry{Source: r.Name, Cards: r.Cards}
				if r.Err != nil {
					entries[i].Error = userError(r.Err).Error()
					failed++
				}
			}

			if err := writeBatch(cmd, entries, jsonFlag); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(entries))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workersFlag, "workers", batch.DefaultWorkerPoolConfig().WorkerCount, "Files processed concurrently")
	cmd.Flags().StringVar(&langFlag, "lang", "", "Preferred card language (e.g. ja, zh-TW, ko)")
	cmd.Flags().StringVar(&hintFlag, "hint", "", "Extra instructions for the generator")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output JSON")

	return cmd
}

// batchRequest sends image files through OCR and everything else as text.
func batchRequest(data []byte, lang, hint string) domain.GenerationRequest {
	req := domain.GenerationRequest{
		LanguagePreference: lang,
		HelperPrompt:       hint,
	}
	detected := mimetype.Detect(data)
	if strings.HasPrefix(detected.String(), "image/") {
		req.Image = data
		req.ImageMIMEType = detected.String()
		return req
	}
	req.Text = string(data)
	return req
}

func writeBatch(cmd *cobra.Command, entries []batchEntry, forceJSON bool) error {
	if forceJSON || !isTerminal(cmd.OutOrStdout()) {
		return writeJSON(cmd, entries)
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		if _, err := fmt.Fprintf(out, "%s\n", e.Source); err != nil {
			return err
		}
		if e.Error != "" {
			if _, err := fmt.Fprintf(out, "  error: %s\n\n", e.Error); err != nil {
				return err
			}
			continue
		}
		if _, err := io.WriteString(out, renderCards(e.Cards)+"\n\n"); err != nil {
			return err
		}
	}
	return nil
}
