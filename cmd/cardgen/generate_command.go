package main

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/spf13/cobra"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		textFlag  string
		fileFlag  string
		imageFlag string
		langFlag  string
		hintFlag  string
		jsonFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate flashcards from text or an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.GenerationRequest{
				Text:               textFlag,
				LanguagePreference: langFlag,
				HelperPrompt:       hintFlag,
			}

			if fileFlag != "" {
				data, err := readInput(cmd, fileFlag)
				if err != nil {
					return err
				}
				req.Text = string(data)
			}

			if imageFlag != "" {
				data, err := os.ReadFile(imageFlag)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				req.Image = data
				req.ImageMIMEType = mime.TypeByExtension(filepath.Ext(imageFlag))
			}

			generator, err := ctx.ensureGenerator(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			result, err := generator.Generate(cmd.Context(), req)
			if err != nil {
				return userError(err)
			}
			return writeCards(cmd, result.Cards, jsonFlag)
		},
	}

	cmd.Flags().StringVar(&textFlag, "text", "", "Source text")
	cmd.Flags().StringVar(&fileFlag, "file", "", "Read source text from a file (- for stdin)")
	cmd.Flags().StringVar(&imageFlag, "image", "", "Image to extract text from")
	cmd.Flags().StringVar(&langFlag, "lang", "", "Preferred card language (e.g. ja, zh-TW, ko)")
	cmd.Flags().StringVar(&hintFlag, "hint", "", "Extra instructions for the generator")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output JSON")
	cmd.MarkFlagsMutuallyExclusive("text", "file")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
