package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newOCRCommand(ctx *commandContext) *cobra.Command {
	var imageFlag string

	cmd := &cobra.Command{
		Use:   "ocr",
		Short: "Extract the text of an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(imageFlag)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			generator, err := ctx.ensureGenerator(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			text, err := generator.ExtractText(cmd.Context(), data, mime.TypeByExtension(filepath.Ext(imageFlag)))
			if err != nil {
				return userError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&imageFlag, "image", "", "Image to extract text from")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}
