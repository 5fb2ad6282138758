package main

import (
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	var (
		fileFlag string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert a {front, back} or {word, definition, example} JSON file to cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, fileFlag)
			if err != nil {
				return err
			}

			cards, err := domain.DecodeCardImport(data)
			if err != nil {
				return userError(err)
			}
			return writeCards(cmd, cards, jsonFlag)
		},
	}

	cmd.Flags().StringVar(&fileFlag, "file", "", "JSON file to import (- for stdin)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
