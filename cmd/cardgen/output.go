package main

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/spf13/cobra"
)

const cardColumnWidth = 60

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeCards prints cards as a table on a terminal and as JSON otherwise.
func writeCards(cmd *cobra.Command, cards []domain.GeneratedCard, forceJSON bool) error {
	if forceJSON || !isTerminal(cmd.OutOrStdout()) {
		return writeJSON(cmd, domain.GenerationResult{Cards: cards})
	}
	_, err := io.WriteString(cmd.OutOrStdout(), renderCards(cards)+"\n")
	return err
}

func renderCards(cards []domain.GeneratedCard) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = true
	tw.AppendHeader(table.Row{"#", "Front", "Back"})

	for i, c := range cards {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), c.Front, c.Back})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, WidthMax: cardColumnWidth, WidthMaxEnforcer: text.WrapSoft},
		{Number: 3, WidthMax: cardColumnWidth, WidthMaxEnforcer: text.WrapSoft},
	})

	return tw.Render()
}
