package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/michaelaaronlevy/grid-ripper/format"
	"github.com/michaelaaronlevy/grid-ripper/ods"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the sheets of an exported spreadsheet and their row counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd.OutOrStdout(), args[0])
		},
	}
}

func inspect(w io.Writer, path string) error {
	f, err := format.DetectFile(path)
	if err != nil {
		return err
	}

	switch f {
	case format.ODS:
		return inspectODS(w, path)
	case format.XLSX:
		return inspectXLSX(w, path)
	default:
		return fmt.Errorf("%s: not a spreadsheet (%s)", path, f)
	}
}

func inspectODS(w io.Writer, path string) error {
	doc, err := ods.Open(path)
	if err != nil {
		return err
	}

	for _, sheet := range doc.Sheets {
		fmt.Fprintf(w, "%s\t%d rows\n", sheet.Name, len(sheet.Rows))
	}
	fmt.Fprintf(w, "total\t%d rows in %d sheets\n", doc.RowCount(), len(doc.Sheets))
	return nil
}

func inspectXLSX(w io.Writer, path string) error {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	total := 0
	sheets := wb.GetSheetList()
	for _, name := range sheets {
		rows, err := wb.GetRows(name)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
		total += len(rows)
		fmt.Fprintf(w, "%s\t%d rows\n", name, len(rows))
	}
	fmt.Fprintf(w, "total\t%d rows in %d sheets\n", total, len(sheets))
	return nil
}
