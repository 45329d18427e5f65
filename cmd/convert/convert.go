// Package convert provides the command that converts between tabular formats.
package convert

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/sandrine-crypto/ganttkit/internal/ingest"
	"github.com/sandrine-crypto/ganttkit/internal/output"
)

// NewCommand returns the convert subcommand.
func NewCommand() *cobra.Command {
	var (
		to      string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a project file between xlsx, csv, and json",
		Long: `Converts the raw tabular data of a project file to another format.

Conversions: xlsx → csv or json, csv → xlsx or json.
Column names and values pass through untouched.

Example:
  ganttkit convert projet.xlsx --to csv --out projet.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			input := args[0]
			if !ingest.Supported(input) {
				return fmt.Errorf("unsupported file type %q — convert reads .xlsx, .xls, or .csv", filepath.Ext(input))
			}
			data, err := os.ReadFile(input)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("file not found: %s — check that the path is correct", input)
				}
				return err
			}
			rows, err := ingest.ReadRows(filepath.Base(input), data)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("file %s contains no rows", input)
			}

			if to == "" {
				return fmt.Errorf("--to is required — specify csv, json, or xlsx")
			}

			var content []byte
			switch to {
			case "csv":
				content, err = toCSV(rows)
			case "json":
				content, err = toJSON(rows)
			case "xlsx":
				content, err = toXLSX(rows)
			default:
				return fmt.Errorf("unknown target format %q — use csv, json, or xlsx", to)
			}
			if err != nil {
				return err
			}

			if outPath == "" {
				base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
				outPath = base + "." + to
			}
			if err := os.WriteFile(outPath, content, 0644); err != nil {
				return output.System(fmt.Errorf("could not write %s: %w", outPath, err))
			}

			if jsonFlag {
				return output.PrintJSON("convert", map[string]interface{}{
					"input":  input,
					"output": outPath,
					"rows":   len(rows) - 1,
				})
			}
			fmt.Printf("Converted %s → %s (%d data rows).\n", input, outPath, len(rows)-1)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target format: csv, json, or xlsx")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: input name with new extension)")

	return cmd
}

func toCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toJSON emits one object per data row, keyed by the header row.
func toJSON(rows [][]string) ([]byte, error) {
	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return json.MarshalIndent(records, "", "  ")
}

func toXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
