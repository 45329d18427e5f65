//go:build ignore

// This program generates test fixture files for ganttkit.
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

var sampleRows = [][]string{
	{"catégorie", "tâche", "début", "fin"},
	{"Conception", "Cahier des charges", "2024-01-01", "2024-01-10"},
	{"Conception", "Maquettes", "2024-01-08", "2024-01-20"},
	{"Développement", "Backend", "2024-01-15", "2024-02-28"},
	{"Développement", "Frontend", "2024-02-01", "2024-03-15"},
	{"Tests", "Tests unitaires", "2024-03-01", "2024-03-20"},
	{"Tests", "Recette", "2024-03-15", "2024-03-31"},
	{"Déploiement", "Mise en production", "2024-04-01", "2024-04-05"},
}

func main() {
	if err := generateXlsx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}

	if err := generateCSV(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.csv: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test fixtures generated successfully.")
}

func generateXlsx() error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range sampleRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SaveAs("testdata/sample.xlsx")
}

func generateCSV() error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(sampleRows); err != nil {
		return err
	}
	return os.WriteFile("testdata/sample.csv", buf.Bytes(), 0644)
}
