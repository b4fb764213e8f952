package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/qichaozhao/ab-testing/domain/experiment"
)

// OutcomeReader loads recorded per-subject outcome columns from Excel or
// CSV exports, so experiments can be evaluated off-line instead of re-drawn.
type OutcomeReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewOutcomeReader creates a reader that handles both Excel and CSV files
func NewOutcomeReader(filePath string) *OutcomeReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &OutcomeReader{filePath: filePath, fileType: fileType}
}

// ReadOutcomes returns the named outcome columns as binary sequences.
// Every requested column must exist in the header row and every cell in it
// must parse to 0 or 1; blank trailing cells are dropped so ragged exports
// with unequal group sizes still load.
func (r *OutcomeReader) ReadOutcomes(columns ...string) (map[string]experiment.Outcomes, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("outcome file must have a header row and at least one data row")
	}

	log.Printf("[OutcomeReader] Loaded %d rows from %s", len(rows)-1, r.filePath)
	return r.extractColumns(rows, columns)
}

// readExcelRows reads all rows from Sheet1
func (r *OutcomeReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return rows, nil
}

// readCSVRows reads all records from a CSV file
func (r *OutcomeReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // groups may have unequal lengths
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV records: %w", err)
	}
	return records, nil
}

// extractColumns pulls the requested header columns into outcome sequences
func (r *OutcomeReader) extractColumns(rows [][]string, columns []string) (map[string]experiment.Outcomes, error) {
	header := rows[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	result := make(map[string]experiment.Outcomes, len(columns))
	for _, col := range columns {
		idx, ok := index[col]
		if !ok {
			return nil, fmt.Errorf("column %q not found in %s", col, r.filePath)
		}

		values := make([]int, 0, len(rows)-1)
		for rowNum, row := range rows[1:] {
			if idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
				continue // ragged tail of a shorter group
			}
			v, err := strconv.Atoi(strings.TrimSpace(row[idx]))
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", col, rowNum+2, err)
			}
			values = append(values, v)
		}

		outcomes, err := experiment.NewOutcomes(values)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		result[col] = outcomes
	}
	return result, nil
}
