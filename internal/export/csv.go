package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"RiskRange/internal/riskrange"
)

// WriteCSV renders a projected table as comma-separated text: a header row of
// column labels, then one dated row per line. Column order and the percentage
// labels of the table are preserved as-is.
func WriteCSV(w io.Writer, tbl *riskrange.Table) error {
	cw := csv.NewWriter(w)

	header := append([]string{"Date"}, tbl.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range tbl.Rows {
		record[0] = row.Date.Format("2006-01-02")
		for i, v := range row.Values {
			record[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to <dir>/<symbol>_risk_range.csv and returns
// the written path.
func WriteCSVFile(dir, symbol string, tbl *riskrange.Table) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("ensure dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_risk_range.csv", symbol))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteCSV(file, tbl); err != nil {
		return "", err
	}
	return path, nil
}
