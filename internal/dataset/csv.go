package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportFilename is the default name of a CSV export.
const ExportFilename = "gantt_data.csv"

// WriteCSV writes the dataset as CSV with a header row and ISO dates.
func (ds *Dataset) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	records := ds.Table().Records()
	if err := writer.Write(records[0]); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, record := range records[1:] {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
