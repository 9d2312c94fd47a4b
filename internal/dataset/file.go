package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"studentapi/internal/model"
)

// jsonRecord mirrors one element of data.json. Other fields such as
// per-subject marks are ignored.
type jsonRecord struct {
	Name  *string  `json:"name"`
	Total *float64 `json:"total"`
}

// UnmarshalJSON matches the "name" and "total" keys exactly, so
// "NAME" or "Total" count as missing.
func (rec *jsonRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*rec = jsonRecord{}
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &rec.Name); err != nil {
			return fmt.Errorf("name: %w", err)
		}
	}
	if raw, ok := fields["total"]; ok {
		if err := json.Unmarshal(raw, &rec.Total); err != nil {
			return fmt.Errorf("total: %w", err)
		}
	}
	return nil
}

// LoadJSONFile reads a JSON array of student objects from path.
func LoadJSONFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return LoadJSON(f)
}

func LoadJSON(r io.Reader) (*Dataset, error) {
	var raw []jsonRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	records := make([]model.Student, 0, len(raw))
	for i, rec := range raw {
		if rec.Name == nil || rec.Total == nil {
			return nil, fmt.Errorf("record %d: %w: name and total are required", i+1, ErrMalformed)
		}
		records = append(records, model.Student{Name: *rec.Name, Total: *rec.Total})
	}
	return New(records)
}

// LoadCSVFile reads a CSV file whose header row names the "name" and
// "total" columns.
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromRows(rows)
}

// LoadXLSXFile reads the first sheet of a workbook, using the same header
// convention as LoadCSV.
func LoadXLSXFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return LoadXLSX(f)
}

func LoadXLSX(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open excel file: %v", ErrMalformed, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: excel file does not contain any sheets", ErrMalformed)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get rows from sheet %s: %v", ErrMalformed, sheetName, err)
	}
	return fromRows(rows)
}

// fromRows turns tabular rows into records. The first row is the header;
// blank rows are skipped.
func fromRows(rows [][]string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformed)
	}

	nameCol, totalCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameCol = i
		case "total":
			totalCol = i
		}
	}
	if nameCol < 0 || totalCol < 0 {
		return nil, fmt.Errorf("%w: header must contain name and total columns", ErrMalformed)
	}

	records := make([]model.Student, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlank(row) {
			log.Printf("Skipping blank row %d", line)
			continue
		}

		name, total := cell(row, nameCol), cell(row, totalCol)
		if name == "" || total == "" {
			return nil, fmt.Errorf("row %d: %w: name and total are required", line, ErrMalformed)
		}
		value, err := strconv.ParseFloat(total, 64)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) {
				err = numErr.Err
			}
			return nil, fmt.Errorf("row %d: %w: total %q: %v", line, ErrMalformed, total, err)
		}
		records = append(records, model.Student{Name: name, Total: value})
	}
	return New(records)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
