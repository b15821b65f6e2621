package categories

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for categories.csv.
const Header = "code,name"

const (
	numFields = 2
	colCode   = 0
	colName   = 1
)

// ReadCategories reads categories.csv.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		cat, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteCategories writes categories.csv.
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, cat := range cats {
		if err := cw.Write(MarshalCategory(cat)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(cat model.Category) []string {
	row := make([]string, numFields)
	row[colCode] = cat.Code
	row[colName] = cat.Name
	return row
}

// UnmarshalCategory converts a CSV row to a Category. Codes are kept
// verbatim since lookups are case-sensitive.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colCode] == "" {
		return model.Category{}, fmt.Errorf("empty code")
	}
	if record[colName] == "" {
		return model.Category{}, fmt.Errorf("empty name for code %q", record[colCode])
	}
	return model.Category{
		Code: record[colCode],
		Name: record[colName],
	}, nil
}
