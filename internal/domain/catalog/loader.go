package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadIngredientsCSV parses "name,measurement_unit" rows. The first row is
// a header. Blank names and repeated names are skipped.
func ReadIngredientsCSV(r io.Reader) ([]Ingredient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	seen := make(map[string]struct{})
	var items []Ingredient
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: expected name and measurement unit", line)
		}

		name := strings.TrimSpace(row[0])
		unit := strings.TrimSpace(row[len(row)-1])
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		items = append(items, Ingredient{Name: name, MeasurementUnit: unit})
	}
	return items, nil
}

// ImportIngredients loads a CSV into the catalog and reports how many rows
// were read and how many were new.
func (s *Service) ImportIngredients(ctx context.Context, r io.Reader) (read int, inserted int64, err error) {
	items, err := ReadIngredientsCSV(r)
	if err != nil {
		return 0, 0, err
	}
	inserted, err = s.AddIngredients(ctx, items)
	return len(items), inserted, err
}
