package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/abelbrown/picks/internal/catalog"
	"github.com/abelbrown/picks/internal/logging"
	"github.com/abelbrown/picks/internal/ratings"
)

// Column names as produced by the upstream cleaning pipeline. The importer
// resolves columns by header name, so column order does not matter.
const (
	colItemID  = "id_laptop"
	colTitle   = "title"
	colPrice   = "price"
	colStorage = "SSD"
	colMemory  = "RAM_GB"
	colMemType = "RAM_Type"
	colDisplay = "Display_inch"
	colCores   = "Proc_Cores"
	colUserID  = "id_user"
	colRating  = "user_rating"
)

// SchemaError reports required columns missing from an input table.
// It halts the import: proceeding without a required column would make
// every downstream score meaningless.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input table missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ImportCatalogCSV reads a pre-cleaned laptop table. The header row is
// required and validated against the catalog schema; a missing column is a
// *SchemaError. Rows with unparseable required fields are skipped (logged),
// not fatal. An empty Proc_Cores cell becomes NaN, pending imputation by
// the upstream pipeline.
func ImportCatalogCSV(r io.Reader) ([]catalog.Item, error) {
	reader := csv.NewReader(r)

	cols, err := headerIndex(reader, []string{
		colItemID, colTitle, colPrice, colStorage, colMemory, colMemType, colDisplay, colCores,
	})
	if err != nil {
		return nil, err
	}

	var items []catalog.Item
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logging.Warn("skipping malformed catalog row", "line", line, "error", err)
			continue
		}

		id, err1 := strconv.Atoi(record[cols[colItemID]])
		price, err2 := strconv.ParseFloat(record[cols[colPrice]], 64)
		storage, err3 := strconv.ParseFloat(record[cols[colStorage]], 64)
		memory, err4 := strconv.ParseFloat(record[cols[colMemory]], 64)
		display, err5 := strconv.ParseFloat(record[cols[colDisplay]], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			logging.Warn("skipping unparseable catalog row", "line", line)
			continue
		}

		cores := math.NaN()
		if raw := strings.TrimSpace(record[cols[colCores]]); raw != "" {
			if c, err := strconv.ParseFloat(raw, 64); err == nil {
				cores = c
			}
		}

		items = append(items, catalog.Item{
			ID:            id,
			Title:         record[cols[colTitle]],
			Price:         price,
			StorageGB:     storage,
			MemoryGB:      memory,
			MemoryType:    record[cols[colMemType]],
			DisplayInches: display,
			Cores:         cores,
		})
	}

	return items, nil
}

// ImportRatingsCSV reads a rating table of (id_user, id_laptop, user_rating)
// rows. Header validation mirrors ImportCatalogCSV. Rows with values outside
// 0..5 are skipped.
func ImportRatingsCSV(r io.Reader) ([]ratings.Rating, error) {
	reader := csv.NewReader(r)

	cols, err := headerIndex(reader, []string{colUserID, colItemID, colRating})
	if err != nil {
		return nil, err
	}

	var rs []ratings.Rating
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logging.Warn("skipping malformed rating row", "line", line, "error", err)
			continue
		}

		userID, err1 := strconv.Atoi(record[cols[colUserID]])
		itemID, err2 := strconv.Atoi(record[cols[colItemID]])
		value, err3 := strconv.Atoi(record[cols[colRating]])
		if err1 != nil || err2 != nil || err3 != nil || value < 0 || value > ratings.MaxValue {
			logging.Warn("skipping invalid rating row", "line", line)
			continue
		}

		rs = append(rs, ratings.Rating{UserID: userID, ItemID: itemID, Value: value})
	}

	return rs, nil
}

// ExportAugmentedCSV writes the catalog joined with average ratings.
// Unrated items get an empty average_rating cell, never a zero.
func ExportAugmentedCSV(w io.Writer, rows []ratings.AugmentedItem) error {
	cw := csv.NewWriter(w)

	header := []string{
		colItemID, colTitle, colPrice, colStorage, colMemory, colMemType, colDisplay, colCores,
		"average_rating",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		avg := ""
		if row.AverageRating != nil {
			avg = strconv.FormatFloat(*row.AverageRating, 'f', 4, 64)
		}
		cores := ""
		if !math.IsNaN(row.Cores) {
			cores = strconv.FormatFloat(row.Cores, 'f', -1, 64)
		}
		record := []string{
			strconv.Itoa(row.ID),
			row.Title,
			strconv.FormatFloat(row.Price, 'f', -1, 64),
			strconv.FormatFloat(row.StorageGB, 'f', -1, 64),
			strconv.FormatFloat(row.MemoryGB, 'f', -1, 64),
			row.MemoryType,
			strconv.FormatFloat(row.DisplayInches, 'f', -1, 64),
			cores,
			avg,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// headerIndex reads the header row and maps each required column name to its
// index. Missing columns are collected into a single *SchemaError.
func headerIndex(reader *csv.Reader, required []string) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	return index, nil
}
