package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/langportal/internal/database"
	"github.com/example/langportal/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	JapaneseColumn string // Column with the native-script form
	RomajiColumn   string // Column with the transliteration
	EnglishColumn  string // Column with the translation
	GroupsColumn   string // Column with comma-separated group names
	SheetName      string // Name of the sheet to import
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		JapaneseColumn: "A",
		RomajiColumn:   "B",
		EnglishColumn:  "C",
		GroupsColumn:   "D",
		SheetName:      "Sheet1",
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	GroupsCreated  int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// importer carries the repositories and the group-name cache shared by one
// import run
type importer struct {
	words    *database.WordRepository
	groups   *database.GroupRepository
	groupIDs map[string]int64
	result   *ImportResult
}

// ImportWords imports vocabulary from an Excel or CSV file. Existing words
// (matched by native form) get their translations updated; their review
// tallies are never touched.
func ImportWords(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	imp := &importer{
		words:    database.NewWordRepository(),
		groups:   database.NewGroupRepository(),
		groupIDs: make(map[string]int64),
		result:   &ImportResult{Errors: make([]string, 0)},
	}

	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return imp.fromCSV(ctx, config)
	}
	return imp.fromExcel(ctx, config)
}

// fromExcel imports words from an Excel file
func (imp *importer) fromExcel(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		imp.result.TotalProcessed++
		if err := imp.processRow(ctx, row, config); err != nil {
			imp.result.Errors = append(imp.result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return imp.result, nil
}

// fromCSV imports words from a CSV file with the same column layout
func (imp *importer) fromCSV(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		imp.result.TotalProcessed++
		if err := imp.processRow(ctx, row, config); err != nil {
			imp.result.Errors = append(imp.result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return imp.result, nil
}

// processRow imports a single row
func (imp *importer) processRow(ctx context.Context, row []string, config ImportConfig) error {
	cell := func(column string) string {
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	japanese := cell(config.JapaneseColumn)
	romaji := cell(config.RomajiColumn)
	english := cell(config.EnglishColumn)
	groupNames := cell(config.GroupsColumn)

	if japanese == "" || english == "" {
		imp.result.Skipped++
		return nil
	}

	word, err := imp.words.GetByJapanese(ctx, japanese)
	switch {
	case errors.Is(err, database.ErrNotFound):
		word = &models.Word{Japanese: japanese, Romaji: romaji, English: english}
		if err := imp.words.Create(ctx, word); err != nil {
			return err
		}
		imp.result.Created++
	case err != nil:
		return err
	default:
		if word.Romaji != romaji || word.English != english {
			word.Romaji = romaji
			word.English = english
			if err := imp.words.UpdateTranslations(ctx, word); err != nil {
				return err
			}
			imp.result.Updated++
		} else {
			imp.result.Skipped++
		}
	}

	for _, name := range strings.Split(groupNames, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		groupID, err := imp.groupID(ctx, name)
		if err != nil {
			return err
		}
		if err := imp.groups.AddWord(ctx, groupID, word.ID); err != nil {
			return err
		}
	}

	return nil
}

// groupID resolves a group name, creating the group when missing
func (imp *importer) groupID(ctx context.Context, name string) (int64, error) {
	if id, ok := imp.groupIDs[strings.ToLower(name)]; ok {
		return id, nil
	}

	group, err := imp.groups.GetByName(ctx, name)
	if errors.Is(err, database.ErrNotFound) {
		group = &models.Group{Name: name}
		if err := imp.groups.Create(ctx, group); err != nil {
			return 0, err
		}
		imp.result.GroupsCreated++
	} else if err != nil {
		return 0, err
	}

	imp.groupIDs[strings.ToLower(name)] = group.ID
	return group.ID, nil
}

// columnToIndex converts an Excel column letter ("A", "B", ..., "AA") to a
// zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	idx := 0
	for _, r := range column {
		if r < 'A' || r > 'Z' {
			return -1
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1
}
