package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pmarks/vocabflash/internal/models"
)

// Config maps spreadsheet columns to word fields. Columns are Excel letters.
type Config struct {
	SheetName         string
	TermColumn        string
	TranslationColumn string
	TopicColumn       string
	DifficultyColumn  string
	ExampleColumn     string
	StartRow          int
}

// DefaultConfig returns the column layout the bundled vocabulary sheets use.
func DefaultConfig() Config {
	return Config{
		SheetName:         "Sheet1",
		TermColumn:        "A",
		TranslationColumn: "B",
		TopicColumn:       "C",
		DifficultyColumn:  "D",
		ExampleColumn:     "E",
		StartRow:          2,
	}
}

// Report summarizes one parsed spreadsheet.
type Report struct {
	TotalRows int      `json:"total_rows"`
	Parsed    int      `json:"parsed"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// Parse reads an xlsx stream and returns the words it contains. Rows missing
// a term or translation are skipped and reported, never fatal; only an
// unreadable file or missing sheet fails the whole parse.
func Parse(r io.Reader, cfg Config) ([]models.Word, *Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	report := &Report{}
	words := make([]models.Word, 0, len(rows))

	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		report.TotalRows++

		word, err := parseRow(row, cfg)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		words = append(words, word)
		report.Parsed++
	}

	return words, report, nil
}

func parseRow(row []string, cfg Config) (models.Word, error) {
	word := models.Word{
		Term:        cellValue(row, cfg.TermColumn),
		Translation: cellValue(row, cfg.TranslationColumn),
		Topic:       cellValue(row, cfg.TopicColumn),
		Example:     cellValue(row, cfg.ExampleColumn),
	}
	if word.Term == "" {
		return models.Word{}, fmt.Errorf("term cannot be empty")
	}
	if word.Translation == "" {
		return models.Word{}, fmt.Errorf("translation cannot be empty")
	}

	word.Difficulty = parseDifficulty(cellValue(row, cfg.DifficultyColumn))
	return word, nil
}

func cellValue(row []string, column string) string {
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDifficulty clamps to 1..5 and falls back to 3 for blank or garbage
// cells so a half-filled column never blocks an import.
func parseDifficulty(s string) int {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 3
	}
	if val < 1 {
		return 1
	}
	if val > 5 {
		return 5
	}
	return val
}

func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
