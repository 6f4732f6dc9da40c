package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"shopscore/internal/models"

	"github.com/jszwec/csvutil"
)

// Header is the column order written by Export and expected (case-insensitively) by the parser.
var Header = []string{"category", "product_name", "price", "shelf_life", "ease", "comment"}

type Parser struct {
	filename string
}

func NewParser(filename string) *Parser {
	return &Parser{filename: filename}
}

func (p *Parser) ParseRecords() ([]models.ProductRecord, error) {
	file, err := os.Open(p.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads product rows. Header names are matched case-insensitively and surrounding
// blanks in headers and cells are ignored, so spreadsheet exports still map.
func Decode(r io.Reader) ([]models.ProductRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []models.ProductRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	decoder, err := csvutil.NewDecoder(reader, header...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}
	decoder.Map = func(field, column string, v any) string {
		return strings.TrimSpace(field)
	}

	records := []models.ProductRecord{}
	for {
		var record models.ProductRecord
		if err := decoder.Decode(&record); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode CSV row %d: %w", len(records)+2, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Encode writes records with a header row in Header order.
func Encode(w io.Writer, records []models.ProductRecord) error {
	writer := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(writer)
	if err := encoder.EncodeHeader(models.ProductRecord{}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to encode %q: %w", record.ProductName, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportFile writes records to filename, replacing it.
func ExportFile(filename string, records []models.ProductRecord) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := Encode(file, records); err != nil {
		return err
	}
	return file.Close()
}
