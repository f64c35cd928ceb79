// package formatter exports a seen-set with its progress to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/memegacha/internal/models"
)

// SeenRow is one seen title joined with its catalog item. Titles missing from the catalog have InCatalog false.
type SeenRow struct {
	Title     string `json:"title"`
	Year      int    `json:"year,omitempty"`
	Age       string `json:"age,omitempty"`
	Rarity    string `json:"rarity,omitempty"`
	Link      string `json:"link,omitempty"`
	InCatalog bool   `json:"in_catalog"`
}

// SeenExport is a seen-set snapshot ready for export.
type SeenExport struct {
	Progress models.Progress `json:"progress"`
	Rows     []SeenRow       `json:"rows"`
}

// NewSeenExport joins seen with catalog, keeping the order titles were seen in.
func NewSeenExport(seen *models.SeenSet, catalog models.Catalog) *SeenExport {
	titles := seen.Titles()
	export := &SeenExport{
		Progress: models.NewProgress(seen.CountIn(catalog), len(catalog)),
		Rows:     make([]SeenRow, 0, len(titles)),
	}

	for _, title := range titles {
		row := SeenRow{Title: title}
		if item, ok := catalog[title]; ok {
			row.Year = item.Year
			row.Age = item.Age
			row.Rarity = item.Rarity.String()
			row.Link = item.Link
			row.InCatalog = true
		}
		export.Rows = append(export.Rows, row)
	}
	return export
}

func progressLine(p models.Progress) string {
	return fmt.Sprintf("Collected: %d/%d --- %d%% complete", p.Collected, p.Total, p.Percent)
}

// ExportToCSV converts a SeenExport to CSV format with columns: Title, Year, Age, Rarity, Link, InCatalog
func ExportToCSV(export *SeenExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Year", "Age", "Rarity", "Link", "InCatalog"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range export.Rows {
		year := ""
		if row.InCatalog {
			year = strconv.Itoa(row.Year)
		}
		record := []string{
			row.Title,
			year,
			row.Age,
			row.Rarity,
			row.Link,
			strconv.FormatBool(row.InCatalog),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a SeenExport to a Markdown document with one numbered line per title
func ExportToMarkdown(export *SeenExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Seen Memes\n\n")
	buf.WriteString(fmt.Sprintf("**Progress**: %s\n\n", progressLine(export.Progress)))

	buf.WriteString("## Titles\n\n")
	for i, row := range export.Rows {
		if !row.InCatalog {
			buf.WriteString(fmt.Sprintf("%d. %s _(no longer in the catalog)_\n", i+1, row.Title))
			continue
		}
		buf.WriteString(fmt.Sprintf("%d. [%s](%s) (%d, %s) **%s**\n", i+1, row.Title, row.Link, row.Year, row.Age, row.Rarity))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a SeenExport to plain text format
func ExportToText(export *SeenExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(progressLine(export.Progress) + "\n\n")

	for i, row := range export.Rows {
		if !row.InCatalog {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, row.Title))
			continue
		}
		buf.WriteString(fmt.Sprintf("%d. %s [%s, %d]\n", i+1, row.Title, row.Rarity, row.Year))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates the progress readout as indented JSON
func ToMetadataJSON(p models.Progress) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal progress: %w", err)
	}
	return data, nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	SeenFile     string
	MetadataFile string
}

// WriteCSVExport writes {base}_seen.csv and {base}_progress.json. The base defaults to "seen".
func WriteCSVExport(export *SeenExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "seen"
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	seenFile := baseFilepath + "_seen.csv"
	if err := os.WriteFile(seenFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export.Progress)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_progress.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		SeenFile:     seenFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport writes {dir}/README.md, creating the directory. The directory defaults to "seen".
func WriteMarkdownExport(export *SeenExport, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "seen"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport writes the plain text export. The path defaults to seen.txt.
func WriteTextExport(export *SeenExport, path string) (string, error) {
	if path == "" {
		path = "seen.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}
