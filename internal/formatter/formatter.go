// package formatter provides functions to export the album index to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dstrand/photoweb/internal/albums"
	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/shared"
)

// ExportToCSV converts an album list to CSV format with columns: UUID, Title, Path, Realm, Photos, Start, End
func ExportToCSV(list []*models.Album) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"UUID", "Title", "Path", "Realm", "Photos", "Start", "End"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, album := range list {
		start, end := "", ""
		if album.Date != nil {
			start, end = album.Date.Start, album.Date.End
		}
		record := []string{
			album.UUID,
			album.Title,
			album.Path,
			album.Realm.String(),
			strconv.Itoa(len(album.Photos)),
			start,
			end,
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

// ExportToMarkdown renders the album tree as a nested Markdown list
func ExportToMarkdown(tree *albums.TreeNode) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Albums\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %d\n\n", tree.Count()))

	writeMarkdownNode(&buf, tree, 0)

	return buf.Bytes(), nil
}

func writeMarkdownNode(buf *bytes.Buffer, node *albums.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, album := range node.Albums {
		photos := "photo"
		if len(album.Photos) != 1 {
			photos = "photos"
		}
		buf.WriteString(fmt.Sprintf("%s- **%s** (%d %s, %s)\n", indent, album.Title, len(album.Photos), photos, album.Realm))
	}
	for _, child := range node.Nodes {
		buf.WriteString(fmt.Sprintf("%s- %s/\n", indent, child.Name))
		writeMarkdownNode(buf, child, depth+1)
	}
}

// ExportToText converts an album list to plain text format
func ExportToText(list []*models.Album) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Albums: %d\n\n", len(list)))

	for i, album := range list {
		buf.WriteString(fmt.Sprintf("%d. %s [%s] - %d photos\n", i+1, album.Title, album.Path, len(album.Photos)))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates an indented JSON representation of one album
func ToMetadataJSON(album models.Album) ([]byte, error) {
	return shared.MarshalJSON(album, true)
}

// WriteCSVExport writes the album index as CSV.
//
// Defaults to albums.csv as the filename.
func WriteCSVExport(list []*models.Album, filepath string) (string, error) {
	if filepath == "" {
		filepath = "albums.csv"
	}

	csvData, err := ExportToCSV(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteMarkdownExport writes the album tree as Markdown.
//
// Defaults to albums.md as the filename.
func WriteMarkdownExport(tree *albums.TreeNode, filepath string) (string, error) {
	if filepath == "" {
		filepath = "albums.md"
	}

	mdData, err := ExportToMarkdown(tree)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport writes the album index as plain text.
//
// Defaults to albums.txt as the filename.
func WriteTextExport(list []*models.Album, filepath string) (string, error) {
	if filepath == "" {
		filepath = "albums.txt"
	}

	textData, err := ExportToText(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
