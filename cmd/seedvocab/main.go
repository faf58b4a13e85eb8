// Command seedvocab converts a product catalog Excel export into the
// plaintext vocabulary file the corrector loads at startup. The first
// column of the first sheet is read as item names, one per row.
// Usage: go run ./cmd/seedvocab catalog.xlsx
// Output: data/item_names.txt
package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"flyerwatch/internal/vocab"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedvocab <catalog.xlsx> [output.txt]")
	}
	xlsxPath := os.Args[1]
	outPath := "data/item_names.txt"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}

	seen := make(map[string]bool)
	var words []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" || vocab.Normalize(name) == "" {
			continue
		}
		// Multi-word names contribute each word to the vocabulary; the
		// corrector works token by token.
		for _, word := range strings.Fields(name) {
			key := strings.ToLower(word)
			if seen[key] {
				continue
			}
			seen[key] = true
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return fmt.Errorf("no item names found in %s", xlsxPath)
	}
	sort.Strings(words)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	for _, word := range words {
		if _, err := fmt.Fprintln(out, word); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	log.Printf("wrote %d vocabulary words to %s", len(words), outPath)
	return nil
}
