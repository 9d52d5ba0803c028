package items

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Country is a selectable country record
type Country struct {
	Code string
	Name string
	Flag string
}

// Countries returns the demo country list
func Countries() []Country {
	return []Country{
		{Code: "IN", Name: "India", Flag: "🇮🇳"},
		{Code: "US", Name: "United States", Flag: "🇺🇸"},
		{Code: "FR", Name: "France", Flag: "🇫🇷"},
		{Code: "JP", Name: "Japan", Flag: "🇯🇵"},
	}
}

// CountryName is the filter projection for countries
func CountryName(c Country) string { return c.Name }

// CountryCode identifies a country
func CountryCode(c Country) string { return c.Code }

// CountryDisplay renders a country with its flag
func CountryDisplay(c Country) string {
	return c.Flag + " " + c.Name
}

// Fruits returns the demo fruit list
func Fruits() []string {
	return []string{"Apple", "Banana", "Cherry", "Date", "Elderberry"}
}

// ReadLines reads one item per line. Blank lines are skipped and
// surrounding whitespace is trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return lines, nil
}

// LoadFile reads items from path, or from stdin when path is "-"
func LoadFile(path string) ([]string, error) {
	if path == "-" {
		return ReadLines(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open items file: %w", err)
	}
	defer f.Close()

	return ReadLines(f)
}
