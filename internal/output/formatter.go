package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/rescisao/internal/domain"
)

// Formatter renders a settlement into bytes. Formatters only read the result.
type Formatter interface {
	Name() string
	Format(result *domain.SettlementResult) ([]byte, error)
}

// FormatterFunc adapts a plain function into a Formatter
type FormatterFunc struct {
	ID string
	F  func(result *domain.SettlementResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.SettlementResult) ([]byte, error) {
	return f.F(result)
}

var formatters = map[string]Formatter{}

func init() {
	for _, f := range []Formatter{
		ConsoleFormatter{},
		JSONFormatter{},
		YAMLFormatter{},
		CSVFormatter{},
		HTMLFormatter{},
		PDFFormatter{},
	} {
		Register(f)
	}
}

// Register adds or replaces a formatter under its name
func Register(f Formatter) {
	formatters[strings.ToLower(f.Name())] = f
}

// GetFormatterByName looks up a registered formatter
func GetFormatterByName(name string) (Formatter, bool) {
	f, ok := formatters[strings.ToLower(name)]
	return f, ok
}

// Names lists registered formatter names in sorted order
func Names() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FileExtension returns the extension used when a format is written to disk
func FileExtension(name string) string {
	switch strings.ToLower(name) {
	case "console":
		return "txt"
	default:
		return strings.ToLower(name)
	}
}

// WriteFormatted writes the formatted result to a timestamped file in dir and returns
// its path.
func WriteFormatted(f Formatter, result *domain.SettlementResult, dir, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	name := fmt.Sprintf("rescisao_%s_%s.%s", strings.ToLower(result.ReasonCode), time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
