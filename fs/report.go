package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/doxhund"
	"gopkg.in/yaml.v3"
)

// hashPrefixLen is the number of content-hash characters in a report name.
const hashPrefixLen = 8

// ReportPath converts an article to a relative report file path: the source
// file name plus a content-hash prefix, so sources sharing a base name get
// distinct reports.
// Example: news/2024/merkel.txt with hash 0123456789abcdef → merkel-01234567.md
func ReportPath(a *doxhund.Article) string {
	name := filepath.Base(a.Source)
	if a.Source == "" || name == "." || name == string(filepath.Separator) {
		return a.ID + ".md"
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if hash := a.ContentHash; hash != "" {
		stem += "-" + hash[:min(len(hash), hashPrefixLen)]
	}
	return stem + ".md"
}

type frontmatter struct {
	Source      string `yaml:"source"`
	Title       string `yaml:"title"`
	Hash        string `yaml:"hash"`
	ReadingTime string `yaml:"reading_time"`
	Analyzed    string `yaml:"analyzed,omitempty"`
}

// FormatReport formats an analyzed article with YAML frontmatter.
// The analyzed date is left out when the article has no creation time.
func FormatReport(a *doxhund.Article) (string, error) {
	fm := frontmatter{
		Source:      a.Source,
		Title:       a.Title,
		Hash:        a.ContentHash,
		ReadingTime: a.ReadingTime.String(),
	}
	if !a.CreatedAt.IsZero() {
		fm.Analyzed = a.CreatedAt.Format("2006-01-02")
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	writeSection(&b, "Names", a.Names)
	b.WriteString("\n")
	writeSection(&b, "Keywords", a.Keywords)
	return b.String(), nil
}

func writeSection(b *strings.Builder, heading string, phrases []doxhund.ScoredPhrase) {
	b.WriteString("## ")
	b.WriteString(heading)
	b.WriteString("\n\n")
	for _, p := range phrases {
		b.WriteString("- ")
		b.WriteString(p.Text)
		b.WriteString("\n")
	}
}

// Writer writes article reports as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteArticle writes a report for a to disk and returns its path.
func (w *Writer) WriteArticle(a *doxhund.Article) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, ReportPath(a))
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	content, err := FormatReport(a)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
