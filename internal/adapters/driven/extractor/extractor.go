// Package extractor implements the DocumentFetcher port by downloading
// filing PDFs and extracting their text with the pdftotext tool from
// poppler. Output carries page-boundary markers so downstream chunking
// can classify page by page.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driven"
	"github.com/scripdex/scripdex/internal/logger"
)

const (
	// DefaultMaxPages caps extraction for very large filings.
	DefaultMaxPages = 50

	// downloadTimeout bounds the attachment download.
	downloadTimeout = 60 * time.Second

	// minPageText is the threshold below which a page is treated as a
	// scanned image with no extractable text.
	minPageText = 50
)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// Ensure Extractor implements the fetcher port.
var _ driven.DocumentFetcher = (*Extractor)(nil)

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor downloads documents and extracts text via pdftotext.
type Extractor struct {
	runner driven.CommandRunner
	http   *http.Client
}

// New creates an extractor using the system pdftotext binary.
func New() *Extractor {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates an extractor with a custom command runner.
// Used by tests.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	return &Extractor{
		runner: runner,
		http:   &http.Client{Timeout: downloadTimeout},
	}
}

// CheckAvailable returns an error if pdftotext is not installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific install guidance for
// the pdftotext dependency.
func InstallInstructions() string {
	return `pdftotext is required for document extraction.

Install it via your package manager:
  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils`
}

// FetchText downloads the document at url and returns its extracted
// text with page-boundary markers, up to maxPages pages.
func (e *Extractor) FetchText(ctx context.Context, url string, maxPages int) (*domain.ExtractedText, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty document URL", domain.ErrInvalidInput)
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	path, err := e.download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	// -layout preserves column structure in tabular filings. pdftotext
	// separates pages with form feeds, which become the page markers.
	output, err := e.runner.Run(ctx, "pdftotext",
		"-layout", "-f", "1", "-l", strconv.Itoa(maxPages), path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftotext failed: %v", domain.ErrExtractorUnavailable, err)
	}

	text, pages := markPages(string(output))
	logger.Debug("extracted %d pages from %s", pages, url)

	return &domain.ExtractedText{
		Text:    text,
		Pages:   pages,
		UsedOCR: false,
		URL:     url,
	}, nil
}

// download fetches the attachment to a temp file for pdftotext.
func (e *Extractor) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building download request: %w", err)
	}
	// The exchange attachment host rejects non-browser clients.
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://www.bseindia.com/")

	resp, err := e.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading document: unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "scripdex-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing %s: %w", filepath.Base(tmp.Name()), err)
	}
	return tmp.Name(), nil
}

// markPages replaces pdftotext's form-feed page separators with
// explicit page markers and drops trailing empty pages.
func markPages(raw string) (string, int) {
	pages := strings.Split(raw, "\f")
	for len(pages) > 0 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	if len(pages) == 0 {
		return "", 0
	}

	parts := make([]string, 0, len(pages))
	for i, page := range pages {
		content := strings.TrimSpace(page)
		if len(content) < minPageText {
			content = "[SCANNED_IMAGE]"
		}
		parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", i+1, content))
	}
	return strings.Join(parts, "\n\n"), len(pages)
}
