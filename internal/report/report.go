// Package report persists analysis results as JSON files. Writes are
// atomic: content goes to a temporary file that is renamed into place,
// so a crash never leaves a half-written report behind.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/shlomota/PolymarketAnalyzer/internal/leaderboard"
	"github.com/shlomota/PolymarketAnalyzer/internal/models"
)

// Report is the exported analysis document for one market.
type Report struct {
	ReportID    string              `json:"report_id"`
	MarketName  string              `json:"market_name"`
	ConditionID string              `json:"condition_id"`
	ResolvesTo  models.Outcome      `json:"resolves_to"`
	GeneratedAt time.Time           `json:"generated_at"`
	TotalTrades int                 `json:"total_trades"`
	TotalUsers  int                 `json:"total_users"`
	Summary     leaderboard.Summary `json:"summary"`
	Results     []leaderboard.Entry `json:"results"`
}

// New assembles a report with a fresh UUID and the current time.
func New(marketName, conditionID string, resolvesTo models.Outcome, totalTrades int, entries []leaderboard.Entry) *Report {
	return &Report{
		ReportID:    uuid.NewString(),
		MarketName:  marketName,
		ConditionID: conditionID,
		ResolvesTo:  resolvesTo,
		GeneratedAt: time.Now().UTC(),
		TotalTrades: totalTrades,
		TotalUsers:  len(entries),
		Summary:     leaderboard.Summarize(entries),
		Results:     entries,
	}
}

// Writer persists reports under a single output directory.
type Writer struct {
	outputDir string
	fileMode  os.FileMode
	dirMode   os.FileMode
}

// NewWriter creates a report writer. An empty outputDir defaults to
// "reports" in the working directory.
func NewWriter(outputDir string, fileMode, dirMode os.FileMode) *Writer {
	if outputDir == "" {
		outputDir = "reports"
	}
	if fileMode == 0 {
		fileMode = 0o644
	}
	if dirMode == 0 {
		dirMode = 0o755
	}
	return &Writer{outputDir: outputDir, fileMode: fileMode, dirMode: dirMode}
}

// Write persists the report to <outputDir>/<name> and returns the full
// path. An empty name derives one from the report ID.
func (w *Writer) Write(r *Report, name string) (string, error) {
	if name == "" {
		name = fmt.Sprintf("report_%s.json", r.ReportID)
	}
	path := filepath.Join(w.outputDir, name)
	if err := w.writeJSON(path, r); err != nil {
		return "", err
	}
	return path, nil
}

// WriteRaw persists an arbitrary JSON-serializable payload, used for
// raw subgraph event dumps.
func (w *Writer) WriteRaw(name string, v interface{}) (string, error) {
	path := filepath.Join(w.outputDir, name)
	if err := w.writeJSON(path, v); err != nil {
		return "", err
	}
	return path, nil
}

func (w *Writer) writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), w.dirMode); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	// Write to temporary file first (atomic write)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, w.fileMode); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename report: %w", err)
	}
	return nil
}

// Load reads a previously written report back from disk. A leftover
// temp file from a crashed write is removed first.
func Load(path string) (*Report, error) {
	tempPath := path + ".tmp"
	if _, err := os.Stat(tempPath); err == nil {
		_ = os.Remove(tempPath)
	}

	jsonData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(jsonData, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &r, nil
}
