// =============================================================================
// dzcb - File Manager Utility
// =============================================================================
//
// This module provides the file system plumbing around a conversion run:
//   - Input directory validation
//   - Input file discovery (glob, lexicographic order)
//   - Output directory management
//   - The run summary manifest (manifest.yaml)
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SummaryFileName is the name of the run summary written to the output
// directory.
const SummaryFileName = "manifest.yaml"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for a conversion run.
type FileManager struct {
	// InputDir is the directory holding the K7ABD input files.
	InputDir string

	// OutputDir is the directory receiving one subdirectory per radio.
	OutputDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir string) *FileManager {
	return &FileManager{
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// ValidateInputDir checks that the input directory exists and is a directory.
func (fm *FileManager) ValidateInputDir() error {
	info, err := os.Stat(fm.InputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input directory does not exist: %s", fm.InputDir)
		}
		return fmt.Errorf("failed to stat input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path is not a directory: %s", fm.InputDir)
	}
	return nil
}

// EnsureOutputDir creates a directory below the output directory (or the
// output directory itself when no parts are given) and returns its path.
func (fm *FileManager) EnsureOutputDir(parts ...string) (string, error) {
	dir := filepath.Join(append([]string{fm.OutputDir}, parts...)...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles returns the regular files in the input directory whose
// names match the glob pattern, sorted by file name.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	files := make([]string, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, path)
	}

	sort.Slice(files, func(i, j int) bool {
		return filepath.Base(files[i]) < filepath.Base(files[j])
	})
	return files, nil
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// NewRunID returns a fresh identifier for a conversion run.
func NewRunID() string {
	return uuid.New().String()
}

// RunSummary describes one conversion run.
type RunSummary struct {
	RunID     string    `yaml:"run_id"`
	Version   string    `yaml:"version"`
	StartTime time.Time `yaml:"start_time"`
	EndTime   time.Time `yaml:"end_time"`
	InputDir  string    `yaml:"input_dir"`
	OutputDir string    `yaml:"output_dir"`
	SortMode  string    `yaml:"sort_mode"`

	// Inputs lists the files and workbook sheets that were read.
	Inputs []string `yaml:"inputs"`

	SkippedRows int `yaml:"skipped_rows"`

	Contacts  int `yaml:"contacts"`
	Channels  int `yaml:"channels"`
	Zones     int `yaml:"zones"`
	ScanLists int `yaml:"scanlists"`

	Radios []RadioSummary `yaml:"radios"`
}

// RadioSummary describes the output written for one radio.
type RadioSummary struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Contacts  int      `yaml:"contacts"`
	Channels  int      `yaml:"channels"`
	Zones     int      `yaml:"zones"`
	ScanLists int      `yaml:"scanlists"`
	Warnings  int      `yaml:"warnings"`
	Files     []string `yaml:"files"`
}

// WriteSummary writes the run summary to manifest.yaml in dir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummary(summary RunSummary, dir string) (string, error) {
	path := filepath.Join(dir, SummaryFileName)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(summary); err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}
	return path, file.Close()
}

// ReadSummary loads a manifest written by WriteSummary.
func ReadSummary(path string) (*RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary file: %w", err)
	}
	var summary RunSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse summary file: %w", err)
	}
	return &summary, nil
}
