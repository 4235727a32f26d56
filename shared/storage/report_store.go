package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// maxSaveAttempts bounds the rescans when another writer takes a name first.
const maxSaveAttempts = 5

// ReportStore writes markdown reports as <prefix>-<n>.md files in one directory.
// It never overwrites an existing file.
type ReportStore struct {
	dir     string
	prefix  string
	pattern *regexp.Regexp
}

// NewReportStore creates a store; the directory is created on the first Save.
func NewReportStore(dir, prefix string) *ReportStore {
	return &ReportStore{
		dir:     dir,
		prefix:  prefix,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-(\d+)\.md$`),
	}
}

// NextFileName returns the path for the lowest unused counter, starting at 1.
func (rs *ReportStore) NextFileName() (string, error) {
	used, err := rs.usedCounters()
	if err != nil {
		return "", err
	}

	counter := 1
	for used[counter] {
		counter++
	}
	return rs.path(counter), nil
}

// Save writes content to the next free file name and returns its path.
func (rs *ReportStore) Save(content string) (string, error) {
	if err := os.MkdirAll(rs.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		fileName, err := rs.NextFileName()
		if err != nil {
			return "", err
		}

		file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			if os.IsExist(err) {
				// Taken between the scan and the create
				continue
			}
			return "", fmt.Errorf("failed to create report file: %w", err)
		}

		if _, err := file.WriteString(content); err != nil {
			file.Close()
			return "", fmt.Errorf("failed to write report file %s: %w", fileName, err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("failed to close report file %s: %w", fileName, err)
		}
		return fileName, nil
	}

	return "", fmt.Errorf("failed to find a free report file name in %s", rs.dir)
}

// usedCounters reads the counters already taken in the output directory.
func (rs *ReportStore) usedCounters() (map[int]bool, error) {
	used := make(map[int]bool)

	entries, err := os.ReadDir(rs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			// Directory doesn't exist yet, every name is free
			return used, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, entry := range entries {
		m := rs.pattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			used[n] = true
		}
	}
	return used, nil
}

func (rs *ReportStore) path(counter int) string {
	return filepath.Join(rs.dir, fmt.Sprintf("%s-%d.md", rs.prefix, counter))
}
