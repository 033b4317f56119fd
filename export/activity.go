package export

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ActivityCSV renders one comma-separated row per series, in the order
// given, rows separated by a line break. Shorter rows are padded with
// empty values up to the longest so columns stay aligned.
func ActivityCSV(rows ...[]int64) []byte {
	maxLen := 0
	for _, row := range rows {
		if len(row) > maxLen {
			maxLen = len(row)
		}
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j := 0; j < maxLen; j++ {
			if j > 0 {
				sb.WriteByte(',')
			}
			if j < len(row) {
				sb.WriteString(strconv.FormatInt(row[j], 10))
			}
		}
	}
	return []byte(sb.String())
}

// SaveArtifact writes an export artifact into dir, creating the
// directory if needed, and returns the full path.
func SaveArtifact(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
