// Package export writes collection schedules to JSON, CSV, and ICS files.
package export

import (
	"fmt"
	"strings"

	"github.com/curbside-tools/lexington/pkg/models"
)

// Save writes the collections to filepath, picking the format from the file
// extension (.json, .csv, or .ics).
func Save(collections []models.Collection, street, filepath string) error {
	switch {
	case strings.HasSuffix(filepath, ".json"):
		return SaveJSON(collections, street, filepath)
	case strings.HasSuffix(filepath, ".csv"):
		return SaveCSV(collections, filepath)
	case strings.HasSuffix(filepath, ".ics"):
		return SaveICS(collections, street, filepath)
	default:
		return fmt.Errorf("unsupported output format: %s (use .json, .csv, or .ics)", filepath)
	}
}
