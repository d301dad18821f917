package export

import (
	"encoding/json"
	"os"

	"github.com/curbside-tools/lexington/pkg/models"
)

// jsonExport is the JSON file shape: the street plus its collections.
type jsonExport struct {
	Street      string              `json:"street"`
	Collections []models.Collection `json:"collections"`
}

// SaveJSON writes an indented JSON export of the schedule to filepath.
func SaveJSON(collections []models.Collection, street, filepath string) error {
	content, err := json.MarshalIndent(jsonExport{Street: street, Collections: collections}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}
