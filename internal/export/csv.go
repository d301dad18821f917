package export

import (
	"encoding/csv"
	"os"

	"github.com/curbside-tools/lexington/pkg/models"
)

// SaveCSV writes the schedule to a CSV file. Returns an error on failure.
func SaveCSV(collections []models.Collection, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Date", "Category", "Icon"}); err != nil {
		return err
	}

	for _, c := range collections {
		row := []string{c.Date.Format("2006-01-02"), c.Category, c.Icon}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}
