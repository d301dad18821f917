package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/curbside-tools/lexington/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollections() []models.Collection {
	return []models.Collection{
		{Date: time.Date(2024, time.July, 3, 0, 0, 0, 0, time.UTC), Category: "Trash, recycling, & compost", Icon: "mdi:recycle"},
		{Date: time.Date(2024, time.July, 11, 0, 0, 0, 0, time.UTC), Category: "Trash, recycling, & compost", Icon: "mdi:recycle"},
	}
}

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, sampleCollections(), "Aaron Road"))

	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Contains(t, out, "X-WR-CALNAME:Curbside Collection - Aaron Road\r\n")

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT\r\n"))
	assert.Contains(t, out, "UID:20240703-aaron-road@lexington.curbside-tools\r\n")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240703\r\n")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20240704\r\n")
	assert.Contains(t, out, "SUMMARY:Trash, recycling, & compost\r\n")
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	require.NoError(t, SaveJSON(sampleCollections(), "Aaron Road", path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var got jsonExport
	require.NoError(t, json.Unmarshal(content, &got))
	assert.Equal(t, "Aaron Road", got.Street)
	require.Len(t, got.Collections, 2)
	assert.Equal(t, "mdi:recycle", got.Collections[0].Icon)
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, SaveCSV(sampleCollections(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Category,Icon", lines[0])
	assert.Contains(t, lines[1], "2024-07-03")
}

func TestSave_PicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"out.json", "out.csv", "out.ics"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(sampleCollections(), "Aaron Road", path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size(), name)
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	err := Save(sampleCollections(), "Aaron Road", filepath.Join(t.TempDir(), "out.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
