package directory

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParse_RegularStreets(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<div class="fr-view">
  <p>Collection days by street:</p>
  <ul>
    <li>Aaron Road - WEDNESDAY</li>
    <li>Abbott Rd - Monday</li>
  </ul>
</div>
</body></html>`)

	dir, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, Directory{
		"aaron road": 2,
		"abbott rd":  0,
	}, dir)
}

func TestParse_MultiSegmentStreet(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<div class="fr-view">
  <ul>
    <li>Bedford Street:
      <ul>
        <li>Battlegreen to Revere St - MONDAY</li>
        <li>Revere St to Burlington line - TUESDAY</li>
      </ul>
    </li>
  </ul>
</div>
</body></html>`)

	dir, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, Directory{
		"bedford street (battlegreen to revere st)":     0,
		"bedford street (revere st to burlington line)": 1,
	}, dir)
}

func TestParse_MalformedItemsAreSkipped(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<div class="fr-view">
  <ul>
    <li>Aaron Road - WEDNESDAY</li>
    <li>No separator here</li>
    <li>Fake Street - SOMEDAY</li>
    <li> - FRIDAY</li>
  </ul>
</div>
</body></html>`)

	dir, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, Directory{"aaron road": 2}, dir)
}

func TestParse_NoContainer(t *testing.T) {
	doc := mustDoc(t, `<html><body><p>nothing here</p></body></html>`)

	_, err := Parse(doc)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestParse_ContainerWithoutLists(t *testing.T) {
	doc := mustDoc(t, `<html><body><div class="fr-view"><p>schedule moved</p></div></body></html>`)

	_, err := Parse(doc)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "aaron road", Normalize("  Aaron   Road "))
	assert.Equal(t, "", Normalize("   "))
}

func TestDirectoryKeys_Sorted(t *testing.T) {
	dir := Directory{"zebra st": 1, "aaron road": 2, "maple ave": 0}
	assert.Equal(t, []string{"aaron road", "maple ave", "zebra st"}, dir.Keys())
}
