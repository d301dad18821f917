package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/curbside-tools/lexington/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage(url string) *models.Page {
	return &models.Page{
		URL:        url,
		StatusCode: 200,
		HTML:       "<html><body>test</body></html>",
		FetchedAt:  time.Now(),
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	mc := NewMemoryCache(1024 * 1024)
	defer mc.Close()

	require.NoError(t, mc.Set("k", testPage("http://example.com"), time.Minute))

	page, ok := mc.Get("k")
	require.True(t, ok)
	assert.Equal(t, "http://example.com", page.URL)

	_, ok = mc.Get("missing")
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	mc := NewMemoryCache(1024 * 1024)
	defer mc.Close()

	require.NoError(t, mc.Set("k", testPage("http://example.com"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok := mc.Get("k")
	assert.False(t, ok)
}

func TestMemoryCache_Update(t *testing.T) {
	mc := NewMemoryCache(1024 * 1024)
	defer mc.Close()

	require.NoError(t, mc.Set("k", testPage("http://example.com/a"), time.Minute))
	require.NoError(t, mc.Set("k", testPage("http://example.com/b"), time.Minute))

	page, ok := mc.Get("k")
	require.True(t, ok)
	assert.Equal(t, "http://example.com/b", page.URL)
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	// Each entry is ~1KB overhead plus content; room for roughly two entries
	mc := NewMemoryCache(2400)
	defer mc.Close()

	require.NoError(t, mc.Set("a", testPage("http://example.com/a"), time.Minute))
	require.NoError(t, mc.Set("b", testPage("http://example.com/b"), time.Minute))

	// Touch "a" so "b" is the eviction candidate
	_, ok := mc.Get("a")
	require.True(t, ok)

	require.NoError(t, mc.Set("c", testPage("http://example.com/c"), time.Minute))

	_, ok = mc.Get("a")
	assert.True(t, ok)
	_, ok = mc.Get("b")
	assert.False(t, ok)
}

func TestMemoryCache_Clear(t *testing.T) {
	mc := NewMemoryCache(1024 * 1024)
	defer mc.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, mc.Set(fmt.Sprintf("k%d", i), testPage("http://example.com"), time.Minute))
	}
	require.NoError(t, mc.Clear())

	_, ok := mc.Get("k0")
	assert.False(t, ok)
}
