package harvest_test

import (
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteProfiles_Detect(t *testing.T) {
	t.Parallel()

	profiles := harvest.NewSiteProfiles(
		harvest.SiteProfile{Name: "amazon", Selectors: harvest.ProductSelectors{Title: "#productTitle"}},
		harvest.SiteProfile{Name: "ebay"},
		harvest.SiteProfile{Name: "shop", Match: "myshop.example"},
	)

	t.Run("matches by name substring", func(t *testing.T) {
		t.Parallel()

		got, ok := profiles.Detect("https://www.amazon.com/dp/B000123")

		require.True(t, ok)
		assert.Equal(t, "amazon", got.Name)
		assert.Equal(t, "#productTitle", got.Selectors.Title)
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		t.Parallel()

		got, ok := profiles.Detect("https://www.EBAY.co.uk/itm/1")

		require.True(t, ok)
		assert.Equal(t, "ebay", got.Name)
	})

	t.Run("uses match key when set", func(t *testing.T) {
		t.Parallel()

		got, ok := profiles.Detect("https://myshop.example/p/1")
		require.True(t, ok)
		assert.Equal(t, "shop", got.Name)

		_, ok = profiles.Detect("https://shop.example/p/1")
		assert.False(t, ok)
	})

	t.Run("matches a site name anywhere in the URL", func(t *testing.T) {
		t.Parallel()

		got, ok := profiles.Detect("https://blog.example.com/reviews/amazon-kindle")

		require.True(t, ok)
		assert.Equal(t, "amazon", got.Name)
	})

	t.Run("returns false for unknown sites", func(t *testing.T) {
		t.Parallel()

		_, ok := profiles.Detect("https://example.com/products")

		assert.False(t, ok)
	})

	t.Run("nil set detects nothing", func(t *testing.T) {
		t.Parallel()

		var empty *harvest.SiteProfiles
		_, ok := empty.Detect("https://amazon.com")

		assert.False(t, ok)
	})
}

func TestSiteProfiles_Immutable(t *testing.T) {
	t.Parallel()

	input := []harvest.SiteProfile{{Name: "amazon"}}
	profiles := harvest.NewSiteProfiles(input...)

	input[0].Name = "changed"
	listed := profiles.List()
	listed[0].Name = "changed"

	got, ok := profiles.Detect("https://amazon.com")
	require.True(t, ok)
	assert.Equal(t, "amazon", got.Name)
}
