package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectlink/conectlink-backend/pkg/config"
	"github.com/conectlink/conectlink-backend/pkg/enums"
)

func TestDefaultCatalogLookups(t *testing.T) {
	cat := Default()

	promo := cat.AlertType(enums.AlertTypePromo)
	assert.Equal(t, "tag", promo.Icon)
	assert.Equal(t, "#10B981", promo.Color)

	// Unknown types fall back to info.
	unknown := cat.AlertType(enums.AlertType("bogus"))
	assert.Equal(t, "info", unknown.Icon)
	assert.Equal(t, "#3B82F6", unknown.Color)

	github := cat.Platform("github")
	assert.Equal(t, "GitHub", github.Label)
	assert.Equal(t, "#181717", github.Color)

	fallback := cat.Platform("myspace")
	assert.Equal(t, "Link", fallback.Label)
	assert.Equal(t, "link", fallback.Icon)

	assert.True(t, cat.IsValidPlatform("tiktok"))
	assert.False(t, cat.IsValidPlatform("myspace"))
}

func TestPlatformsSortedAndComplete(t *testing.T) {
	cat := Default()
	entries := cat.Platforms()
	require.Len(t, entries, 23)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Key, entries[i].Key)
	}
}

func TestAlertTypesFollowEnumOrder(t *testing.T) {
	cat := Default()
	entries := cat.AlertTypes()
	require.Len(t, entries, 5)
	assert.Equal(t, enums.AlertTypeInfo, entries[0].Type)
	assert.Equal(t, enums.AlertTypeAnnouncement, entries[len(entries)-1].Type)
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	alertFile := filepath.Join(dir, "alerts.json")
	require.NoError(t, os.WriteFile(alertFile, []byte(`{"promo": {"icon": "percent", "color": "#FF0000"}}`), 0o644))

	platformFile := filepath.Join(dir, "platforms.json")
	require.NoError(t, os.WriteFile(platformFile, []byte(`{"mastodon": {"label": "Mastodon", "icon": "mastodon", "color": "#6364FF"}}`), 0o644))

	cat, err := Load(config.CatalogConfig{AlertTypesFile: alertFile, SocialPlatformsFile: platformFile})
	require.NoError(t, err)

	promo := cat.AlertType(enums.AlertTypePromo)
	assert.Equal(t, "percent", promo.Icon)
	assert.Equal(t, "#FF0000", promo.Color)

	// Untouched entries keep their defaults.
	assert.Equal(t, "info", cat.AlertType(enums.AlertTypeInfo).Icon)

	assert.True(t, cat.IsValidPlatform("mastodon"))
	assert.Equal(t, "Mastodon", cat.Platform("mastodon").Label)
}

func TestLoadRejectsUnknownAlertType(t *testing.T) {
	dir := t.TempDir()
	alertFile := filepath.Join(dir, "alerts.json")
	require.NoError(t, os.WriteFile(alertFile, []byte(`{"danger": {"icon": "x", "color": "#000000"}}`), 0o644))

	_, err := Load(config.CatalogConfig{AlertTypesFile: alertFile})
	require.Error(t, err)
}
