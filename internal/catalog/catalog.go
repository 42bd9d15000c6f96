package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/conectlink/conectlink-backend/pkg/config"
	"github.com/conectlink/conectlink-backend/pkg/enums"
)

// AlertTypeMeta holds the default rendering hints for an alert type.
type AlertTypeMeta struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// PlatformMeta holds the rendering hints for a social platform.
type PlatformMeta struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// PlatformEntry pairs a platform key with its metadata for API listings.
type PlatformEntry struct {
	Key string `json:"key"`
	PlatformMeta
}

// AlertTypeEntry pairs an alert type with its metadata for API listings.
type AlertTypeEntry struct {
	Type enums.AlertType `json:"type"`
	AlertTypeMeta
}

// Catalog is the read-only lookup for platform and alert-type metadata.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	alertTypes map[enums.AlertType]AlertTypeMeta
	platforms  map[string]PlatformMeta
}

var defaultAlertTypes = map[enums.AlertType]AlertTypeMeta{
	enums.AlertTypeInfo:         {Icon: "info", Color: "#3B82F6"},
	enums.AlertTypePromo:        {Icon: "tag", Color: "#10B981"},
	enums.AlertTypeWarning:      {Icon: "alert-triangle", Color: "#F59E0B"},
	enums.AlertTypeSuccess:      {Icon: "check-circle", Color: "#10B981"},
	enums.AlertTypeAnnouncement: {Icon: "megaphone", Color: "#8B5CF6"},
}

var defaultPlatforms = map[string]PlatformMeta{
	"facebook":    {Label: "Facebook", Icon: "facebook", Color: "#1877F2"},
	"instagram":   {Label: "Instagram", Icon: "instagram", Color: "#E4405F"},
	"twitter":     {Label: "X (Twitter)", Icon: "twitter", Color: "#000000"},
	"tiktok":      {Label: "TikTok", Icon: "tiktok", Color: "#000000"},
	"linkedin":    {Label: "LinkedIn", Icon: "linkedin", Color: "#0A66C2"},
	"youtube":     {Label: "YouTube", Icon: "youtube", Color: "#FF0000"},
	"whatsapp":    {Label: "WhatsApp", Icon: "whatsapp", Color: "#25D366"},
	"telegram":    {Label: "Telegram", Icon: "telegram", Color: "#0088CC"},
	"pinterest":   {Label: "Pinterest", Icon: "pinterest", Color: "#BD081C"},
	"snapchat":    {Label: "Snapchat", Icon: "snapchat", Color: "#FFFC00"},
	"threads":     {Label: "Threads", Icon: "threads", Color: "#000000"},
	"github":      {Label: "GitHub", Icon: "github", Color: "#181717"},
	"dribbble":    {Label: "Dribbble", Icon: "dribbble", Color: "#EA4C89"},
	"behance":     {Label: "Behance", Icon: "behance", Color: "#1769FF"},
	"spotify":     {Label: "Spotify", Icon: "spotify", Color: "#1DB954"},
	"apple_music": {Label: "Apple Music", Icon: "apple-music", Color: "#FA243C"},
	"soundcloud":  {Label: "SoundCloud", Icon: "soundcloud", Color: "#FF5500"},
	"twitch":      {Label: "Twitch", Icon: "twitch", Color: "#9146FF"},
	"discord":     {Label: "Discord", Icon: "discord", Color: "#5865F2"},
	"website":     {Label: "Website", Icon: "globe", Color: "#6B7280"},
	"email":       {Label: "Email", Icon: "mail", Color: "#6B7280"},
	"phone":       {Label: "Phone", Icon: "phone", Color: "#6B7280"},
	"other":       {Label: "Link", Icon: "link", Color: "#6B7280"},
}

// Default returns a catalog with the built-in metadata.
func Default() *Catalog {
	return &Catalog{
		alertTypes: cloneMap(defaultAlertTypes),
		platforms:  cloneMap(defaultPlatforms),
	}
}

// Load builds the catalog, applying optional JSON override files from config.
// Overrides merge over the built-in entries; they cannot remove an entry.
func Load(cfg config.CatalogConfig) (*Catalog, error) {
	cat := Default()

	if cfg.AlertTypesFile != "" {
		overrides := map[enums.AlertType]AlertTypeMeta{}
		if err := readJSONFile(cfg.AlertTypesFile, &overrides); err != nil {
			return nil, fmt.Errorf("loading alert type overrides: %w", err)
		}
		for key, meta := range overrides {
			if !key.IsValid() {
				return nil, fmt.Errorf("unknown alert type %q in %s", key, cfg.AlertTypesFile)
			}
			cat.alertTypes[key] = meta
		}
	}

	if cfg.SocialPlatformsFile != "" {
		overrides := map[string]PlatformMeta{}
		if err := readJSONFile(cfg.SocialPlatformsFile, &overrides); err != nil {
			return nil, fmt.Errorf("loading social platform overrides: %w", err)
		}
		for key, meta := range overrides {
			cat.platforms[key] = meta
		}
	}

	return cat, nil
}

// AlertType returns the metadata for the given type, falling back to info.
func (c *Catalog) AlertType(t enums.AlertType) AlertTypeMeta {
	if meta, ok := c.alertTypes[t]; ok {
		return meta
	}
	return c.alertTypes[enums.AlertTypeInfo]
}

// Platform returns the metadata for the given key, falling back to "other".
func (c *Catalog) Platform(key string) PlatformMeta {
	if meta, ok := c.platforms[key]; ok {
		return meta
	}
	return c.platforms["other"]
}

// IsValidPlatform reports whether the key has a catalog entry.
func (c *Catalog) IsValidPlatform(key string) bool {
	_, ok := c.platforms[key]
	return ok
}

// Platforms returns all entries sorted by key for stable API output.
func (c *Catalog) Platforms() []PlatformEntry {
	keys := make([]string, 0, len(c.platforms))
	for key := range c.platforms {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]PlatformEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, PlatformEntry{Key: key, PlatformMeta: c.platforms[key]})
	}
	return entries
}

// AlertTypes returns all entries in declaration order of the enum.
func (c *Catalog) AlertTypes() []AlertTypeEntry {
	entries := make([]AlertTypeEntry, 0, len(c.alertTypes))
	for _, t := range enums.AlertTypes() {
		if meta, ok := c.alertTypes[t]; ok {
			entries = append(entries, AlertTypeEntry{Type: t, AlertTypeMeta: meta})
		}
	}
	return entries
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
