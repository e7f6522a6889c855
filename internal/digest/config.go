package digest

// Config holds the detection thresholds and boilerplate filters. The
// defaults match the press-digest template the tool was built for.
type Config struct {
	MinTitleLength int      `yaml:"min_title_length"` // In code points.
	MinFontSize    float64  `yaml:"min_font_size"`    // Compared against the rounded span size.
	Stoplist       []string `yaml:"stoplist"`
	BoldMarker     string   `yaml:"bold_marker"` // Case-insensitive substring of the font name.
	BulletMarkers  string   `yaml:"bullet_markers"`
	KnownSources   []string `yaml:"known_sources"`
}

// DefaultKnownSources lists the publications recognized in title suffixes.
var DefaultKnownSources = []string{
	"Reuters",
	"Bloomberg",
	"CNBC",
	"The Wall Street Journal",
	"MarketWatch",
	"Financial Times",
	"Fox Business",
	"The Guardian",
	"PR Newswire",
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		MinTitleLength: 25,
		MinFontSize:    12,
		Stoplist:       []string{"Uso General", "Información"},
		BoldMarker:     "bold",
		BulletMarkers:  "•▪◦●",
		KnownSources:   append([]string(nil), DefaultKnownSources...),
	}
}

// withDefaults fills zero-valued fields from DefaultConfig. A nil Stoplist
// or KnownSources is replaced; an empty non-nil one is kept.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MinTitleLength <= 0 {
		c.MinTitleLength = def.MinTitleLength
	}
	if c.MinFontSize <= 0 {
		c.MinFontSize = def.MinFontSize
	}
	if c.Stoplist == nil {
		c.Stoplist = def.Stoplist
	}
	if c.BoldMarker == "" {
		c.BoldMarker = def.BoldMarker
	}
	if c.BulletMarkers == "" {
		c.BulletMarkers = def.BulletMarkers
	}
	if c.KnownSources == nil {
		c.KnownSources = def.KnownSources
	}
	return c
}
