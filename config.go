package glubblog

// Config is the site configuration, read from glubblog.yaml by the commands.
type Config struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	BaseURL     string `mapstructure:"baseURL"`
	Author      string `mapstructure:"author"`

	ContentDir     string `mapstructure:"contentDir"`
	OutputDir      string `mapstructure:"outputDir"`
	Markdown       string `mapstructure:"markdown"`
	HighlightStyle string `mapstructure:"highlightStyle"`
	Sanitize       bool   `mapstructure:"sanitize"`
	Tidy           bool   `mapstructure:"tidy"`
	Drafts         bool   `mapstructure:"drafts"`
	// Related is the size of the navigation window around a post, 0 disables it.
	Related int `mapstructure:"related"`
}

func DefaultConfig() Config {
	return Config{
		Title:          "glubblog",
		ContentDir:     DefaultContentDir,
		OutputDir:      "public",
		Markdown:       EngineGoldmark,
		HighlightStyle: DefaultHighlightStyle,
		Sanitize:       true,
	}
}

func (c Config) SiteInfo() SiteInfo {
	return SiteInfo{
		Title:       c.Title,
		Description: c.Description,
		BaseURL:     c.BaseURL,
		Author:      c.Author,
	}
}
