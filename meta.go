package glubblog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Meta is the front-matter of a post. It is read from the head of a markdown
// file or from a meta.json next to an article.md.
type Meta struct {
	Title       string   `yaml:"title" json:"title" toml:"title"`
	Slug        string   `yaml:"slug,omitempty" json:"slug,omitempty" toml:"slug"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
	Author      string   `yaml:"author,omitempty" json:"author,omitempty" toml:"author"`
	Date        GCTime   `yaml:"date,omitempty" json:"date,omitempty" toml:"date"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty" toml:"tags"`

	Priority int  `yaml:"priority,omitempty" json:"priority,omitempty" toml:"priority"`
	Draft    bool `yaml:"draft,omitempty" json:"draft,omitempty" toml:"draft"`
	Unsafe   bool `yaml:"unsafe,omitempty" json:"unsafe,omitempty" toml:"unsafe"`
}

type GCTime time.Time

const GCTimeLayout = "2006-01-02 15:04"

// accepted in front-matter, first match wins
var gcTimeLayouts = []string{
	GCTimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseGCTime(s string) (GCTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GCTime{}, nil
	}
	for _, layout := range gcTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return GCTime(t), nil
		}
	}
	return GCTime{}, errors.Errorf("unrecognized date %q", s)
}

func (t GCTime) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t GCTime) String() string {
	return time.Time(t).Format(GCTimeLayout)
}

func (t *GCTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	tmp, err := ParseGCTime(s)
	*t = tmp
	return err
}

func (t GCTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalYAML accepts both plain strings and YAML timestamps.
func (t *GCTime) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var ts time.Time
	if err := unmarshal(&ts); err == nil {
		*t = GCTime(ts)
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	tmp, err := ParseGCTime(s)
	*t = tmp
	return err
}

func (t GCTime) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalText covers TOML front-matter written as a quoted string.
func (t *GCTime) UnmarshalText(b []byte) error {
	tmp, err := ParseGCTime(string(b))
	*t = tmp
	return err
}
