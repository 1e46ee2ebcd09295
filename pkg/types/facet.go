package types

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type FacetType string

const (
	CheckboxFacet FacetType = "checkbox"
	RadioFacet    FacetType = "radio"
	DropdownFacet FacetType = "dropdown"
	RangeFacet    FacetType = "range"
	SearchFacet   FacetType = "search"
	DateFacet     FacetType = "date"
	RatingFacet   FacetType = "rating"
)

type FacetSource string

const (
	TaxonomySource    FacetSource = "taxonomy"
	CustomFieldSource FacetSource = "custom_field"
	AttributeSource   FacetSource = "post_attribute"
)

type DataType string

const (
	AutoData    DataType = "auto"
	TextData    DataType = "text"
	NumericData DataType = "numeric"
	DecimalData DataType = "decimal"
)

// FacetSettings holds the per-type options of a facet. Keys that do not
// apply to the facet's type are simply ignored by the renderer/translator.
type FacetSettings struct {
	ContentTypes  []string `json:"contentTypes,omitempty"`
	Label         string   `json:"label,omitempty"`
	Placeholder   string   `json:"placeholder,omitempty"`
	ShowCount     bool     `json:"showCount,omitempty"`
	HideEmpty     bool     `json:"hideEmpty,omitempty"`
	Multiple      bool     `json:"multiple,omitempty"`
	OrderBy       string   `json:"orderBy,omitempty"`
	Order         string   `json:"order,omitempty"`
	DataType      DataType `json:"dataType,omitempty"`
	Min           float64  `json:"min,omitempty"`
	Max           float64  `json:"max,omitempty"`
	Step          float64  `json:"step,omitempty"`
	Prefix        string   `json:"prefix,omitempty"`
	Suffix        string   `json:"suffix,omitempty"`
	InputsEnabled bool     `json:"inputsEnabled,omitempty"`
	DateType      string   `json:"dateType,omitempty"`
	DateFormat    string   `json:"dateFormat,omitempty"`
}

type FacetDefinition struct {
	Id        int64         `json:"id"`
	Name      string        `json:"name"`
	Slug      string        `json:"slug"`
	Type      FacetType     `json:"type"`
	Source    FacetSource   `json:"source"`
	SourceKey string        `json:"sourceKey"`
	Settings  FacetSettings `json:"settings"`
	CreatedAt time.Time     `json:"createdAt,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt,omitempty"`
}

// DisplayLabel prefers the configured label and falls back to the name.
func (f *FacetDefinition) DisplayLabel() string {
	if f.Settings.Label != "" {
		return f.Settings.Label
	}
	return f.Name
}

func (f *FacetDefinition) RangeBounds() (float64, float64) {
	min := f.Settings.Min
	max := f.Settings.Max
	if min == 0 && max == 0 {
		max = 100
	}
	return min, max
}

func (f *FacetDefinition) UpdateFrom(other *FacetDefinition) {
	if other == nil {
		return
	}
	if other.Name != "" {
		f.Name = other.Name
	}
	if other.Type != "" {
		f.Type = other.Type
	}
	if other.Source != "" {
		f.Source = other.Source
	}
	if other.SourceKey != "" {
		f.SourceKey = other.SourceKey
	}
	f.Settings = other.Settings
	f.UpdatedAt = time.Now()
}

// Parameter suffixes reserved by the filter grammar. A slug ending in one of
// these could not be told apart from a range or date bound of a shorter slug,
// so such slugs are rejected when a facet is saved.
var reservedSuffixes = []string{"_min", "_max", "_from", "_to"}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("slug %q may only contain lowercase letters, digits, - and _", slug)
	}
	for _, suffix := range reservedSuffixes {
		if strings.HasSuffix(slug, suffix) {
			return fmt.Errorf("slug %q ends in reserved suffix %q", slug, suffix)
		}
	}
	return nil
}

// Slugify derives a parameter-safe slug from a display name.
func Slugify(name string) string {
	out := make([]rune, 0, len(name))
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
			lastDash = false
		default:
			if !lastDash {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	return strings.Trim(string(out), "-")
}

func ValidFacetType(t FacetType) bool {
	switch t {
	case CheckboxFacet, RadioFacet, DropdownFacet, RangeFacet, SearchFacet, DateFacet, RatingFacet:
		return true
	}
	return false
}

func ValidFacetSource(s FacetSource) bool {
	switch s {
	case TaxonomySource, CustomFieldSource, AttributeSource:
		return true
	}
	return false
}
