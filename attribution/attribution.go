// Package attribution helps applications meet the TMDB API terms of use by
// rendering the required attribution and checking content and usage for it.
package attribution

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"
)

const (
	// Text is the notice every application using the API must display.
	Text = "This product uses the TMDB API but is not endorsed or certified by TMDB."

	// LogoURL is the short TMDB logo.
	LogoURL = "https://www.themoviedb.org/assets/2/v4/logos/v2/blue_short-8e7b30f73a4020692ccca9c88bafe5dcb6f8a62a4c6bc55cd9ba82bb2cd95f6c.svg"

	// PrimaryLogoURL is the full TMDB logo.
	PrimaryLogoURL = "https://www.themoviedb.org/assets/2/v4/logos/primary-green-d70eebe18a5eb5b166d5c1ef0796715b8d1a2cbc698f96d311d62f894ae87085.svg"

	// TermsURL links to the API terms of use.
	TermsURL = "https://www.themoviedb.org/documentation/api/terms-of-use"

	// FreeTierRequestsPerDay is the daily request volume above which a paid
	// plan is recommended.
	FreeTierRequestsPerDay = 1000
)

// Validation and compliance messages.
const (
	ErrMissingText       = "Required TMDB attribution text is missing"
	WarnMissingTMDBURL   = "TMDB logo may be missing (no TMDB URL found)"
	WarnMissingLogoImage = "TMDB logo image tag may be missing"

	IssueRateLimit          = "Exceeding free tier rate limit (1000 requests/day)"
	IssueMissingAttribution = "TMDB attribution not detected"
	IssueMissingLogo        = "TMDB logo not detected"
	RecommendPaidPlan       = "Consider upgrading to a paid TMDB plan"
)

var logoImagePattern = regexp.MustCompile(`(?i)<img[^>]*src[^>]*themoviedb[^>]*>`)

// HTMLOptions customizes HTML. Zero values select the defaults.
type HTMLOptions struct {
	Class      string // default "tmdb-attribution"
	LogoHeight string // default "20"
	LogoAlt    string // default "TMDB"
	LogoURL    string // default LogoURL
	// OmitLink drops the link to the terms of use around the logo.
	OmitLink bool
}

func (o HTMLOptions) withDefaults() HTMLOptions {
	if o.Class == "" {
		o.Class = "tmdb-attribution"
	}
	if o.LogoHeight == "" {
		o.LogoHeight = "20"
	}
	if o.LogoAlt == "" {
		o.LogoAlt = "TMDB"
	}
	if o.LogoURL == "" {
		o.LogoURL = LogoURL
	}
	return o
}

// HTML renders the attribution block: the notice followed by the logo,
// linked to the terms of use unless OmitLink is set.
func HTML(opts HTMLOptions) string {
	opts = opts.withDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s">`, html.EscapeString(opts.Class))
	b.WriteString("<p>" + Text + "</p>")
	if !opts.OmitLink {
		b.WriteString(`<a href="` + TermsURL + `" target="_blank" rel="noopener noreferrer">`)
	}
	fmt.Fprintf(&b, `<img src="%s" alt="%s" height="%s" style="vertical-align: middle;">`,
		html.EscapeString(opts.LogoURL), html.EscapeString(opts.LogoAlt), html.EscapeString(opts.LogoHeight))
	if !opts.OmitLink {
		b.WriteString("</a>")
	}
	b.WriteString("</div>")
	return b.String()
}

// PlainText renders the notice and the terms URL on separate lines.
func PlainText() string {
	return Text + "\n" + TermsURL
}

type organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Logo string `json:"logo"`
}

type dataCatalog struct {
	Context     string       `json:"@context"`
	Type        string       `json:"@type"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
	Provider    organization `json:"provider"`
	License     string       `json:"license"`
	Attribution string       `json:"attribution"`
}

// JSONLD renders schema.org DataCatalog structured data naming TMDB as the
// data provider.
func JSONLD() (string, error) {
	data := dataCatalog{
		Context:     "https://schema.org",
		Type:        "DataCatalog",
		Name:        "The Movie Database (TMDB)",
		Description: "Movie and TV database",
		URL:         "https://www.themoviedb.org/",
		Provider: organization{
			Type: "Organization",
			Name: "TMDB",
			URL:  "https://www.themoviedb.org/",
			Logo: PrimaryLogoURL,
		},
		License:     TermsURL,
		Attribution: Text,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(data); err != nil {
		return "", fmt.Errorf("failed to encode JSON-LD data: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Validation is the result of checking content for attribution.
type Validation struct {
	Valid    bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateHTML checks content for the notice (an error when absent) and for
// the logo (warnings only). Matching is case-insensitive.
func ValidateHTML(content string) Validation {
	v := Validation{Errors: []string{}, Warnings: []string{}}
	lower := strings.ToLower(content)

	if !strings.Contains(lower, strings.ToLower(Text)) {
		v.Errors = append(v.Errors, ErrMissingText)
	}
	if !strings.Contains(lower, "themoviedb.org") {
		v.Warnings = append(v.Warnings, WarnMissingTMDBURL)
	}
	if !logoImagePattern.MatchString(content) {
		v.Warnings = append(v.Warnings, WarnMissingLogoImage)
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// Styles returns a stylesheet for the block rendered by HTML with the
// default class.
func Styles() string {
	return `.tmdb-attribution {
    font-size: 12px;
    color: #666;
    margin-top: 10px;
    padding: 5px;
    border-top: 1px solid #ddd;
    background-color: #f9f9f9;
}

.tmdb-attribution p {
    margin: 0 0 5px 0;
    display: inline;
}

.tmdb-attribution img {
    height: 20px;
    vertical-align: middle;
    margin-left: 5px;
}

.tmdb-attribution a {
    text-decoration: none;
    color: inherit;
}

.tmdb-attribution a:hover {
    opacity: 0.8;
}
`
}

// Usage describes how an application uses the API.
type Usage struct {
	RequestsPerDay int  `json:"requests_per_day" mapstructure:"requests_per_day"`
	HasAttribution bool `json:"has_attribution" mapstructure:"has_attribution"`
	HasLogo        bool `json:"has_logo" mapstructure:"has_logo"`
}

// Compliance is the result of CheckCompliance.
type Compliance struct {
	Compliant       bool     `json:"is_compliant"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// CheckCompliance reports issues with usage. Exceeding the free tier is an
// issue with a recommendation but does not by itself make usage
// non-compliant; missing attribution or logo does.
func CheckCompliance(u Usage) Compliance {
	c := Compliance{Compliant: true, Issues: []string{}, Recommendations: []string{}}

	if u.RequestsPerDay > FreeTierRequestsPerDay {
		c.Issues = append(c.Issues, IssueRateLimit)
		c.Recommendations = append(c.Recommendations, RecommendPaidPlan)
	}
	if !u.HasAttribution {
		c.Issues = append(c.Issues, IssueMissingAttribution)
		c.Compliant = false
	}
	if !u.HasLogo {
		c.Issues = append(c.Issues, IssueMissingLogo)
		c.Compliant = false
	}
	return c
}
