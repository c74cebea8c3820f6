package attribution

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	for _, u := range []string{LogoURL, PrimaryLogoURL, TermsURL} {
		assert.True(t, strings.HasPrefix(u, "https://"), u)
		assert.Contains(t, u, "themoviedb.org")
	}
	assert.Contains(t, Text, "TMDB API")
	assert.Contains(t, Text, "not endorsed or certified")
}

func TestHTML(t *testing.T) {
	tests := []struct {
		name        string
		opts        HTMLOptions
		contains    []string
		notContains []string
	}{
		{
			name: "defaults",
			opts: HTMLOptions{},
			contains: []string{
				`<div class="tmdb-attribution">`,
				"<p>" + Text + "</p>",
				`<a href="` + TermsURL + `" target="_blank" rel="noopener noreferrer">`,
				`<img src="` + LogoURL + `" alt="TMDB" height="20"`,
				"</a></div>",
			},
		},
		{
			name: "custom options without link",
			opts: HTMLOptions{Class: "custom-class", LogoHeight: "30", LogoAlt: "Custom Alt", OmitLink: true},
			contains: []string{
				`class="custom-class"`,
				`height="30"`,
				`alt="Custom Alt"`,
			},
			notContains: []string{"<a href"},
		},
		{
			name:     "custom logo",
			opts:     HTMLOptions{LogoURL: PrimaryLogoURL},
			contains: []string{`src="` + PrimaryLogoURL + `"`},
		},
		{
			name:        "attribute values are escaped",
			opts:        HTMLOptions{LogoAlt: `"><script>`},
			contains:    []string{`alt="&#34;&gt;&lt;script&gt;"`},
			notContains: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := HTML(tt.opts)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestHTMLPassesValidation(t *testing.T) {
	v := ValidateHTML(HTML(HTMLOptions{}))
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, Text+"\n"+TermsURL, PlainText())
}

func TestJSONLD(t *testing.T) {
	out, err := JSONLD()
	require.NoError(t, err)
	assert.Contains(t, out, `"https://schema.org"`, "slashes are not escaped")

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, "https://schema.org", data["@context"])
	assert.Equal(t, "DataCatalog", data["@type"])
	assert.Equal(t, "The Movie Database (TMDB)", data["name"])
	assert.Equal(t, TermsURL, data["license"])
	assert.Equal(t, Text, data["attribution"])

	provider := data["provider"].(map[string]any)
	assert.Equal(t, "Organization", provider["@type"])
	assert.Equal(t, PrimaryLogoURL, provider["logo"])
}

func TestValidateHTML(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		valid    bool
		errors   []string
		warnings []string
	}{
		{
			name: "valid content",
			content: `<div class="movie">
				<h3>Sample Movie</h3>
				<p>This product uses the TMDB API but is not endorsed or certified by TMDB.</p>
				<img src="` + LogoURL + `" alt="TMDB" height="20">
			</div>`,
			valid:    true,
			errors:   []string{},
			warnings: []string{},
		},
		{
			name:     "missing attribution",
			content:  `<div><p>Movie description without TMDB attribution.</p></div>`,
			valid:    false,
			errors:   []string{ErrMissingText},
			warnings: []string{WarnMissingTMDBURL, WarnMissingLogoImage},
		},
		{
			name:     "text without logo",
			content:  `<p>` + Text + `</p>`,
			valid:    true,
			errors:   []string{},
			warnings: []string{WarnMissingTMDBURL, WarnMissingLogoImage},
		},
		{
			name:     "link without image",
			content:  `<p>` + strings.ToUpper(Text) + `</p><a href="https://www.themoviedb.org/">TMDB</a>`,
			valid:    true,
			errors:   []string{},
			warnings: []string{WarnMissingLogoImage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateHTML(tt.content)
			assert.Equal(t, tt.valid, v.Valid)
			assert.Equal(t, tt.errors, v.Errors)
			assert.Equal(t, tt.warnings, v.Warnings)
		})
	}
}

func TestStyles(t *testing.T) {
	css := Styles()
	assert.Contains(t, css, ".tmdb-attribution {")
	assert.Contains(t, css, "font-size")
	assert.Contains(t, css, ".tmdb-attribution a:hover")
}

func TestCheckCompliance(t *testing.T) {
	tests := []struct {
		name            string
		usage           Usage
		compliant       bool
		issues          []string
		recommendations []string
	}{
		{
			name:            "compliant",
			usage:           Usage{RequestsPerDay: 500, HasAttribution: true, HasLogo: true},
			compliant:       true,
			issues:          []string{},
			recommendations: []string{},
		},
		{
			name:            "at free tier limit",
			usage:           Usage{RequestsPerDay: 1000, HasAttribution: true, HasLogo: true},
			compliant:       true,
			issues:          []string{},
			recommendations: []string{},
		},
		{
			name:            "over rate limit still compliant",
			usage:           Usage{RequestsPerDay: 1500, HasAttribution: true, HasLogo: true},
			compliant:       true,
			issues:          []string{IssueRateLimit},
			recommendations: []string{RecommendPaidPlan},
		},
		{
			name:            "non compliant",
			usage:           Usage{RequestsPerDay: 1500},
			compliant:       false,
			issues:          []string{IssueRateLimit, IssueMissingAttribution, IssueMissingLogo},
			recommendations: []string{RecommendPaidPlan},
		},
		{
			name:            "missing logo only",
			usage:           Usage{HasAttribution: true},
			compliant:       false,
			issues:          []string{IssueMissingLogo},
			recommendations: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CheckCompliance(tt.usage)
			assert.Equal(t, tt.compliant, c.Compliant)
			assert.Equal(t, tt.issues, c.Issues)
			assert.Equal(t, tt.recommendations, c.Recommendations)
		})
	}
}
