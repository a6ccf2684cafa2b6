// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package party

import (
	"net/url"
	"strings"

	"github.com/danielhkuo/ballotbox/models"
)

const (
	DefaultColor = "#666666"
	Independent  = "Independent"
	symbolDir    = "party_symbols/"
)

var colors = map[string]string{
	// Major parties
	"National People's Power":     "#A91D62",
	"Sri Lanka Podujana Peramuna": "#800020",
	"United National Party":       "#008000",
	"Samagi Jana Balawegaya":      "#008000",
	"Sri Lanka Freedom Party":     "#0000FF",
	"Independent":                 "#808080",

	"Sarvajana Balaya":         "#0066CC",
	"Mawbima Janatha Pakshaya": "#0066CC",

	"Ape Janabala Pakshaya":            "#FF6B35",
	"Arunalu People's Front":           "#4ECDC4",
	"Democratic United National Front": "#008000",
	"Democratic Unity Alliance":        "#1A535C",
	"Jana Setha Peramuna":              "#FFD700",
	"Jathika Sangwardhena Peramuna":    "#8B4513",
	"Nawa Sama Samaja Party":           "#D62828",
	"Nawa Sihala Urumaya":              "#FF8C00",
	"New Independent Front":            "#20B2AA",

	"People's Struggle Alliance (Jana Aragala Sandhanaya)": "#9370DB",

	"Samabima Party":                "#DC143C",
	"Socialist Equality Party":      "#8B0000",
	"Socialist Party of Sri Lanka":  "#FF1493",
	"Socialist People's Forum":      "#4B0082",
	"Sri Lanka Labour Party":        "#4169E1",
	"National Democratic Front":     "#FF4500",
	"United Lanka People's Party":   "#8B008B",
	"United Lanka Podujana Party":   "#8B008B",
	"United National Freedom Front": "#DAA520",
	"United Socialist Party":        "#B22222",
	"New Democratic Front":          "#4682B4",
}

const strugglePNG = "People's Struggle Alliance (Jana Aragala Sandhanaya).png"

var symbols = map[string]string{
	"Samagi Jana Balawegaya":      "Samagi Jana Balawegaya.png",
	"Sri Lanka Podujana Peramuna": "Sri Lanka Podujana Peramuna.png",
	"National People's Power":     "National People's Power.png",
	"Sri Lanka Freedom Party":     "Sri Lanka Freedom Party.png",
	"United National Party":       "United National Party.png",
	"Mawbima Janatha Pakshaya":    "Mawbima Janatha Pakshaya.png",

	"Ape Janabala Pakshaya":            "Ape Janabala Pakshaya.png",
	"Arunalu People's Front":           "Arunalu People's Front.png",
	"Democratic United National Front": "Democratic United National Front.png",
	"Democratic Unity Alliance":        "Democratic Unity Alliance.png",
	"Jana Setha Peramuna":              "Jana Setha Peramuna.png",
	"Jathika Sangwardhena Peramuna":    "Jathika Sangwardhena Peramuna.png",
	"Nawa Sama Samaja Party":           "Nawa Sama Samaja Party.png",
	"Nawa Sihala Urumaya":              "Nawa Sihala Urumaya.png",
	"New Independent Front":            "New Independent Front.png",

	"People's Struggle Alliance (Jana Aragala Sandhanaya)": strugglePNG,

	"Samabima Party":               "Samabima Party.png",
	"Socialist Equality Party":     "Socialist Equality Party.png",
	"Socialist Party of Sri Lanka": "Socialist Party of Sri Lanka.png",
	"Socialist People's Forum":     "Samabima Party.png",
	"Sri Lanka Labour Party":       "Sri Lanka Labour Party.png",
	"National Democratic Front":    "National Democratic Front.png",
	"United Lanka People's Party":  "United Lanka People's Party.png",
	// Former name, still present in older registrations
	"United Lanka Podujana Party":   "United Lanka People's Party.png",
	"United National Freedom Front": "United National Freedom Front.png",
	"United Socialist Party":        "United Socialist Party.png",
	"New Democratic Front":          "new democratic front.png",
}

// Keys are lower-cased and trimmed.
var symbolAliases = map[string]string{
	"people's struggle alliance (jana aragala sandhanaya)": strugglePNG,
	"people's struggle alliance":                           strugglePNG,
	"peoples struggle alliance":                            strugglePNG,
	"jana aragala sandhanaya":                              strugglePNG,
}

// Color returns the display color for a party, gray when unknown.
func Color(partyName string) string {
	if c, ok := colors[partyName]; ok {
		return c
	}
	return DefaultColor
}

// Symbol returns the symbol image filename for a party. Exact names are tried
// first, then normalized aliases. Returns "" when there is no symbol.
func Symbol(partyName string) string {
	if partyName == "" {
		return ""
	}
	if s, ok := symbols[partyName]; ok {
		return s
	}
	return symbolAliases[strings.ToLower(strings.TrimSpace(partyName))]
}

// SymbolURL joins the media URL and the party's symbol filename.
func SymbolURL(mediaURL, partyName string) string {
	file := Symbol(partyName)
	if file == "" {
		return ""
	}
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return mediaURL + symbolDir + url.PathEscape(file)
}

// ShortName keeps the first and last word of a full name.
func ShortName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) >= 2 {
		return parts[0] + " " + parts[len(parts)-1]
	}
	return fullName
}

// Presentation is the view-layer form of a candidate.
type Presentation struct {
	CandidateID string
	DisplayName string
	ShortName   string
	Party       string
	Color       string
	SymbolURL   string
}

// Present derives presentation data for a candidate without modifying it.
func Present(c models.Candidate, mediaURL string) Presentation {
	p := Presentation{
		CandidateID: c.ID,
		DisplayName: c.FullName,
		ShortName:   ShortName(c.FullName),
		Party:       Independent,
	}
	if c.BallotName != nil && *c.BallotName != "" {
		p.DisplayName = *c.BallotName
	}

	var partyName string
	if c.PartyName != nil {
		partyName = *c.PartyName
	}
	if partyName != "" {
		p.Party = partyName
	}

	p.Color = Color(partyName)
	p.SymbolURL = SymbolURL(mediaURL, partyName)
	return p
}
