package dateutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// ErrUnsupportedLocale indicates a locale tag that cannot be parsed or matched.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "fr-FR"

// Locale holds the Go layouts and wording used to display dates for one language.
// Layouts use English names; monday swaps them for the localized ones.
type Locale struct {
	Tag       language.Tag
	names     monday.Locale
	LongDate  string // weekday, day, month, year
	Timestamp string // day, month, year, hour, minute
	Label     string // text placed before the last-updated timestamp
}

var supportedLocales = []Locale{
	{
		Tag:       language.MustParse("fr-FR"),
		names:     monday.LocaleFrFR,
		LongDate:  "Monday 2 January 2006",
		Timestamp: "2 January 2006 à 15:04",
		Label:     "Mise à jour le",
	},
	{
		Tag:       language.MustParse("en-US"),
		names:     monday.LocaleEnUS,
		LongDate:  "Monday, January 2, 2006",
		Timestamp: "January 2, 2006 at 03:04 PM",
		Label:     "Last updated",
	},
	{
		Tag:       language.MustParse("en-GB"),
		names:     monday.LocaleEnGB,
		LongDate:  "Monday 2 January 2006",
		Timestamp: "2 January 2006 at 15:04",
		Label:     "Last updated",
	},
	{
		Tag:       language.MustParse("de-DE"),
		names:     monday.LocaleDeDE,
		LongDate:  "Monday, 2. January 2006",
		Timestamp: "2. January 2006 um 15:04",
		Label:     "Aktualisiert am",
	},
	{
		Tag:       language.MustParse("es-ES"),
		names:     monday.LocaleEsES,
		LongDate:  "Monday, 2 de January de 2006",
		Timestamp: "2 de January de 2006, 15:04",
		Label:     "Actualizado el",
	},
	{
		Tag:       language.MustParse("it-IT"),
		names:     monday.LocaleItIT,
		LongDate:  "Monday 2 January 2006",
		Timestamp: "2 January 2006 alle 15:04",
		Label:     "Aggiornato il",
	},
	{
		Tag:       language.MustParse("nl-NL"),
		names:     monday.LocaleNlNL,
		LongDate:  "Monday 2 January 2006",
		Timestamp: "2 January 2006 om 15:04",
		Label:     "Bijgewerkt op",
	},
	{
		Tag:       language.MustParse("pt-PT"),
		names:     monday.LocalePtPT,
		LongDate:  "Monday, 2 de January de 2006",
		Timestamp: "2 de January de 2006 às 15:04",
		Label:     "Atualizado em",
	},
}

var localeMatcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(supportedLocales))
	for i, l := range supportedLocales {
		tags[i] = l.Tag
	}
	return tags
}

// Labels lists the distinct built-in last-updated labels.
func Labels() []string {
	var labels []string
	seen := make(map[string]bool, len(supportedLocales))
	for _, l := range supportedLocales {
		if !seen[l.Label] {
			seen[l.Label] = true
			labels = append(labels, l.Label)
		}
	}
	return labels
}

// SupportedLocales lists the locale tags LookupLocale can return.
func SupportedLocales() []string {
	names := make([]string, len(supportedLocales))
	for i, l := range supportedLocales {
		names[i] = l.Tag.String()
	}
	return names
}

// LookupLocale returns the closest supported locale for a BCP 47 tag.
// "fr" and "fr-CA" both resolve to fr-FR. An empty name means DefaultLocale.
func LookupLocale(name string) (Locale, error) {
	if name == "" {
		name = DefaultLocale
	}

	tag, err := language.Parse(name)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, name, err)
	}

	_, idx, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return Locale{}, fmt.Errorf("%w: %q", ErrUnsupportedLocale, name)
	}

	return supportedLocales[idx], nil
}

// FormatLong formats t as a long date with weekday ("samedi 15 mars 2025").
func (l Locale) FormatLong(t time.Time) string {
	return monday.Format(t, l.LongDate, l.names)
}

// FormatTimestamp formats t as a date with hour and minute ("15 mars 2025 à 14:30").
func (l Locale) FormatTimestamp(t time.Time) string {
	return monday.Format(t, l.Timestamp, l.names)
}

// FormatLayout formats t with a Go layout, localizing month and day names.
func (l Locale) FormatLayout(t time.Time, layout string) string {
	return monday.Format(t, layout, l.names)
}
