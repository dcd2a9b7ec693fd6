package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestLookupLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty uses default", input: "", want: "fr-FR"},
		{name: "exact match", input: "fr-FR", want: "fr-FR"},
		{name: "language only", input: "fr", want: "fr-FR"},
		{name: "regional variant", input: "de-AT", want: "de-DE"},
		{name: "british english", input: "en-GB", want: "en-GB"},
		{name: "malformed tag", input: "not a locale!", wantErr: true},
		{name: "unsupported language", input: "ja-JP", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LookupLocale(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedLocale) {
					t.Fatalf("LookupLocale(%q) error = %v, want ErrUnsupportedLocale", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupLocale(%q) unexpected error: %v", tt.input, err)
			}
			if got.Tag.String() != tt.want {
				t.Errorf("LookupLocale(%q).Tag = %s, want %s", tt.input, got.Tag, tt.want)
			}
		})
	}
}

func TestLocaleFormatting(t *testing.T) {
	t.Parallel()

	// Saturday 15 March 2025, 14:30
	at := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		locale        string
		wantLong      string
		wantTimestamp string
	}{
		{
			locale:        "fr-FR",
			wantLong:      "samedi 15 mars 2025",
			wantTimestamp: "15 mars 2025 à 14:30",
		},
		{
			locale:        "en-US",
			wantLong:      "Saturday, March 15, 2025",
			wantTimestamp: "March 15, 2025 at 02:30 PM",
		},
		{
			locale:        "en-GB",
			wantLong:      "Saturday 15 March 2025",
			wantTimestamp: "15 March 2025 at 14:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			t.Parallel()

			loc, err := LookupLocale(tt.locale)
			if err != nil {
				t.Fatalf("LookupLocale: %v", err)
			}
			if got := loc.FormatLong(at); got != tt.wantLong {
				t.Errorf("FormatLong() = %q, want %q", got, tt.wantLong)
			}
			if got := loc.FormatTimestamp(at); got != tt.wantTimestamp {
				t.Errorf("FormatTimestamp() = %q, want %q", got, tt.wantTimestamp)
			}
		})
	}
}

func TestLocaleFormatLayout(t *testing.T) {
	t.Parallel()

	loc, err := LookupLocale("fr-FR")
	if err != nil {
		t.Fatalf("LookupLocale: %v", err)
	}
	layout, err := ParseDateFormat("DDD D MMM")
	if err != nil {
		t.Fatalf("ParseDateFormat: %v", err)
	}

	got := loc.FormatLayout(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), layout)
	if got == "" || got == "Sat 15 Mar" {
		t.Errorf("FormatLayout() = %q, want localized short names", got)
	}
}

func TestSupportedLocales(t *testing.T) {
	t.Parallel()

	got := SupportedLocales()
	if len(got) == 0 || got[0] != DefaultLocale {
		t.Errorf("SupportedLocales()[0] = %v, want %s first", got, DefaultLocale)
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	labels := Labels()
	seen := make(map[string]int)
	for _, l := range labels {
		seen[l]++
	}
	for _, want := range []string{"Mise à jour le", "Last updated", "Aktualisiert am"} {
		if seen[want] != 1 {
			t.Errorf("Labels() = %v, want %q exactly once", labels, want)
		}
	}
}
