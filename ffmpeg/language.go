package ffmpeg

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageName returns the English name of an ISO 639 language code as
// printed by FFmpeg ("eng", "fre", "pt"), or "" when the code is unknown or
// undetermined.
func LanguageName(code string) string {
	if code == "" || code == "und" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.English.Languages().Name(tag)
}
