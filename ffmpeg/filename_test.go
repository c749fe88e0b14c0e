package ffmpeg

import (
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/suite"
)

// NamingTestSuite tests output naming, format resolution and language names.
type NamingTestSuite struct {
	suite.Suite
}

// TestBuildOutputNames checks final and temporary names for typical tracks.
func (suite *NamingTestSuite) TestBuildOutputNames() {
	tests := []struct {
		name      string
		source    string
		track     SubtitleTrack
		ext       string
		tempTag   string
		wantFinal string
		wantTemp  string
	}{
		{
			name:      "language only",
			source:    "movie.mkv",
			track:     SubtitleTrack{StreamIndex: 0, Lang: "eng", Format: "subrip"},
			ext:       "srt",
			wantFinal: "movie.0.eng.srt",
			wantTemp:  "output.srt",
		},
		{
			name:      "no language no title",
			source:    filepath.Join("media", "movie.mkv"),
			track:     SubtitleTrack{StreamIndex: 1, Format: "hdmv_pgs_subtitle"},
			ext:       "sup",
			wantFinal: filepath.Join("media", "movie.1.sup"),
			wantTemp:  filepath.Join("media", "output.sup"),
		},
		{
			name:      "title only",
			source:    "movie.mkv",
			track:     SubtitleTrack{StreamIndex: 2, Title: "Commentary", Format: "ass"},
			ext:       "ass",
			wantFinal: "movie.2.Commentary.ass",
			wantTemp:  "output.ass",
		},
		{
			name:      "dotted stem and sanitized title",
			source:    "Blade Runner 2049.mkv",
			track:     SubtitleTrack{StreamIndex: 3, Lang: "jpn", Title: "Signs: Songs/Lyrics?"},
			ext:       "ass",
			wantFinal: "Blade Runner 2049.3.jpn.Signs_ Songs_Lyrics_.ass",
			wantTemp:  "output.ass",
		},
		{
			name:      "unique temp",
			source:    "movie.mkv",
			track:     SubtitleTrack{StreamIndex: 0, Lang: "eng"},
			ext:       "srt",
			tempTag:   "abc",
			wantFinal: "movie.0.eng.srt",
			wantTemp:  "output.abc.srt",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			names := BuildOutputNames(tt.source, tt.track, tt.ext, tt.tempTag)
			suite.Equal(tt.wantFinal, names.Final)
			suite.Equal(tt.wantTemp, names.Temp)
		})
	}
}

// TestSanitizeFileComponent checks replacement, rune count and idempotence.
func (suite *NamingTestSuite) TestSanitizeFileComponent() {
	suite.Equal("a_b_c_d_e_f_g_h_i_j", SanitizeFileComponent(`a/b\c:d*e?f"g<h>i|j`))
	suite.Equal("tab_new_line_", SanitizeFileComponent("tab\tnew\nline\x7f"))
	suite.Equal("Français – ОК", SanitizeFileComponent("Français – ОК"))
	suite.Equal("", SanitizeFileComponent(""))

	inputs := []string{
		"",
		"English",
		`CON: "forced" <SDH>`,
		"日本語/字幕",
		"\x00\x01\x1f",
		"a|b|c??",
	}
	for _, in := range inputs {
		once := SanitizeFileComponent(in)
		suite.Equal(utf8.RuneCountInString(in), utf8.RuneCountInString(once), "input %q", in)
		suite.Equal(once, SanitizeFileComponent(once), "input %q", in)
		suite.NotContains(once, "/")
	}
}

// TestResolveFormat checks the codec table and the fallback.
func (suite *NamingTestSuite) TestResolveFormat() {
	tests := []struct {
		codec string
		want  OutputFormat
	}{
		{"subrip", OutputFormat{Extension: "srt", Muxer: "srt"}},
		{"ass", OutputFormat{Extension: "ass", Muxer: "ass"}},
		{"ssa", OutputFormat{Extension: "ass", Muxer: "ass"}},
		{"webvtt", OutputFormat{Extension: "vtt", Muxer: "webvtt"}},
		{"hdmv_pgs_subtitle", OutputFormat{Extension: "sup", Muxer: "sup"}},
		{"pgssub", OutputFormat{Extension: "sup", Muxer: "sup"}},
		{"dvb_subtitle", OutputFormat{Extension: "sub"}},
		{"SubRip", OutputFormat{Extension: "sub"}},
		{"", OutputFormat{Extension: "sub"}},
	}

	for _, tt := range tests {
		suite.Equal(tt.want, ResolveFormat(tt.codec), "codec %q", tt.codec)
		suite.Equal(tt.want.Extension, FormatToExtension(tt.codec), "codec %q", tt.codec)
	}
}

// TestLanguageName checks English names for FFmpeg language tags.
func (suite *NamingTestSuite) TestLanguageName() {
	suite.Equal("English", LanguageName("eng"))
	suite.Equal("Japanese", LanguageName("jpn"))
	suite.Equal("French", LanguageName("fr"))
	suite.Equal("", LanguageName(""))
	suite.Equal("", LanguageName("und"))
	suite.Equal("", LanguageName("not a tag"))
}

// TestTrackLabel checks the text shown for a track in menus and logs.
func (suite *NamingTestSuite) TestTrackLabel() {
	track := SubtitleTrack{StreamIndex: 2, Lang: "eng", Format: "subrip", Title: "SDH", Default: true, Forced: true}
	suite.Equal(`#2 subrip [eng, English] "SDH" (default, forced)`, track.Label())
	suite.Equal(`Stream #0:2 (eng) subrip "SDH"`, track.String())

	bare := SubtitleTrack{StreamIndex: 0, Format: "ass"}
	suite.Equal("#0 ass", bare.Label())
	suite.Equal("Stream #0:0 ass", bare.String())
}

// TestSelector checks the stream-copy map expression.
func (suite *NamingTestSuite) TestSelector() {
	suite.Equal("0:s:0", Selector(0))
	suite.Equal("0:s:12", Selector(12))
}

// TestNamingTestSuite runs the test suite.
func TestNamingTestSuite(t *testing.T) {
	suite.Run(t, new(NamingTestSuite))
}
