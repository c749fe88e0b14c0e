package ffmpeg

import (
	"path/filepath"
	"strconv"
	"strings"
)

// forbiddenFileRunes are the characters not allowed in portable file names.
const forbiddenFileRunes = `/\:*?"<>|`

// BuildOutputNames derives the final and temporary paths for a track copied
// out of source. Both live in the source file's directory.
//
// The final name is <stem>.<index>[.<lang>][.<title>].<ext>, where optional
// parts are left out, dot included, when empty. The temporary name is
// output.<ext>, shared by every track of the directory, unless tempTag is set,
// in which case it becomes output.<tempTag>.<ext>.
func BuildOutputNames(source string, track SubtitleTrack, ext, tempTag string) OutputNames {
	dir := filepath.Dir(source)
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	parts := []string{stem, strconv.Itoa(track.StreamIndex)}
	if lang := SanitizeFileComponent(track.Lang); lang != "" {
		parts = append(parts, lang)
	}
	if title := SanitizeFileComponent(track.Title); title != "" {
		parts = append(parts, title)
	}
	parts = append(parts, ext)

	temp := tempBaseName
	if tempTag != "" {
		temp += "." + tempTag
	}

	return OutputNames{
		Final: filepath.Join(dir, strings.Join(parts, ".")),
		Temp:  filepath.Join(dir, temp+"."+ext),
	}
}

// SanitizeFileComponent replaces every character that is unsafe in a
// portable file name, and every ASCII control character, with an underscore.
// Each offending rune becomes exactly one underscore, so the rune count is
// preserved and applying it twice gives the same result as applying it once.
func SanitizeFileComponent(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(forbiddenFileRunes, r) {
			return '_'
		}
		return r
	}, s)
}
