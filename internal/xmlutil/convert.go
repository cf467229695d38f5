package xmlutil

import (
	"encoding/base64"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// EMUToPoint is the conversion factor from English Metric Units to points
// (12700 EMU per point, 914400 EMU per inch).
const EMUToPoint = 1.0 / 12700.0

// angleDenominator is the OOXML angle unit: 60000ths of a degree.
const angleDenominator = 60000.0

// EMU parses an EMU-valued attribute string to points, rounding is left to
// the caller (geometry callers want full float precision for group math).
func EMU(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v * EMUToPoint
}

// EMUInt is EMU but for attribute values already parsed as an integer EMU
// count (the default slide size is given this way).
func EMUInt(v int64) float64 {
	return float64(v) * EMUToPoint
}

// AngleToDegrees converts a 60000ths-of-a-degree OOXML angle attribute to
// signed whole degrees, rounding to the nearest integer. An empty string
// (attribute absent) yields 0, per spec §4.1.
func AngleToDegrees(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(v / angleDenominator))
}

// PercentVal parses an OOXML percentage attribute (hundred-thousandths,
// e.g. "75000" == 75%) to a 0..1 float. Used by color modulation.
func PercentVal(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v / 100000.0, true
}

// mimeTable is the closed extension->MIME mapping from spec §6.
var mimeTable = map[string]string{
	"jpg": "image/jpeg", "jpeg": "image/jpeg",
	"png": "image/png",
	"gif": "image/gif",
	"svg": "image/svg+xml",
	"tif": "image/tiff", "tiff": "image/tiff",
	"emf": "image/x-emf",
	"wmf": "image/x-wmf",
	"mp4": "video/mp4",
	"webm": "video/webm",
	"ogg": "video/ogg",
	"avi": "video/avi",
	"mpg": "video/mpg",
	"wmv": "video/wmv",
	"mp3": "audio/mpeg",
	"wav": "audio/wav",
}

// MimeOf returns the MIME type for a (case-insensitive, leading-dot
// optional) file extension, or "" for anything outside the closed set.
func MimeOf(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return mimeTable[ext]
}

// FileExt returns name's extension without the leading dot, lower-cased.
func FileExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// DataURL builds a `data:<mime>;base64,<...>` URL for media bytes. The
// MIME type is derived from path's extension via MimeOf; an unrecognized
// extension falls back to application/octet-stream rather than emitting a
// malformed data URL.
func DataURL(path string, data []byte) string {
	mime := MimeOf(FileExt(path))
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// HTMLEscape escapes the five characters that are unsafe to place
// literally inside HTML text content or a quoted attribute value.
func HTMLEscape(s string) string {
	return htmlEscaper.Replace(s)
}

// videoURLPattern matches an http(s)/ftp URL ending in a common video or
// streaming-playlist extension — used to tell an external video reference
// (p:videoFile/@r:link pointing at an external URL rather than embedded
// media) apart from a plain hyperlink.
var videoURLPattern = regexp.MustCompile(`(?i)^(https?|ftp)://\S+\.(mp4|webm|ogg|avi|mpg|mpeg|wmv|mov|m3u8|flv)(\?\S*)?$`)

// IsVideoURL reports whether s looks like a direct link to a video file.
func IsVideoURL(s string) bool {
	return videoURLPattern.MatchString(s)
}
