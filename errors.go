package pptxtojson

import (
	"errors"

	"github.com/VitaminC1989/pptxtojson-go/internal/resource"
)

// ErrThemeMissing is returned when the package's presentation part has no
// theme relationship (spec §7's "package-malformed", fatal).
var ErrThemeMissing = resource.ErrThemeMissing

// ErrNoSlides is returned when [Content_Types].xml lists no slide parts.
var ErrNoSlides = errors.New("pptxtojson: presentation has no slides")
