// Package model holds the JSON-serializable output types shared by every
// stage of the resolution pipeline (spec.md §3's Data Model and §6's
// Output schema). Keeping them in their own package (rather than the root
// package) lets internal/dispatch, internal/shapebuild, and internal/frame
// all produce and nest Elements without an import cycle back to the
// public API.
package model

// Size is the presentation's slide dimensions in points.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FillType discriminates a Fill's Value.
type FillType string

const (
	FillColor    FillType = "color"
	FillGradient FillType = "gradient"
	FillImage    FillType = "image"
)

// GradientStop is one resolved gradient stop.
type GradientStop struct {
	Pos   string `json:"pos"`
	Color string `json:"color"`
}

// Gradient is the resolved {rot, colors} record spec §3 calls GradientRec.
type Gradient struct {
	Rot    int            `json:"rot"`
	Colors []GradientStop `json:"colors"`
}

// Fill is a background or shape-group fill record.
type Fill struct {
	Type  FillType    `json:"type"`
	Value interface{} `json:"value"`
}

// Shadow describes an outer shadow effect (spec §6's getShadow contract).
type Shadow struct {
	Color string  `json:"color"`
	Blur  float64 `json:"blur"`
	OffX  float64 `json:"offX"`
	OffY  float64 `json:"offY"`
}

// Border describes a shape or table-cell border (spec §6's getBorder
// contract).
type Border struct {
	Color           string  `json:"borderColor"`
	Width           float64 `json:"borderWidth"`
	Type            string  `json:"borderType"`
	StrokeDasharray string  `json:"borderStrokeDasharray,omitempty"`
}

// ElementType discriminates Element.Type, per spec §3.
type ElementType string

const (
	TypeShape   ElementType = "shape"
	TypeText    ElementType = "text"
	TypeImage   ElementType = "image"
	TypeVideo   ElementType = "video"
	TypeAudio   ElementType = "audio"
	TypeTable   ElementType = "table"
	TypeChart   ElementType = "chart"
	TypeDiagram ElementType = "diagram"
	TypeGroup   ElementType = "group"
)

// TableCell is one resolved table cell (spec §3).
type TableCell struct {
	Text      string `json:"text"`
	RowSpan   int    `json:"rowSpan,omitempty"`
	ColSpan   int    `json:"colSpan,omitempty"`
	VMerge    bool   `json:"vMerge,omitempty"`
	HMerge    bool   `json:"hMerge,omitempty"`
	FillColor string `json:"fillColor,omitempty"`
	FontColor string `json:"fontColor,omitempty"`
	FontBold  bool   `json:"fontBold,omitempty"`
}

// Element is the tagged record emitted for every slide-tree node the
// dispatcher visits. Fields not meaningful for a given Type are left at
// their zero value and omitted from JSON.
type Element struct {
	Type ElementType `json:"type"`

	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rotate int     `json:"rotate,omitempty"`
	IsFlipH bool   `json:"isFlipH,omitempty"`
	IsFlipV bool   `json:"isFlipV,omitempty"`
	Name    string `json:"name,omitempty"`

	// shape / text
	ShapType string  `json:"shapType,omitempty"`
	Path     string  `json:"path,omitempty"`
	FillColor string `json:"fillColor,omitempty"`
	Border    *Border `json:"border,omitempty"`
	Shadow    *Shadow `json:"shadow,omitempty"`
	Content   string  `json:"content,omitempty"`
	IsVertical bool   `json:"isVertical,omitempty"`
	VAlign     string `json:"vAlign,omitempty"`

	// image
	Src string `json:"src,omitempty"`

	// video / audio
	Blob string `json:"blob,omitempty"`

	// table: [][]TableCell. chart: whatever getChartInfo produced (series
	// data is chart-type-shaped and spec leaves its internals collaborator-
	// defined). Both are carried in the same field since spec §3 names them
	// "data" in both the table and chart variants of the same tagged union.
	Data interface{} `json:"data,omitempty"`

	// chart
	ChartType string  `json:"chartType,omitempty"`
	Marker    bool    `json:"marker,omitempty"`
	BarDir    string  `json:"barDir,omitempty"`
	HoleSize  float64 `json:"holeSize,omitempty"`
	Grouping  string  `json:"grouping,omitempty"`
	Style     string  `json:"style,omitempty"`

	// diagram / group
	Elements []Element `json:"elements,omitempty"`
}

// Slide is one resolved slide: its background fill plus the dispatcher's
// flattened element list, plus the supplemented speaker-notes text.
type Slide struct {
	Fill     Fill      `json:"fill"`
	Elements []Element `json:"elements"`
	Notes    string    `json:"notes,omitempty"`
}

// Output is the top-level result of resolving an entire presentation.
type Output struct {
	Size   Size    `json:"size"`
	Slides []Slide `json:"slides"`
}
