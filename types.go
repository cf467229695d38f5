package pptxtojson

import "github.com/VitaminC1989/pptxtojson-go/internal/model"

// The public output schema is a thin re-export of internal/model's types
// (spec.md §3's Data Model / §6's Output schema), so callers outside this
// module never need to import an internal package to use Process's
// result.
type (
	Output       = model.Output
	Size         = model.Size
	Slide        = model.Slide
	Fill         = model.Fill
	FillType     = model.FillType
	Gradient     = model.Gradient
	GradientStop = model.GradientStop
	Element      = model.Element
	ElementType  = model.ElementType
	TableCell    = model.TableCell
	Border       = model.Border
	Shadow       = model.Shadow
)

const (
	FillColor    = model.FillColor
	FillGradient = model.FillGradient
	FillImage    = model.FillImage

	TypeShape   = model.TypeShape
	TypeText    = model.TypeText
	TypeImage   = model.TypeImage
	TypeVideo   = model.TypeVideo
	TypeAudio   = model.TypeAudio
	TypeTable   = model.TypeTable
	TypeChart   = model.TypeChart
	TypeDiagram = model.TypeDiagram
	TypeGroup   = model.TypeGroup
)
