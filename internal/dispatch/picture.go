package dispatch

import (
	"github.com/VitaminC1989/pptxtojson-go/internal/fillresolve"
	"github.com/VitaminC1989/pptxtojson-go/internal/geometry"
	"github.com/VitaminC1989/pptxtojson-go/internal/model"
	"github.com/VitaminC1989/pptxtojson-go/internal/xmlutil"
)

// buildPicture resolves a p:pic node. Its nvPicPr/nvPr may carry an
// a:videoFile or a:audioFile extension link alongside the usual blipFill
// thumbnail/poster image — when present, those take priority over the
// plain image classification (spec §4.7's "image, video, or audio").
func buildPicture(pic *xmlutil.Node, c Context) (model.Element, bool) {
	spPr := xmlutil.FirstChild(pic, "spPr")
	xfrm := xmlutil.FirstChild(spPr, "xfrm")
	rect := geometry.Resolve(xfrm)

	el := model.Element{
		Left: rect.Left, Top: rect.Top, Width: rect.Width, Height: rect.Height,
		Rotate: rect.Rotate, IsFlipH: rect.FlipH, IsFlipV: rect.FlipV,
	}
	if nvPicPr := xmlutil.FirstChild(pic, "nvPicPr"); nvPicPr != nil {
		if cNvPr := xmlutil.FirstChild(nvPicPr, "cNvPr"); cNvPr != nil {
			el.Name = xmlutil.Attr(cNvPr, "name")
		}
	}

	blipFill := xmlutil.FirstChild(pic, "blipFill")
	src, hasSrc := fillresolve.ResolveImageFill(blipFill, c.FetchImage)

	if rID, ok := mediaLink(pic, "videoFile"); ok {
		el.Type = model.TypeVideo
		populateMedia(&el, rID, c)
		return el, true
	}
	if rID, ok := mediaLink(pic, "audioFile"); ok {
		el.Type = model.TypeAudio
		populateMedia(&el, rID, c)
		return el, true
	}

	el.Type = model.TypeImage
	if hasSrc {
		el.Src = src
	}
	// A dangling or unsupported blip still keeps the element's box (spec
	// §7's reference-dangling / media-skipped recovery) rather than being
	// dropped from the slide entirely.
	return el, true
}

// populateMedia resolves a videoFile/audioFile relationship into el.Src
// (an externally-linked URL, per spec §3's "blob or src" contract) or
// el.Blob (a fetched/embedded part's data URL). A relationship explicitly
// marked TargetMode="External", or one whose target is recognizably a
// direct video URL even without that marker (some authoring tools omit
// it), resolves to Src without attempting an archive read.
func populateMedia(el *model.Element, rID string, c Context) {
	if c.ResolveMedia == nil {
		return
	}
	target, external, ok := c.ResolveMedia(rID)
	if !ok {
		return
	}
	if external || (el.Type == model.TypeVideo && xmlutil.IsVideoURL(target)) {
		el.Src = target
		return
	}
	if url, found := c.FetchImage(rID); found {
		el.Blob = url
	}
}

// mediaLink finds an a:videoFile or a:audioFile extension under
// nvPicPr/nvPr/extLst and returns its r:link relationship id.
func mediaLink(pic *xmlutil.Node, tag string) (string, bool) {
	nvPicPr := xmlutil.FirstChild(pic, "nvPicPr")
	nvPr := xmlutil.FirstChild(nvPicPr, "nvPr")
	extLst := xmlutil.FirstChild(nvPr, "extLst")
	for _, ext := range xmlutil.Children(extLst, "ext") {
		if media := xmlutil.FirstChild(ext, tag); media != nil {
			if link := xmlutil.Attr(media, "link"); link != "" {
				return link, true
			}
		}
	}
	return "", false
}
