package core

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const atlasSize = 512

type TextVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// TextItem is one block of overlay text in pixel coordinates, top-left origin.
type TextItem struct {
	Text     string
	Position [2]float32
	Scale    float32
	Color    [4]float32
}

type glyph struct {
	uvMin, uvMax [2]float32
	size, off    [2]float32
	adv          float32
}

// TextRenderer rasterizes printable ASCII into a single alpha atlas.
type TextRenderer struct {
	Atlas *image.Alpha

	glyphs     map[rune]glyph
	ascent     float32
	lineHeight float32
}

// NewTextRenderer uses the embedded Go Mono face, so no font file is needed.
func NewTextRenderer(size float64) (*TextRenderer, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	tr := &TextRenderer{
		Atlas:      image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize)),
		glyphs:     make(map[rune]glyph),
		ascent:     float32(face.Metrics().Ascent.Ceil()),
		lineHeight: float32(face.Metrics().Height.Ceil()),
	}

	x, y, row := 2, 2, 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := bounds.Dx(), bounds.Dy()
		if x+w >= atlasSize {
			x, y, row = 2, y+row+4, 0
		}
		if y+h >= atlasSize {
			return nil, fmt.Errorf("glyph atlas overflow at %q", r)
		}
		draw.Draw(tr.Atlas, image.Rect(x, y, x+w, y+h), mask, maskp, draw.Src)

		tr.glyphs[r] = glyph{
			uvMin: [2]float32{float32(x) / atlasSize, float32(y) / atlasSize},
			uvMax: [2]float32{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			size:  [2]float32{float32(w), float32(h)},
			off:   [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			adv:   float32(adv) / 64,
		}
		x += w + 4
		row = max(row, h)
	}
	return tr, nil
}

// BuildVertices lays out items as two triangles per glyph in clip space.
func (tr *TextRenderer) BuildVertices(items []TextItem, screenW, screenH int) []TextVertex {
	sw, sh := float32(screenW), float32(screenH)
	if sw <= 0 || sh <= 0 {
		return nil
	}
	toClip := func(px, py float32) [2]float32 {
		return [2]float32{px/sw*2 - 1, 1 - py/sh*2}
	}

	var out []TextVertex
	for _, item := range items {
		penX := item.Position[0]
		penY := item.Position[1] + tr.ascent*item.Scale
		for _, r := range item.Text {
			if r == '\n' {
				penX = item.Position[0]
				penY += tr.lineHeight * item.Scale
				continue
			}
			g, ok := tr.glyphs[r]
			if !ok {
				continue
			}
			p0 := toClip(penX+g.off[0]*item.Scale, penY+g.off[1]*item.Scale)
			p1 := toClip(penX+(g.off[0]+g.size[0])*item.Scale, penY+(g.off[1]+g.size[1])*item.Scale)

			topL := TextVertex{Pos: p0, UV: g.uvMin, Color: item.Color}
			topR := TextVertex{Pos: [2]float32{p1[0], p0[1]}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: item.Color}
			botL := TextVertex{Pos: [2]float32{p0[0], p1[1]}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: item.Color}
			botR := TextVertex{Pos: p1, UV: g.uvMax, Color: item.Color}
			out = append(out, topL, topR, botL, topR, botR, botL)

			penX += g.adv * item.Scale
		}
	}
	return out
}

func (tr *TextRenderer) LineHeight(scale float32) float32 {
	return tr.lineHeight * scale
}
