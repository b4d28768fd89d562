package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

// stackPNG decodes the panel images and paints them top to bottom onto one canvas.
func stackPNG(parts [][]byte, width, height int) ([]byte, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	top := 0
	for i, part := range parts {
		img, err := png.Decode(bytes.NewReader(part))
		if err != nil {
			return nil, fmt.Errorf("decode panel %d: %w", i+1, err)
		}
		b := img.Bounds()
		dst := image.Rect(0, top, b.Dx(), top+b.Dy())
		draw.Draw(canvas, dst, img, b.Min, draw.Over)
		top += b.Dy()
	}

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// stackSVG nests each panel document in an outer SVG, offset by the panels above it.
func stackSVG(parts [][]byte, heights []int, width, height int) ([]byte, error) {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)

	top := 0
	for i, part := range parts {
		doc := strings.TrimSpace(string(part))
		if strings.HasPrefix(doc, "<?xml") {
			if end := strings.Index(doc, "?>"); end >= 0 {
				doc = strings.TrimSpace(doc[end+2:])
			}
		}
		if !strings.HasPrefix(doc, "<svg") {
			return nil, fmt.Errorf("panel %d is not an svg document", i+1)
		}
		// position the nested document explicitly; without a size it would fill the parent
		fmt.Fprintf(&out, `<svg x="0" y="%d" width="%d" height="%d"`, top, width, heights[i])
		out.WriteString(doc[len("<svg"):])
		top += heights[i]
	}

	out.WriteString("</svg>")
	return out.Bytes(), nil
}
