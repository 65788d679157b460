package poster

import (
	"fmt"
	"image/color"
	"math"
)

// blendOver composites a non-premultiplied source color onto the texel at
// byte offset i using source-over, with the source alpha scaled by coverage.
func blendOver(dst []uint8, i int, src color.NRGBA, coverage float64) {
	if coverage <= 0 || src.A == 0 {
		return
	}
	if coverage > 1 {
		coverage = 1
	}
	sa := float64(src.A) / 255 * coverage
	if sa >= 1 {
		dst[i+0], dst[i+1], dst[i+2], dst[i+3] = src.R, src.G, src.B, 255
		return
	}

	da := float64(dst[i+3]) / 255
	outA := sa + da*(1-sa)
	if outA <= 0 {
		return
	}
	mix := func(sc, dc uint8) uint8 {
		v := (float64(sc)*sa + float64(dc)*da*(1-sa)) / outA
		return uint8(clamp255(v))
	}
	dst[i+0] = mix(src.R, dst[i+0])
	dst[i+1] = mix(src.G, dst[i+1])
	dst[i+2] = mix(src.B, dst[i+2])
	dst[i+3] = uint8(clamp255(outA * 255))
}

// clamp255 rounds v and clamps it to [0, 255].
func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, math.Round(v)))
}

// DrawLayer composites layer onto s with source-over, multiplying every layer
// texel's alpha by opacity. The opacity applies to this call only.
func (s *Surface) DrawLayer(layer *Surface, opacity float64) error {
	if layer.width != s.width || layer.height != s.height {
		return fmt.Errorf("%w: layer %dx%d on surface %dx%d",
			ErrInvalidDimension, layer.width, layer.height, s.width, s.height)
	}
	opacity = math.Max(0, math.Min(1, opacity))
	if opacity == 0 {
		return nil
	}
	for i := 0; i < len(s.data); i += 4 {
		if layer.data[i+3] == 0 {
			continue
		}
		src := color.NRGBA{R: layer.data[i+0], G: layer.data[i+1], B: layer.data[i+2], A: layer.data[i+3]}
		blendOver(s.data, i, src, opacity)
	}
	return nil
}
