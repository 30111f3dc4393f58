// Package render gera as saídas visuais da API: a imagem Open Graph e os
// gráficos de tráfego.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/utils"
)

const (
	OGWidth  = 1200
	OGHeight = 630

	DefaultOGTitle = "AI SEO Analyzer"
	ogSubtitle     = "Free AI-powered SEO analysis tool"
	ogCallToAction = "Analyze your website now"

	titleScale    = 6
	subtitleScale = 3
	ctaScale      = 3
	maxTitleLines = 3
	ogMargin      = 60
)

var (
	ogBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ogTitleColor = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	ogMutedColor = color.RGBA{R: 75, G: 85, B: 99, A: 255}
	ogAccent     = color.RGBA{R: 220, G: 38, B: 38, A: 255}
	ogCTAText    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// OGImage escreve o card 1200x630 em PNG
func OGImage(w io.Writer, title string) error {
	// a fonte bitmap só cobre ASCII
	title = strings.TrimSpace(utils.RemoveAccents(title))
	if title == "" {
		title = DefaultOGTitle
	}

	img := image.NewRGBA(image.Rect(0, 0, OGWidth, OGHeight))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(ogBackground), image.Point{}, xdraw.Src)

	// faixa superior
	xdraw.Draw(img, image.Rect(0, 0, OGWidth, 16), image.NewUniform(ogAccent), image.Point{}, xdraw.Src)

	face := basicfont.Face7x13
	lineHeight := face.Height * titleScale
	maxChars := (OGWidth - 2*ogMargin) / (face.Advance * titleScale)

	y := 110
	for _, line := range wrapText(title, maxChars, maxTitleLines) {
		drawScaledText(img, line, ogMargin, y, titleScale, ogTitleColor)
		y += lineHeight + 12
	}

	drawScaledText(img, ogSubtitle, ogMargin, y+20, subtitleScale, ogMutedColor)

	ctaWidth := len(ogCallToAction)*face.Advance*ctaScale + 80
	ctaRect := image.Rect(ogMargin, OGHeight-170, ogMargin+ctaWidth, OGHeight-80)
	xdraw.Draw(img, ctaRect, image.NewUniform(ogAccent), image.Point{}, xdraw.Src)
	drawScaledText(img, ogCallToAction, ogMargin+40, ctaRect.Min.Y+(ctaRect.Dy()-face.Height*ctaScale)/2, ctaScale, ogCTAText)

	return png.Encode(w, img)
}

// drawScaledText desenha com a fonte bitmap em uma tela pequena e amplia
// por scale. (x, y) é o canto superior esquerdo do texto.
func drawScaledText(dst *image.RGBA, text string, x, y, scale int, c color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	if width == 0 {
		return
	}

	src := image.NewRGBA(image.Rect(0, 0, width, face.Height))
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	target := image.Rect(x, y, x+width*scale, y+face.Height*scale)
	xdraw.NearestNeighbor.Scale(dst, target, src, src.Bounds(), xdraw.Over, nil)
}

// wrapText quebra o texto em linhas de até maxChars, sem cortar palavras
// quando possível. Linhas além de maxLines são descartadas com reticências.
func wrapText(text string, maxChars, maxLines int) []string {
	if maxChars <= 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		for len(word) > maxChars {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:maxChars])
			word = word[maxChars:]
		}

		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxChars:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		if len(last)+3 > maxChars {
			last = last[:max(0, maxChars-3)]
		}
		lines[maxLines-1] = last + "..."
	}
	return lines
}
