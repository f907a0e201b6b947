package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	"wheeltoggle/internal/mode"
)

const iconSize = 22

var (
	iconMu    sync.Mutex
	iconCache = map[string][]byte{}

	foreground = color.NRGBA{R: 0xee, G: 0xee, B: 0xec, A: 0xff}
	errorRed   = color.NRGBA{R: 0xe0, G: 0x1b, B: 0x24, A: 0xff}
	warnAmber  = color.NRGBA{R: 0xf5, G: 0xc2, B: 0x11, A: 0xff}
)

// Describe returns a short label for an icon identifier
func Describe(name string) string {
	switch name {
	case mode.IconMouse:
		return "mouse"
	case mode.IconTouchpad:
		return "touchpad"
	case mode.IconWarning:
		return "apply failed"
	default:
		return "imwheel not found"
	}
}

// Icon returns PNG bytes for an icon identifier. Unknown names get the error icon.
func Icon(name string) []byte {
	iconMu.Lock()
	defer iconMu.Unlock()

	if data, ok := iconCache[name]; ok {
		return data
	}

	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	switch name {
	case mode.IconMouse:
		drawMouse(img)
	case mode.IconTouchpad:
		drawTouchpad(img)
	case mode.IconWarning:
		drawWarning(img)
	default:
		drawError(img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	iconCache[name] = buf.Bytes()
	return iconCache[name]
}

func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func outlineRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	fillRect(img, x0, y0, x1, y0+2, c)
	fillRect(img, x0, y1-2, x1, y1, c)
	fillRect(img, x0, y0, x0+2, y1, c)
	fillRect(img, x1-2, y0, x1, y1, c)
}

// drawMouse draws a mouse body with a wheel
func drawMouse(img *image.NRGBA) {
	outlineRect(img, 6, 2, 16, 20, foreground)
	fillRect(img, 10, 5, 12, 9, foreground)
}

// drawTouchpad draws a pad with two buttons
func drawTouchpad(img *image.NRGBA) {
	outlineRect(img, 2, 3, 20, 19, foreground)
	fillRect(img, 4, 14, 20, 15, foreground)
	fillRect(img, 10, 14, 12, 19, foreground)
}

// drawError draws a red cross
func drawError(img *image.NRGBA) {
	for i := 3; i < iconSize-3; i++ {
		fillRect(img, i, i, i+2, i+2, errorRed)
		fillRect(img, iconSize-i-2, i, iconSize-i, i+2, errorRed)
	}
}

// drawWarning draws an amber exclamation mark
func drawWarning(img *image.NRGBA) {
	fillRect(img, 9, 2, 13, 14, warnAmber)
	fillRect(img, 9, 16, 13, 20, warnAmber)
}
