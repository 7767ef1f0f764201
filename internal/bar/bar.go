// Package bar renders the per-monitor status bar: tag cells, layout
// symbol, focused title and right-aligned status blocks, drawn
// double-buffered into an offscreen pixmap and blitted once with
// CopyArea. The offscreen surface is a Go image.RGBA rasterized with
// golang.org/x/image/font + golang/freetype and pushed to the X pixmap
// with PutImage, so text shaping stays on the Go side and only finished
// frames cross the wire.
package bar

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/xsoder/oxwm/internal/geom"
	"github.com/xsoder/oxwm/internal/x11"
)

// ColorScheme is one of the three configured schemes: normal, occupied,
// selected tag cell colors.
type ColorScheme struct {
	FG, BG uint32
}

// Config is the settled bar configuration handed down from
// internal/config.
type Config struct {
	Font            *Font
	SchemeNormal    ColorScheme
	SchemeOccupied  ColorScheme
	SchemeSelected  ColorScheme
	Blocks          []*Block
	Degraded        bool // config failed to parse; show a persistent badge
}

// Bar is one monitor's bar window plus its offscreen pixmap.
type Bar struct {
	conn   *x11.Conn
	cfg    *Config
	win    xproto.Window
	pixmap xproto.Pixmap
	gc     xproto.Gcontext
	width  uint32
	height uint32

	img *image.RGBA // mirrors the pixmap contents for text rasterization
}

// New creates the bar window for a monitor spanning the full monitor
// width, sized by the configured font's metrics.
func New(conn *x11.Conn, cfg *Config, screenBounds geom.Rect) (*Bar, error) {
	height := cfg.Font.Height()
	b := &Bar{conn: conn, cfg: cfg, width: screenBounds.W, height: height}

	win, err := xproto.NewWindowId(conn.X)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn.X, conn.Screen.RootDepth, win, conn.Root,
		int16(screenBounds.X), int16(screenBounds.Y), uint16(b.width), uint16(height), 0,
		xproto.WindowClassInputOutput, conn.Screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{1, xproto.EventMaskExposure}).Check()
	if err != nil {
		return nil, err
	}
	b.win = win
	if err := b.allocatePixmap(); err != nil {
		return nil, err
	}
	if err := conn.MapWindow(win); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bar) allocatePixmap() error {
	if b.pixmap != 0 {
		xproto.FreePixmap(b.conn.X, b.pixmap)
	}
	if b.gc != 0 {
		xproto.FreeGC(b.conn.X, b.gc)
	}
	pid, err := xproto.NewPixmapId(b.conn.X)
	if err != nil {
		return err
	}
	if err := xproto.CreatePixmapChecked(b.conn.X, b.conn.Screen.RootDepth, pid, xproto.Drawable(b.win),
		uint16(b.width), uint16(b.height)).Check(); err != nil {
		return err
	}
	b.pixmap = pid

	gid, err := xproto.NewGcontextId(b.conn.X)
	if err != nil {
		return err
	}
	if err := xproto.CreateGCChecked(b.conn.X, gid, xproto.Drawable(b.pixmap), 0, nil).Check(); err != nil {
		return err
	}
	b.gc = gid
	b.img = image.NewRGBA(image.Rect(0, 0, int(b.width), int(b.height)))
	return nil
}

// Resize reallocates the pixmap only when the bar's size actually
// changed, e.g. after a RandR-driven monitor width change.
func (b *Bar) Resize(screenBounds geom.Rect) error {
	newHeight := b.cfg.Font.Height()
	if screenBounds.W == b.width && newHeight == b.height {
		return xproto.ConfigureWindowChecked(b.conn.X, b.win,
			xproto.ConfigWindowX|xproto.ConfigWindowY,
			[]uint32{uint32(screenBounds.X), uint32(screenBounds.Y)}).Check()
	}
	b.width = screenBounds.W
	b.height = newHeight
	if err := xproto.ConfigureWindowChecked(b.conn.X, b.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(screenBounds.X), uint32(screenBounds.Y), b.width, b.height}).Check(); err != nil {
		return err
	}
	return b.allocatePixmap()
}

// Height reports the bar's current height, which internal/monitor uses to
// compute the work area.
func (b *Bar) Height() uint32 { return b.height }

// TagCell is one rendered tag cell's display state.
type TagCell struct {
	Name     string
	Occupied bool
	Selected bool
}

// DrawState is everything the bar needs to paint one frame.
type DrawState struct {
	Tags         []TagCell
	LayoutSymbol string
	Title        string
}

// Draw renders the full bar content onto the offscreen pixmap, then
// blits it to the window in a single CopyArea. The double-buffering is
// what keeps partial updates from flickering.
func (b *Bar) Draw(state DrawState) error {
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(rgbaFromPixel(b.cfg.SchemeNormal.BG)), image.Point{}, draw.Src)

	face := b.cfg.Font.Face()
	x := 4
	for _, t := range state.Tags {
		scheme := b.cfg.SchemeNormal
		if t.Selected {
			scheme = b.cfg.SchemeSelected
		} else if t.Occupied {
			scheme = b.cfg.SchemeOccupied
		}
		w := b.cfg.Font.MeasureString(t.Name) + 16
		draw.Draw(b.img, image.Rect(x, 0, x+w, int(b.height)), image.NewUniform(rgbaFromPixel(scheme.BG)), image.Point{}, draw.Src)
		drawString(b.img, face, x+8, int(b.height)/2+4, t.Name, rgbaFromPixel(scheme.FG))
		x += w
	}

	symW := b.cfg.Font.MeasureString(state.LayoutSymbol) + 16
	drawString(b.img, face, x+8, int(b.height)/2+4, state.LayoutSymbol, rgbaFromPixel(b.cfg.SchemeNormal.FG))
	x += symW

	if state.Title != "" {
		drawString(b.img, face, x+8, int(b.height)/2+4, state.Title, rgbaFromPixel(b.cfg.SchemeNormal.FG))
	}

	if b.cfg.Degraded {
		b.drawDegradedBadge(face)
	}

	b.drawBlocksRight(face)

	return b.blit()
}

func (b *Bar) drawDegradedBadge(face font.Face) {
	label := "CFG!"
	w := b.cfg.Font.MeasureString(label) + 12
	x0 := int(b.width) - w
	draw.Draw(b.img, image.Rect(x0, 0, int(b.width), int(b.height)), image.NewUniform(color.RGBA{200, 40, 40, 255}), image.Point{}, draw.Src)
	drawString(b.img, face, x0+6, int(b.height)/2+4, label, color.RGBA{255, 255, 255, 255})
}

// drawBlocksRight lays out the status blocks right-to-left from the
// bar's right edge.
func (b *Bar) drawBlocksRight(face font.Face) {
	x := int(b.width) - 4
	if b.cfg.Degraded {
		x -= b.cfg.Font.MeasureString("CFG!") + 16
	}
	for i := len(b.cfg.Blocks) - 1; i >= 0; i-- {
		blk := b.cfg.Blocks[i]
		text := blk.Rendered()
		if text == "" {
			continue
		}
		w := b.cfg.Font.MeasureString(text)
		x -= w + 8
		drawString(b.img, face, x, int(b.height)/2+4, text, rgbaFromPixel(blk.Color))
		if blk.Underline {
			draw.Draw(b.img, image.Rect(x, int(b.height)-2, x+w, int(b.height)), image.NewUniform(rgbaFromPixel(blk.Color)), image.Point{}, draw.Src)
		}
	}
}

func drawString(dst *image.RGBA, face font.Face, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func rgbaFromPixel(pixel uint32) color.RGBA {
	return color.RGBA{
		R: uint8(pixel >> 16),
		G: uint8(pixel >> 8),
		B: uint8(pixel),
		A: 255,
	}
}

// blit uploads the rasterized image to the pixmap via PutImage and then
// CopyAreas it to the window in one request.
func (b *Bar) blit() error {
	data := rgbaToBGRX(b.img)
	const maxChunk = 200000 // stay under the X11 request length limit
	stride := int(b.width) * 4
	rowsPerChunk := maxChunk / stride
	if rowsPerChunk < 1 {
		rowsPerChunk = 1
	}
	for y := 0; y < int(b.height); y += rowsPerChunk {
		rows := rowsPerChunk
		if y+rows > int(b.height) {
			rows = int(b.height) - y
		}
		chunk := data[y*stride : (y+rows)*stride]
		if err := xproto.PutImageChecked(b.conn.X, xproto.ImageFormatZPixmap, xproto.Drawable(b.pixmap), b.gc,
			uint16(b.width), uint16(rows), 0, int16(y), 0, b.conn.Screen.RootDepth,
			chunk).Check(); err != nil {
			return err
		}
	}
	return xproto.CopyAreaChecked(b.conn.X, xproto.Drawable(b.pixmap), xproto.Drawable(b.win), b.gc,
		0, 0, 0, 0, uint16(b.width), uint16(b.height)).Check()
}

// rgbaToBGRX converts the Go image.RGBA buffer to the 32bpp BGRX byte
// order X's ZPixmap format expects on a little-endian server.
func rgbaToBGRX(img *image.RGBA) []byte {
	n := len(img.Pix) / 4
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		r := img.Pix[i*4+0]
		g := img.Pix[i*4+1]
		bl := img.Pix[i*4+2]
		out[i*4+0] = bl
		out[i*4+1] = g
		out[i*4+2] = r
		out[i*4+3] = 0
	}
	return out
}

// Destroy frees the pixmap, GC and window.
func (b *Bar) Destroy() {
	if b.pixmap != 0 {
		xproto.FreePixmap(b.conn.X, b.pixmap)
	}
	if b.gc != 0 {
		xproto.FreeGC(b.conn.X, b.gc)
	}
	if b.win != 0 {
		xproto.DestroyWindow(b.conn.X, b.win)
	}
}

// Window exposes the bar's window id so the WM can exclude it from
// managed-window bookkeeping; the bar window is never a managed client.
func (b *Bar) Window() xproto.Window { return b.win }

