package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/askonen/zoomview/pkg/geometry"
	"github.com/askonen/zoomview/pkg/imgsource"
	"github.com/askonen/zoomview/pkg/layout"
	"github.com/askonen/zoomview/pkg/viewer"
)

// tickInterval is the demo's animation frame interval (~30fps).
const tickInterval = 33 * time.Millisecond

// demoCommand creates the interactive terminal demo.
func (c *CLI) demoCommand() *cobra.Command {
	var durationMS int

	cmd := &cobra.Command{
		Use:   "demo [image]...",
		Short: "Run an interactive zoom transition demo in the terminal",
		Long: `Run a terminal demo of the zoom transition. A grid of thumbnails is
shown; enter zooms the selected thumbnail out to a fullscreen aspect-fit
view, esc zooms it back. Image arguments replace the built-in samples.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if durationMS == 0 {
				durationMS = c.Config.Viewer.DurationMS
			}

			items := demoSamples()
			if len(args) > 0 {
				items = nil
				prober, err := c.newProber(cmd.Context(), false)
				if err != nil {
					return err
				}
				for _, src := range args {
					size, err := prober.NaturalSize(cmd.Context(), src)
					if err != nil {
						printWarning("skipping %s: %s", src, err)
						continue
					}
					items = append(items, demoItem{url: src, natural: size})
				}
				if len(items) == 0 {
					return fmt.Errorf("no probeable images given")
				}
			}

			model := newDemoModel(items, time.Duration(durationMS)*time.Millisecond, c.Config.Viewer.Backdrop)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&durationMS, "duration", 0, "transition duration in milliseconds (overrides config)")
	return cmd
}

// =============================================================================
// Demo Data
// =============================================================================

// demoItem is one thumbnail in the grid.
type demoItem struct {
	url     string
	natural layout.Size
}

// demoSamples returns the built-in thumbnails with synthetic dimensions,
// so the demo works without network access.
func demoSamples() []demoItem {
	return []demoItem{
		{url: "samples/panorama.jpg", natural: layout.Size{Width: 2400, Height: 800}},
		{url: "samples/portrait.jpg", natural: layout.Size{Width: 800, Height: 1200}},
		{url: "samples/square.jpg", natural: layout.Size{Width: 1000, Height: 1000}},
		{url: "samples/landscape.jpg", natural: layout.Size{Width: 1600, Height: 900}},
		{url: "samples/tall.jpg", natural: layout.Size{Width: 600, Height: 1800}},
		{url: "samples/wide.jpg", natural: layout.Size{Width: 3200, Height: 1000}},
	}
}

// =============================================================================
// Thumbnails as Live Surfaces
// =============================================================================

// thumbnail is a grid cell that reports live bounds, so the close
// animation lands on the cell's current position even after a resize.
type thumbnail struct {
	grid  *demoModel
	index int
	item  demoItem
}

func (t *thumbnail) SourceURL() string { return t.item.url }

func (t *thumbnail) BoundingBox() geometry.Rect {
	return t.grid.cellRect(t.index)
}

func (t *thumbnail) RenderedSize() (float64, float64) {
	r := t.grid.cellRect(t.index)
	return r.Width, r.Height
}

// =============================================================================
// Demo Model
// =============================================================================

type tickMsg time.Time

// demoModel is the bubbletea model driving the zoom demo.
type demoModel struct {
	machine    *viewer.Machine
	controller *viewer.Controller
	thumbs     []*thumbnail
	duration   time.Duration

	cursor    int
	width     int
	height    int
	animStart time.Time
	animFrom  geometry.Rect
}

func newDemoModel(items []demoItem, duration time.Duration, backdrop string) *demoModel {
	m := &demoModel{
		duration: duration,
		machine: viewer.New(
			viewer.WithDuration(duration),
			viewer.WithBackdropColor(backdrop),
		),
		controller: viewer.NewController(),
	}
	m.machine.Attach(m.controller)
	for i, item := range items {
		m.thumbs = append(m.thumbs, &thumbnail{grid: m, index: i, item: item})
	}
	return m
}

func (m *demoModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.machine.SetViewport(layout.Size{Width: float64(msg.Width), Height: float64(msg.Height)})

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		st := m.machine.State()
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			if !st.Visible && m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if !st.Visible && m.cursor < len(m.thumbs)-1 {
				m.cursor++
			}
		case "enter":
			if !st.Visible {
				thumb := m.thumbs[m.cursor]
				m.animStart = time.Now()
				m.animFrom = m.cellRect(m.cursor)
				m.controller.OpenViewFromElement(imgsource.FromElement(thumb), thumb)
				m.machine.SetNaturalSize(thumb.item.natural)
			}
		case "esc":
			if st.Visible && !st.Animating() {
				m.animStart = time.Now()
				m.controller.CloseView()
			}
		}
	}
	return m, nil
}

// =============================================================================
// Grid Geometry
// =============================================================================

const (
	cellWidth  = 14
	cellHeight = 5
	cellGap    = 2
)

// cellRect returns the terminal-cell rectangle of thumbnail i.
func (m *demoModel) cellRect(i int) geometry.Rect {
	perRow := (m.width - cellGap) / (cellWidth + cellGap)
	if perRow < 1 {
		perRow = 1
	}
	row := i / perRow
	col := i % perRow
	return geometry.Rect{
		X:      float64(cellGap + col*(cellWidth+cellGap)),
		Y:      float64(2 + row*(cellHeight+1)),
		Width:  cellWidth,
		Height: cellHeight,
	}
}

// =============================================================================
// View
// =============================================================================

func (m *demoModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	st := m.machine.State()
	if st.Visible {
		return m.viewOverlay(st)
	}
	return m.viewGrid()
}

func (m *demoModel) viewGrid() string {
	canvas := newCanvas(m.width, m.height)
	for i, thumb := range m.thumbs {
		r := m.cellRect(i)
		canvas.box(r, i == m.cursor)
		canvas.label(r, trimLabel(thumb.item.url, cellWidth-2))
	}
	canvas.status("←/→ select  ⏎ zoom in  q quit")
	return canvas.render()
}

// viewOverlay paints the animated fullscreen view. The terminal has no
// declarative transitions, so the frame's start and end rectangles are
// interpolated here with the same easing a browser would apply.
func (m *demoModel) viewOverlay(st viewer.State) string {
	frame := m.machine.Frame()

	full := geometry.Rect{Width: float64(m.width), Height: float64(m.height)}
	image := imageRect(full, m.machine.NaturalSize())

	var r geometry.Rect
	switch {
	case st.Opening && !st.Updating:
		r = layout.Interpolate(m.animFrom, image, elapsedFraction(m.animStart, m.duration))
	case st.Closing:
		var to geometry.Rect
		if st.Target != nil {
			to = st.Target.Bounds()
		}
		r = layout.Interpolate(image, to, elapsedFraction(m.animStart, m.duration))
	case st.Updating:
		if st.Target != nil {
			r = st.Target.Bounds()
		}
	default:
		r = image
	}

	canvas := newCanvas(m.width, m.height)
	if frame.Backdrop.Opacity > 0 {
		canvas.fill('·')
	}
	canvas.solid(r)
	if st.Source != nil {
		canvas.status(trimLabel(st.Source.URL(), m.width-20) + "  esc zoom out  q quit")
	}
	return canvas.render()
}

// imageRect centers the aspect-fit image inside the viewport, mirroring
// the fit the frame descriptor expresses as padding and fill axes.
func imageRect(viewport geometry.Rect, natural layout.Size) geometry.Rect {
	vp := layout.Size{Width: viewport.Width, Height: viewport.Height}
	fit := layout.FitImage(vp, natural)

	if fit.Mode == layout.ModeVertical {
		// Fill width, letterbox vertically.
		h := viewport.Width * layout.AspectRatio(natural)
		if h > viewport.Height {
			h = viewport.Height
		}
		return geometry.Rect{
			X:      0,
			Y:      (viewport.Height - h) / 2,
			Width:  viewport.Width,
			Height: h,
		}
	}
	// Fill height, pillarbox horizontally.
	return geometry.Rect{
		X:      fit.PadX,
		Y:      0,
		Width:  viewport.Width - 2*fit.PadX,
		Height: viewport.Height,
	}
}

func elapsedFraction(start time.Time, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return float64(time.Since(start)) / float64(duration)
}

func trimLabel(s string, width int) string {
	if width <= 1 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	return "…" + s[len(s)-width+1:]
}

// =============================================================================
// Canvas
// =============================================================================

var (
	demoImageStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	demoStatusStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// canvas is a rune grid painted row by row. Terminal cells are the demo's
// pixels; rectangles are clipped to the grid.
type canvas struct {
	width  int
	height int
	cells  [][]rune
	footer string
}

func newCanvas(width, height int) *canvas {
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = make([]rune, width)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &canvas{width: width, height: height, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = r
}

func (c *canvas) fill(r rune) {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = r
		}
	}
}

// box draws a rectangle outline, doubled for the selected cell.
func (c *canvas) box(r geometry.Rect, selected bool) {
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := int(r.X+r.Width)-1, int(r.Y+r.Height)-1
	h, v := '─', '│'
	if selected {
		h, v = '═', '║'
	}
	for x := x0; x <= x1; x++ {
		c.set(x, y0, h)
		c.set(x, y1, h)
	}
	for y := y0; y <= y1; y++ {
		c.set(x0, y, v)
		c.set(x1, y, v)
	}
}

// solid fills a rectangle with block characters.
func (c *canvas) solid(r geometry.Rect) {
	for y := int(r.Y); y < int(r.Y+r.Height); y++ {
		for x := int(r.X); x < int(r.X+r.Width); x++ {
			c.set(x, y, '█')
		}
	}
}

// label writes text inside a rectangle's second row.
func (c *canvas) label(r geometry.Rect, text string) {
	y := int(r.Y) + 2
	x := int(r.X) + 1
	for i, ch := range text {
		c.set(x+i, y, ch)
	}
}

func (c *canvas) status(s string) {
	c.footer = s
}

func (c *canvas) render() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y == c.height-1 && c.footer != "" {
			b.WriteString(demoStatusStyle.Render(trimLabel(c.footer, c.width)))
			break
		}
		b.WriteString(demoImageStyle.Render(string(row)))
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
