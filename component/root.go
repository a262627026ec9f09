package component

import (
	"io"
	"log/slog"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/surface"
)

// A Root is the context of one rendered chart. It owns the surface tree,
// the RenderController, the mouse Dispatcher, the text Measurer and the
// Style shared by all components anchored to it.
type Root struct {
	width, height float64
	node          *surface.Node
	top           Component

	controller *RenderController
	mouse      *Mouse
	measurer   Measurer
	style      Style
	logger     *slog.Logger
}

// Option configures a Root.
type Option func(*rootConfig)

type rootConfig struct {
	policy    RenderPolicy
	scheduler func(func())
	logger    *slog.Logger
	measurer  Measurer
	style     *Style
}

// WithPolicy sets the render policy. The default is Immediate.
func WithPolicy(p RenderPolicy) Option {
	return func(c *rootConfig) { c.policy = p }
}

// WithScheduler installs the host's frame scheduler used by the
// Deferred policy: schedule must arrange for its argument to be called
// once later.
func WithScheduler(schedule func(func())) Option {
	return func(c *rootConfig) { c.scheduler = schedule }
}

// WithLogger sets the logger. The default is gridplot.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(c *rootConfig) { c.logger = l }
}

// WithMeasurer sets the text measurer. The default uses font metrics.
func WithMeasurer(m Measurer) Option {
	return func(c *rootConfig) { c.measurer = m }
}

// WithStyle sets the style.
func WithStyle(s Style) Option {
	return func(c *rootConfig) { c.style = &s }
}

// NewRoot returns a root of the given size in pixels.
func NewRoot(width, height float64, opts ...Option) (*Root, error) {
	if !(width > 0) || !(height > 0) || !gridplot.IsValidNumber(width) || !gridplot.IsValidNumber(height) {
		return nil, gridplot.Invalidf("component: invalid root size %vx%v", width, height)
	}
	cfg := rootConfig{policy: Immediate}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = gridplot.Logger()
	}
	if cfg.measurer == nil {
		cfg.measurer = defaultMeasurer
	}
	if cfg.style == nil {
		cfg.style = defaultStyle()
	}
	r := &Root{
		width:    width,
		height:   height,
		node:     surface.New("root", width, height),
		mouse:    &Mouse{},
		measurer: cfg.measurer,
		style:    *cfg.style,
		logger:   cfg.logger,
	}
	r.controller = newRenderController(cfg.policy, cfg.scheduler, cfg.logger, r.layoutTop)
	if r.style.Background != nil {
		r.node.Add(surface.Rect{Width: width, Height: height, Fill: r.style.Background})
	}
	return r, nil
}

// Node returns the root of the surface tree.
func (r *Root) Node() *surface.Node { return r.node }

// Size returns the size of r.
func (r *Root) Size() gridplot.Size { return gridplot.Size{Width: r.width, Height: r.height} }

// Controller returns the render controller.
func (r *Root) Controller() *RenderController { return r.controller }

// Mouse returns the mouse event dispatcher.
func (r *Root) Mouse() *Mouse { return r.mouse }

// Style returns the style used by components anchored to r.
func (r *Root) Style() *Style { return &r.style }

// Logger returns the logger of r.
func (r *Root) Logger() *slog.Logger { return r.logger }

// Top returns the top level component or nil.
func (r *Root) Top() Component { return r.top }

// RenderTo anchors c as top level component, replacing (and detaching)
// the previous one, and queues its layout.
func (r *Root) RenderTo(c Component) {
	if r.top != nil && r.top != c {
		r.top.Detach()
	}
	if p := c.Parent(); p != nil {
		p.Remove(c)
	}
	r.top = c
	defer r.controller.hold()()
	c.Anchor(r, r.node)
	c.Redraw()
}

// Resize changes the size of r and queues a new layout.
func (r *Root) Resize(width, height float64) error {
	if !(width > 0) || !(height > 0) || !gridplot.IsValidNumber(width) || !gridplot.IsValidNumber(height) {
		return gridplot.Invalidf("component: invalid root size %vx%v", width, height)
	}
	r.width, r.height = width, height
	r.node.Width, r.node.Height = width, height
	r.node.Clear()
	if r.style.Background != nil {
		r.node.Add(surface.Rect{Width: width, Height: height, Fill: r.style.Background})
	}
	if r.top != nil {
		r.top.Redraw()
	}
	return nil
}

// Flush processes all queued work now.
func (r *Root) Flush() { r.controller.Flush() }

// Tick processes work queued under the Deferred policy.
func (r *Root) Tick() { r.controller.Tick() }

// Destroy destroys the top level component, drops pending work and all
// mouse subscriptions.
func (r *Root) Destroy() {
	if r.top != nil {
		r.top.Destroy()
		r.top = nil
	}
	r.controller.clear()
	r.mouse.Clear()
}

// WriteSVG flushes pending work and writes the chart as SVG.
func (r *Root) WriteSVG(w io.Writer) error {
	r.Flush()
	return surface.WriteSVG(w, r.node)
}

// WritePNG flushes pending work and writes the chart as PNG.
func (r *Root) WritePNG(w io.Writer) error {
	r.Flush()
	return surface.WritePNG(w, r.node)
}

// WriteLayout flushes pending work and writes the layout outline.
func (r *Root) WriteLayout(w io.Writer) {
	r.Flush()
	surface.WriteLayout(w, r.node)
}

func (r *Root) layoutTop(c Component) {
	if c != r.top || !c.base().IsAnchored() {
		return
	}
	c.ComputeLayout(gridplot.Point{}, r.width, r.height)
}
