package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/component"
	"github.com/vdobler/gridplot/data"
	"github.com/vdobler/gridplot/plot"
	"github.com/vdobler/gridplot/scale"
)

// Config describes a single chart: plots drawn on top of each other in
// one panel, surrounded by axes, a title and a legend.
type Config struct {
	Width    float64                  `yaml:"width"`
	Height   float64                  `yaml:"height"`
	Title    string                   `yaml:"title"`
	Policy   string                   `yaml:"policy"`
	Datasets map[string]DatasetConfig `yaml:"datasets"`
	Scales   map[string]ScaleConfig   `yaml:"scales"`
	Plots    []PlotConfig             `yaml:"plots"`
	Axes     []AxisConfig             `yaml:"axes"`
	Legend   *LegendConfig            `yaml:"legend"`
	Grid     bool                     `yaml:"gridlines"`

	// dir is the directory CSV paths are relative to.
	dir string
}

// DatasetConfig is either a CSV file or inline records.
type DatasetConfig struct {
	CSV     string           `yaml:"csv"`
	Records []map[string]any `yaml:"records"`
}

// ScaleConfig describes a scale. Type is one of linear (the default),
// sqrt, pow, log, modified-log, time, category, color or interpolated.
type ScaleConfig struct {
	Type     string    `yaml:"type"`
	Base     float64   `yaml:"base"`
	Exponent float64   `yaml:"exponent"`
	Domain   []any     `yaml:"domain"`
	Padding  *float64  `yaml:"padding"`
	Nice     int       `yaml:"nice"`
	Include  []float64 `yaml:"include"`
	Palette  string    `yaml:"palette"`
	ColorMap string    `yaml:"colormap"`
	Trans    string    `yaml:"trans"`
}

// PlotConfig describes one plot. Type is one of scatter, line, area, bar,
// clustered-bar, stacked-bar or stacked-area.
type PlotConfig struct {
	Type        string   `yaml:"type"`
	X           string   `yaml:"x"`
	Y           string   `yaml:"y"`
	XScale      string   `yaml:"xscale"`
	YScale      string   `yaml:"yscale"`
	Datasets    []string `yaml:"datasets"`
	Orientation string   `yaml:"orientation"`
	Baseline    float64  `yaml:"baseline"`
	Alignment   string   `yaml:"alignment"`
	Fill        string   `yaml:"fill"`
	FillScale   string   `yaml:"fillscale"`
	Animate     bool     `yaml:"animate"`
}

// AxisConfig places an axis for a scale on one side of the plots.
type AxisConfig struct {
	Scale string `yaml:"scale"`
	Side  string `yaml:"side"`
	Label string `yaml:"label"`
}

// LegendConfig shows the entries of a color scale right of the plots.
type LegendConfig struct {
	Scale      string `yaml:"scale"`
	PerRow     int    `yaml:"per_row"`
	Horizontal bool   `yaml:"horizontal"`
}

// ParseConfig decodes a YAML chart description. CSV paths are relative to
// dir.
func ParseConfig(b []byte, dir string) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrap(err, "chart: cannot parse config")
	}
	c.dir = dir
	return &c, nil
}

// LoadConfig reads and validates the YAML chart description at path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "chart")
	}
	c, err := ParseConfig(b, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return c, nil
}

var (
	plotTypes  = []string{"scatter", "line", "area", "bar", "clustered-bar", "stacked-bar", "stacked-area"}
	quantTypes = []string{"", "linear", "sqrt", "pow", "log", "modified-log", "time"}
)

func oneOf(s string, list []string) bool {
	for _, x := range list {
		if s == x {
			return true
		}
	}
	return false
}

func (c *Config) scaleType(name string) string {
	return strings.ToLower(c.Scales[name].Type)
}

// Validate checks the description for consistency without loading data.
func (c *Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) {
		return gridplot.Invalidf("chart: size %vx%v must be positive", c.Width, c.Height)
	}
	if c.Policy != "" {
		if _, err := component.ParseRenderPolicy(c.Policy); err != nil {
			return err
		}
	}
	for name, ds := range c.Datasets {
		if (ds.CSV == "") == (ds.Records == nil) {
			return gridplot.Invalidf("chart: dataset %q needs either csv or records", name)
		}
	}
	for name, s := range c.Scales {
		t := strings.ToLower(s.Type)
		switch {
		case oneOf(t, quantTypes):
			if len(s.Domain) != 0 && len(s.Domain) != 2 {
				return gridplot.Invalidf("chart: domain of scale %q needs two values", name)
			}
		case t == "category", t == "color", t == "interpolated":
		default:
			return gridplot.Invalidf("chart: scale %q has unknown type %q", name, s.Type)
		}
	}
	if len(c.Plots) == 0 {
		return gridplot.Invalidf("chart: no plots")
	}
	for i, p := range c.Plots {
		if !oneOf(strings.ToLower(p.Type), plotTypes) {
			return gridplot.Invalidf("chart: plot %d has unknown type %q", i, p.Type)
		}
		for _, sc := range []string{p.XScale, p.YScale} {
			if _, ok := c.Scales[sc]; !ok {
				return gridplot.Invalidf("chart: plot %d uses unknown scale %q", i, sc)
			}
		}
		if p.FillScale != "" {
			if _, ok := c.Scales[p.FillScale]; !ok {
				return gridplot.Invalidf("chart: plot %d uses unknown fill scale %q", i, p.FillScale)
			}
		}
		if p.Fill != "" && p.FillScale == "" {
			if _, err := parseColor(p.Fill); err != nil {
				return errors.Wrapf(err, "chart: plot %d", i)
			}
		}
		if len(p.Datasets) == 0 {
			return gridplot.Invalidf("chart: plot %d has no datasets", i)
		}
		for _, ds := range p.Datasets {
			if _, ok := c.Datasets[ds]; !ok {
				return gridplot.Invalidf("chart: plot %d uses unknown dataset %q", i, ds)
			}
		}
		if p.Orientation != "" && p.Orientation != "vertical" && p.Orientation != "horizontal" {
			return gridplot.Invalidf("chart: plot %d has unknown orientation %q", i, p.Orientation)
		}
		if p.Alignment != "" {
			if _, err := plot.ParseBarAlignment(p.Alignment); err != nil {
				return err
			}
		}
	}
	sides := make(map[component.Side]bool)
	for _, a := range c.Axes {
		side, err := component.ParseSide(a.Side)
		if err != nil {
			return err
		}
		if sides[side] {
			return gridplot.Invalidf("chart: more than one %s axis", side)
		}
		sides[side] = true
		t, ok := c.Scales[a.Scale]
		if !ok {
			return gridplot.Invalidf("chart: axis uses unknown scale %q", a.Scale)
		}
		if tt := strings.ToLower(t.Type); tt == "color" || tt == "interpolated" {
			return gridplot.Invalidf("chart: cannot draw an axis for %s scale %q", tt, a.Scale)
		}
	}
	if c.Legend != nil && c.scaleType(c.Legend.Scale) != "color" {
		return gridplot.Invalidf("chart: legend needs a color scale, got %q", c.Legend.Scale)
	}
	return nil
}

// Build loads the data, builds the component tree and renders it into a
// new root.
func (c *Config) Build(opts ...component.Option) (*component.Root, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	policy := component.Immediate
	if c.Policy != "" {
		policy, _ = component.ParseRenderPolicy(c.Policy)
	}

	datasets := make(map[string]*gridplot.Dataset, len(c.Datasets))
	for name, dc := range c.Datasets {
		ds, err := c.loadDataset(dc)
		if err != nil {
			return nil, errors.Wrapf(err, "chart: dataset %q", name)
		}
		datasets[name] = ds
	}

	scales := make(map[string]scale.Scale, len(c.Scales))
	for name, sc := range c.Scales {
		s, err := buildScale(sc)
		if err != nil {
			return nil, errors.Wrapf(err, "chart: scale %q", name)
		}
		scales[name] = s
	}

	center := component.NewGroup()
	if c.Grid {
		x, _ := scales[c.Plots[0].XScale].(*scale.Quantitative)
		y, _ := scales[c.Plots[0].YScale].(*scale.Quantitative)
		center.Append(component.NewGridlines(x, y))
	}
	for i, pc := range c.Plots {
		if err := checkColumns(pc, datasets); err != nil {
			return nil, errors.Wrapf(err, "chart: plot %d", i)
		}
		p, err := buildPlot(pc, scales, datasets)
		if err != nil {
			return nil, errors.Wrapf(err, "chart: plot %d", i)
		}
		center.Append(p)
	}

	cells := [][]component.Component{{nil, nil, nil}, {nil, center, nil}, {nil, nil, nil}}
	for _, ac := range c.Axes {
		side, _ := component.ParseSide(ac.Side)
		axis := buildAxis(scales[ac.Scale], side)
		var comp component.Component = axis
		if ac.Label != "" {
			comp = withAxisLabel(axis, side, ac.Label)
		}
		switch side {
		case component.AxisTop:
			cells[0][1] = comp
		case component.AxisBottom:
			cells[2][1] = comp
		case component.AxisLeft:
			cells[1][0] = comp
		case component.AxisRight:
			cells[1][2] = comp
		}
	}
	var top component.Component = component.NewTable(cells)
	if c.Legend != nil {
		legend := component.NewLegend(scales[c.Legend.Scale].(*scale.Color))
		if c.Legend.PerRow > 0 {
			if err := legend.SetMaxEntriesPerRow(c.Legend.PerRow); err != nil {
				return nil, err
			}
		}
		if c.Legend.Horizontal {
			top = component.NewTable([][]component.Component{{top}, {legend}})
		} else {
			top = component.NewTable([][]component.Component{{top, legend}})
		}
	}
	if c.Title != "" {
		top = component.NewTable([][]component.Component{{component.NewTitle(c.Title)}, {top}})
	}

	root, err := component.NewRoot(c.Width, c.Height, append([]component.Option{component.WithPolicy(policy)}, opts...)...)
	if err != nil {
		return nil, err
	}
	root.RenderTo(top)
	return root, nil
}

func (c *Config) loadDataset(dc DatasetConfig) (*gridplot.Dataset, error) {
	if dc.CSV != "" {
		path := dc.CSV
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.dir, path)
		}
		return data.LoadCSV(path)
	}
	return gridplot.Records(dc.Records...), nil
}

// checkColumns reports fields of pc missing in the header of a CSV
// dataset. Inline records are not checked.
func checkColumns(pc PlotConfig, datasets map[string]*gridplot.Dataset) error {
	fields := []string{pc.X, pc.Y}
	if pc.FillScale != "" && pc.Fill != "" {
		fields = append(fields, pc.Fill)
	}
	for _, name := range pc.Datasets {
		cols := data.Columns(datasets[name])
		if cols == nil {
			continue
		}
		for _, f := range fields {
			if f != "" && !oneOf(f, cols) {
				return gridplot.Invalidf("dataset %q has no column %q", name, f)
			}
		}
	}
	return nil
}

func buildScale(sc ScaleConfig) (scale.Scale, error) {
	t := strings.ToLower(sc.Type)
	switch t {
	case "category":
		c := scale.NewCategory()
		if len(sc.Domain) > 0 {
			c.SetDomain(toStrings(sc.Domain)...)
		}
		return c, nil
	case "color":
		c, err := scale.NewColor(sc.Palette)
		if err != nil {
			return nil, err
		}
		if len(sc.Domain) > 0 {
			c.SetDomain(toStrings(sc.Domain)...)
		}
		return c, nil
	case "interpolated":
		ic, err := scale.NewInterpolatedColor(sc.ColorMap, sc.Trans)
		if err != nil {
			return nil, err
		}
		if len(sc.Domain) == 2 {
			if err := ic.SetDomain(gridplot.Float(sc.Domain[0]), gridplot.Float(sc.Domain[1])); err != nil {
				return nil, err
			}
		}
		return ic, nil
	}

	var q *scale.Quantitative
	var err error
	switch t {
	case "", "linear":
		q = scale.NewLinear()
	case "sqrt":
		q = scale.NewSqrt()
	case "pow":
		q, err = scale.NewPow(orDefault(sc.Exponent, 2))
	case "log":
		q, err = scale.NewLog(orDefault(sc.Base, 10))
	case "modified-log":
		q, err = scale.NewModifiedLog(orDefault(sc.Base, 10))
	case "time":
		q = scale.NewTime()
	default:
		return nil, gridplot.Invalidf("chart: unknown scale type %q", sc.Type)
	}
	if err != nil {
		return nil, err
	}
	if sc.Padding != nil || sc.Nice > 0 || len(sc.Include) > 0 {
		d := scale.NewDomainer()
		if sc.Padding != nil {
			if err := d.Pad(*sc.Padding); err != nil {
				return nil, err
			}
		}
		if sc.Nice > 0 {
			if err := d.Nice(sc.Nice); err != nil {
				return nil, err
			}
		}
		for _, v := range sc.Include {
			d.AddIncludedValue(v)
		}
		q.SetDomainer(d)
	}
	if len(sc.Domain) == 2 {
		if err := q.SetDomain(gridplot.Float(sc.Domain[0]), gridplot.Float(sc.Domain[1])); err != nil {
			return nil, err
		}
	}
	return q, nil
}

func toStrings(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = gridplot.ToString(v)
	}
	return out
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func buildPlot(pc PlotConfig, scales map[string]scale.Scale, datasets map[string]*gridplot.Dataset) (XYPlot, error) {
	x, y := scales[pc.XScale], scales[pc.YScale]
	vertical := pc.Orientation != "horizontal"

	type attrSetter interface {
		XYPlot
		Attr(attr string, acc gridplot.Accessor, sc scale.Scale)
		AddDatasetKey(key string, ds *gridplot.Dataset) error
		Animate(enabled bool)
	}
	var p attrSetter
	var bar *plot.Bar
	switch strings.ToLower(pc.Type) {
	case "scatter":
		p = plot.NewScatter(x, y)
	case "line":
		p = plot.NewLine(x, y)
	case "area":
		p = plot.NewArea(x, y)
	case "stacked-area":
		p = plot.NewStackedArea(x, y)
	case "bar":
		b := plot.NewBar(x, y, vertical)
		p, bar = b, b
	case "clustered-bar":
		b := plot.NewClusteredBar(x, y, vertical)
		p, bar = b, &b.Bar
	case "stacked-bar":
		b := plot.NewStackedBar(x, y, vertical)
		p, bar = b, &b.Bar
	default:
		return nil, gridplot.Invalidf("chart: unknown plot type %q", pc.Type)
	}

	if pc.X != "" {
		p.Attr("x", gridplot.Field(pc.X), x)
	}
	if pc.Y != "" {
		p.Attr("y", gridplot.Field(pc.Y), y)
	}
	switch {
	case pc.FillScale != "":
		field := pc.Fill
		if field == "" {
			field = "fill"
		}
		p.Attr("fill", gridplot.Field(field), scales[pc.FillScale])
	case pc.Fill != "":
		col, err := parseColor(pc.Fill)
		if err != nil {
			return nil, err
		}
		p.Attr("fill", gridplot.Constant(col), nil)
		p.Attr("stroke", gridplot.Constant(col), nil)
	}
	if bar != nil {
		if err := bar.SetBaseline(pc.Baseline); err != nil {
			return nil, err
		}
		if pc.Alignment != "" {
			if err := bar.SetBarAlignment(pc.Alignment); err != nil {
				return nil, err
			}
		}
	}
	for _, name := range pc.Datasets {
		if err := p.AddDatasetKey(name, datasets[name]); err != nil {
			return nil, err
		}
	}
	p.Animate(pc.Animate)
	return p, nil
}

func buildAxis(s scale.Scale, side component.Side) *component.Axis {
	switch sc := s.(type) {
	case *scale.Category:
		return component.NewCategoryAxis(sc, side)
	case *scale.Quantitative:
		if sc.Transformation().Name == scale.TimeTrans.Name {
			return component.NewTimeAxis(sc, side)
		}
		return component.NewNumericAxis(sc, side)
	}
	panic(fmt.Sprintf("chart: no axis for scale %T", s))
}

// withAxisLabel puts a label outside of the axis.
func withAxisLabel(a *component.Axis, side component.Side, text string) component.Component {
	l := component.NewLabel(text)
	switch side {
	case component.AxisTop:
		return component.NewTable([][]component.Component{{l}, {a}})
	case component.AxisLeft:
		_ = l.SetOrientation(component.Left)
		return component.NewTable([][]component.Component{{l, a}})
	case component.AxisRight:
		_ = l.SetOrientation(component.Right)
		return component.NewTable([][]component.Component{{a, l}})
	}
	return component.NewTable([][]component.Component{{a}, {l}})
}

// parseColor parses "#rgb", "#rrggbb" and "#rrggbbaa".
func parseColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 || !strings.HasPrefix(s, "#") {
		return nil, gridplot.Invalidf("chart: bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, gridplot.Invalidf("chart: bad color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
