package chart

import (
	"bytes"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdobler/gridplot"
	"github.com/vdobler/gridplot/component"
	"github.com/vdobler/gridplot/plot"
)

var testOptions = []component.Option{
	component.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	component.WithMeasurer(component.FixedMeasurer{CharWidth: 6, LineHeight: 10}),
}

func TestPartition(t *testing.T) {
	p, err := NewPartitioner(4)
	require.NoError(t, err)
	assert.Equal(t, "3", p.Partition(3), "unset range")

	p.Learn(0, 8)
	for x, want := range map[float64]string{
		0:  "[0, 2)",
		3:  "[2, 4)",
		6:  "[6, 8]",
		8:  "[6, 8]",
		-1: "(-∞, 0)",
		9:  "(8, ∞)",
	} {
		assert.Equal(t, want, p.Partition(x), "x=%g", x)
	}

	_, err = NewPartitioner(0)
	assert.ErrorIs(t, err, gridplot.ErrInvalidConfig)
}

func TestPartitionAccessor(t *testing.T) {
	ds := gridplot.Records(
		map[string]any{"v": 1.0},
		map[string]any{"v": 5.0},
		map[string]any{"v": "n/a"},
	)
	p, err := NewPartitioner(2)
	require.NoError(t, err)
	p.LearnDataset(ds, gridplot.Field("v"))
	assert.Equal(t, gridplot.Interval{Min: 1, Max: 5}, p.Range)

	fn := p.Accessor(gridplot.Field("v")).Resolve()
	var got []string
	for i, d := range ds.Data() {
		got = append(got, gridplot.ToString(fn(d, i, gridplot.Context{})))
	}
	assert.Equal(t, []string{"[1, 3)", "[3, 5]", "n/a"}, got)
}

func TestSplitDataset(t *testing.T) {
	ds := gridplot.NewDataset([]any{
		map[string]any{"g": "b", "v": 1},
		map[string]any{"g": "a", "v": 2},
		map[string]any{"g": "b", "v": 3},
	}, "meta")
	splits := SplitDataset(ds, gridplot.Field("g"))
	require.Len(t, splits, 2)
	assert.Equal(t, "b", splits[0].Key)
	assert.Equal(t, 2, splits[0].Dataset.Len())
	assert.Equal(t, "a", splits[1].Key)
	assert.Equal(t, "meta", splits[1].Dataset.Metadata())
}

func TestFacetScales(t *testing.T) {
	_, err := NewFacet(0, 2, false, false, nil)
	assert.ErrorIs(t, err, gridplot.ErrInvalidConfig)

	f, err := NewFacet(2, 3, false, true, nil)
	require.NoError(t, err)
	assert.Same(t, f.XScale(0), f.XScale(2))
	assert.NotSame(t, f.YScale(0), f.YScale(1))

	require.NoError(t, f.Add(1, 0, plot.NewLine(f.XScale(0), f.YScale(1))))
	assert.Error(t, f.Add(0, 0, plot.NewLine(f.XScale(0), f.YScale(1))), "wrong y scale")
	assert.Error(t, f.Add(2, 0, plot.NewLine(f.XScale(0), f.YScale(1))), "outside")
	assert.Error(t, f.SetColumnLabel(3, "x"))
	assert.Equal(t, "Facet(2x3)", f.String())
}

func TestFacetLayout(t *testing.T) {
	f, err := NewFacet(2, 2, false, false, nil)
	require.NoError(t, err)
	line := plot.NewLine(f.XScale(1), f.YScale(0))
	line.AddDataset(gridplot.Records(
		map[string]any{"x": 0.0, "y": 1.0},
		map[string]any{"x": 10.0, "y": 3.0},
	))
	require.NoError(t, f.Add(0, 1, line))
	require.NoError(t, f.SetColumnLabel(0, "left"))
	require.NoError(t, f.SetRowLabel(1, "bottom"))
	f.SetTitle("Facets")

	root, err := component.NewRoot(400, 300, testOptions...)
	require.NoError(t, err)
	root.RenderTo(f.Table())
	root.Flush()

	p00, p01, p10 := f.Panel(0, 0), f.Panel(0, 1), f.Panel(1, 0)
	assert.Greater(t, p00.Width(), 0.0)
	assert.InDelta(t, p00.Width(), p01.Width(), 1e-9)
	assert.InDelta(t, p00.Height(), p10.Height(), 1e-9)
	assert.Less(t, p00.Origin().X, p01.Origin().X)
	assert.Less(t, p00.Origin().Y, p10.Origin().Y)
	assert.Len(t, p01.Components(), 3)

	lo, hi := f.YScale(1).Domain()
	assert.LessOrEqual(t, lo, 1.0)
	assert.GreaterOrEqual(t, hi, 3.0)
}

const barChart = `
width: 400
height: 300
title: Sales
datasets:
  sales:
    records:
      - {region: north, amount: 3, kind: a}
      - {region: south, amount: 5, kind: b}
scales:
  x: {type: category}
  y: {type: linear, padding: 0.1, include: [0]}
  c: {type: color}
plots:
  - type: bar
    x: region
    y: amount
    xscale: x
    yscale: y
    datasets: [sales]
    fill: kind
    fillscale: c
axes:
  - {scale: x, side: bottom}
  - {scale: y, side: left, label: Amount}
legend: {scale: c}
gridlines: true
`

func TestBuild(t *testing.T) {
	c, err := ParseConfig([]byte(barChart), "")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	root, err := c.Build(testOptions...)
	require.NoError(t, err)
	var svg bytes.Buffer
	require.NoError(t, root.WriteSVG(&svg))
	assert.Contains(t, svg.String(), "<svg")

	var layout strings.Builder
	root.WriteLayout(&layout)
	assert.NotEmpty(t, layout.String())
}

func TestLoadConfigCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "points.csv"), []byte("t,v\n1,2\n2,4\n3,3\n"), 0o644))
	cfg := `
width: 200
height: 100
datasets:
  pts: {csv: points.csv}
scales:
  x: {}
  y: {type: sqrt, nice: 5}
plots:
  - {type: line, x: t, y: v, xscale: x, yscale: y, datasets: [pts], fill: "#f00"}
axes:
  - {scale: x, side: bottom}
`
	path := filepath.Join(dir, "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	root, err := c.Build(testOptions...)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, root.WriteSVG(&buf))

	c.Plots[0].Y = "value"
	_, err = c.Build(testOptions...)
	assert.ErrorIs(t, err, gridplot.ErrInvalidConfig)
	assert.Contains(t, err.Error(), `no column "value"`)
}

func TestValidate(t *testing.T) {
	for i, tc := range []struct {
		edit func(c *Config)
		want string
	}{
		{func(c *Config) { c.Width = 0 }, "size"},
		{func(c *Config) { c.Policy = "eager" }, "policy"},
		{func(c *Config) { c.Plots[0].Type = "pie" }, "unknown type"},
		{func(c *Config) { c.Plots[0].YScale = "z" }, "unknown scale"},
		{func(c *Config) { c.Plots[0].Datasets = nil }, "no datasets"},
		{func(c *Config) { c.Plots[0].Datasets = []string{"other"} }, "unknown dataset"},
		{func(c *Config) { c.Plots[0].FillScale = ""; c.Plots[0].Fill = "red" }, "bad color"},
		{func(c *Config) { c.Plots[0].Alignment = "middle" }, "alignment"},
		{func(c *Config) { c.Legend.Scale = "x" }, "legend"},
		{func(c *Config) { c.Axes = append(c.Axes, AxisConfig{Scale: "y", Side: "bottom"}) }, "more than one"},
		{func(c *Config) { c.Axes[0].Scale = "c" }, "cannot draw an axis"},
		{func(c *Config) { c.Scales["y"] = ScaleConfig{Type: "cubic"} }, "unknown type"},
	} {
		c, err := ParseConfig([]byte(barChart), "")
		require.NoError(t, err)
		tc.edit(c)
		err = c.Validate()
		if err == nil {
			t.Errorf("%d: expected error containing %q", i, tc.want)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%d: got error %q, want %q", i, err, tc.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#0f8")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0, G: 0xff, B: 0x88, A: 0xff}, c)

	c, err = parseColor("#10203040")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, c)

	for _, s := range []string{"", "red", "#12", "#zzzzzz", "0f8"} {
		_, err := parseColor(s)
		assert.Error(t, err, s)
	}
}
