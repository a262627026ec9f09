// Package gridplot is a declarative charting library.
//
// It uses gonum.org/v1/plot for ticks, fonts and the final drawing.
//
// Datasets, Accessors and Projections
//
// Data enters a chart as a Dataset: an ordered list of arbitrary records.
// A plot binds a Dataset to visual attributes (x, y, fill, width, ...)
// through projections. A projection combines an Accessor which extracts a
// raw value from a record with an optional scale which maps that raw value
// to a pixel position or a color. Accessors come in three forms:
//   - Field("name")  reads a map key or struct field
//   - Func(f)        computes the value
//   - Constant(v)    yields the same value for every record
//
// Scales
//
// Scales live in package scale. A scale merges the extents of every plot
// bound to it into one domain: included values are added, the domain is
// padded in the scale's visual space and optionally extended to nice round
// values. Scales notify their subscribers whenever the domain changes by
// value.
//
// Components and Layout
//
// Package component holds the layout engine. Components form a tree:
// Tables arrange children in weighted rows and columns, Groups overlay
// them. A Root owns the surface, the render controller which batches
// layout and render requests, and the event dispatcher.
//
// Plots
//
// Package plot provides Scatter, Line, Area, Bar, ClusteredBar and the
// stacked StackedBar and StackedArea plots.
package gridplot
