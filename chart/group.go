package chart

import (
	"fmt"
	"math"

	"github.com/vdobler/gridplot"
)

// A Partitioner turns a continuous value into a discrete label: the
// learned range is cut into Partitions intervals of equal width.
type Partitioner struct {
	Partitions int
	Range      gridplot.Interval
}

// NewPartitioner returns a partitioner with n intervals and an unset
// range.
func NewPartitioner(n int) (*Partitioner, error) {
	if n <= 0 {
		return nil, gridplot.Invalidf("chart: number of partitions %d must be positive", n)
	}
	return &Partitioner{Partitions: n, Range: gridplot.UnsetInterval()}, nil
}

// Learn extends the range of p to cover x.
func (p *Partitioner) Learn(x ...float64) { p.Range.Update(x...) }

// Partition returns the label of the interval containing x. The maximum
// of the range belongs to the last interval.
func (p *Partitioner) Partition(x float64) string {
	min, max := p.Range.Min, p.Range.Max
	switch {
	case math.IsNaN(x):
		return "NaN"
	case !p.Range.IsSet():
		return gridplot.ToString(x)
	case x < min:
		return fmt.Sprintf("(-∞, %g)", min)
	case x > max:
		return fmt.Sprintf("(%g, ∞)", max)
	case min == max:
		return fmt.Sprintf("[%g, %g]", min, max)
	}

	w := (max - min) / float64(p.Partitions)
	k := math.Min(math.Floor((x-min)/w), float64(p.Partitions-1))
	lo, hi := min+k*w, min+(k+1)*w
	if int(k) == p.Partitions-1 {
		return fmt.Sprintf("[%g, %g]", lo, max)
	}
	return fmt.Sprintf("[%g, %g)", lo, hi)
}

// Accessor returns an accessor yielding the partition label of the value
// of acc. Non numeric values yield their string form.
func (p *Partitioner) Accessor(acc gridplot.Accessor) gridplot.Accessor {
	fn := acc.Resolve()
	return gridplot.Func(func(d any, i int, ctx gridplot.Context) any {
		v := fn(d, i, ctx)
		if f, ok := gridplot.ToFloat(v); ok {
			return p.Partition(f)
		}
		return gridplot.ToString(v)
	})
}

// LearnDataset extends the range of p to the numeric values of acc over
// ds.
func (p *Partitioner) LearnDataset(ds *gridplot.Dataset, acc gridplot.Accessor) {
	fn := acc.Resolve()
	ctx := gridplot.Context{Metadata: ds.Metadata()}
	for i, d := range ds.Data() {
		p.Learn(gridplot.Float(fn(d, i, ctx)))
	}
}

// A Split is the part of a dataset sharing one group key.
type Split struct {
	Key     string
	Dataset *gridplot.Dataset
}

// SplitDataset groups the records of ds by the string form of the value
// of by. The splits come in order of first appearance of their key and
// share the metadata of ds.
func SplitDataset(ds *gridplot.Dataset, by gridplot.Accessor) []Split {
	fn := by.Resolve()
	ctx := gridplot.Context{Metadata: ds.Metadata()}
	var keys []string
	groups := make(map[string][]any)
	for i, d := range ds.Data() {
		k := gridplot.ToString(fn(d, i, ctx))
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], d)
	}
	out := make([]Split, len(keys))
	for i, k := range keys {
		out[i] = Split{Key: k, Dataset: gridplot.NewDataset(groups[k], ds.Metadata())}
	}
	return out
}
