package gridplot

import (
	"math"
	"strconv"
	"testing"
)

var nan = math.NaN()

var intervalUpdateTests = []struct {
	old  Interval
	x    float64
	want Interval
}{
	{Interval{3, 6}, 4, Interval{3, 6}},
	{Interval{3, 6}, 2, Interval{2, 6}},
	{Interval{3, 6}, 7, Interval{3, 7}},
	{Interval{nan, nan}, nan, Interval{nan, nan}},
	{Interval{nan, nan}, 5, Interval{5, 5}},
	{Interval{5, 5}, nan, Interval{5, 5}},
	{Interval{5, 5}, math.Inf(1), Interval{5, 5}},
	{Interval{nan, nan}, math.Inf(-1), Interval{nan, nan}},
}

func TestIntervalUpdate(t *testing.T) {
	for i, tc := range intervalUpdateTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got := tc.old
			got.Update(tc.x)
			if !got.Equal(tc.want) {
				t.Errorf("%v update %v = %v, want %v",
					tc.old, tc.x, got, tc.want)
			}
		})
	}
}

func TestIntervalEqual(t *testing.T) {
	if (Interval{1, nan}).Equal(Interval{1, 2}) {
		t.Errorf("[1,NaN] equal to [1,2]")
	}
	if !(Interval{nan, nan}).Equal(UnsetInterval()) {
		t.Errorf("unset intervals differ")
	}
	if (Interval{1, 2}).Equal(Interval{1, 3}) {
		t.Errorf("[1,2] equal to [1,3]")
	}
}

func TestIntervalContains(t *testing.T) {
	i := Interval{5, 1}
	for _, x := range []float64{1, 3, 5} {
		if !i.Contains(x) {
			t.Errorf("%v does not contain %v", i, x)
		}
	}
	if i.Contains(6) {
		t.Errorf("%v contains 6", i)
	}
}
