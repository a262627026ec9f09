package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `month, sales, region
jan, 12, north
feb, 7.5,
mar, -3, south
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"month", "sales", "region"}, Columns(ds))

	first := ds.Data()[0].(map[string]any)
	assert.Equal(t, "jan", first["month"])
	assert.Equal(t, 12.0, first["sales"])
	assert.Nil(t, ds.Data()[1].(map[string]any)["region"])

	iv := Range(ds, "sales")
	assert.Equal(t, -3.0, iv.Min)
	assert.Equal(t, 12.0, iv.Max)
	assert.False(t, Range(ds, "month").IsSet())
}

func TestReadCSVErrors(t *testing.T) {
	for i, tc := range []struct {
		in, want string
	}{
		{"", "missing CSV header"},
		{"a,,c\n1,2,3\n", "empty name"},
		{"a,b\n1,2,3\n", "record 2"},
	} {
		_, err := ReadCSV(strings.NewReader(tc.in))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%d. ReadCSV(%q) = %v, want error containing %q", i, tc.in, err, tc.want)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	ds, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
