package jobsource

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
	"github.com/goodnatureofminers/rieminer7000/internal/primetable"
)

func testConstellation(t *testing.T) *constellation.Constellation {
	t.Helper()
	table, err := primetable.Generate(1000)
	require.NoError(t, err)
	pattern, err := constellation.ParsePattern("0,4,2,4,2,4")
	require.NoError(t, err)
	c, err := constellation.New(pattern, table, 4, []uint64{97})
	require.NoError(t, err)
	return c
}
