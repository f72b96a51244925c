package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortedMapKeys(t *testing.T) {
	require.Equal(t, []string{"2020-01-02", "2020-01-10", "2021-01-01"}, SortedMapKeys(map[string]int{
		"2021-01-01": 1,
		"2020-01-10": 2,
		"2020-01-02": 3,
	}))
	require.Empty(t, SortedMapKeys(map[string]int{}))
}

func TestSet(t *testing.T) {
	s := NewSet("MSFT", "AAPL")
	s.Add("AAPL")
	s.Add("VTI")
	require.Equal(t, 3, s.Length())
	require.True(t, s.Contains("VTI"))

	s.Remove("MSFT")
	require.False(t, s.Contains("MSFT"))
	require.Equal(t, []string{"AAPL", "VTI"}, s.List())
}
