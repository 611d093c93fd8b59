package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordScore(t *testing.T) {
	require.Equal(t, 5, WordScore("cat"))
	require.Equal(t, 20, WordScore("quiz")) // q=10 u=1 i=1 z=10
}

func TestBestPlayable(t *testing.T) {
	require.Empty(t, BestPlayable([]rune("zz")))

	best := BestPlayable([]rune("catdog"))
	require.NotEmpty(t, best)
	require.True(t, Allowed(best))
	require.True(t, canForm([]rune("catdog"), best))
}

func TestCanForm(t *testing.T) {
	cases := []struct {
		name string
		rack string
		word string
		want bool
	}{
		{name: "exact letters", rack: "cat", word: "cat", want: true},
		{name: "subset", rack: "catxyz", word: "at", want: true},
		{name: "missing letter", rack: "cat", word: "cab", want: false},
		{name: "repeated letter not held twice", rack: "eg", word: "egg", want: false},
		{name: "non letter input", rack: "cat", word: "c-t", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, canForm([]rune(tc.rack), tc.word))
		})
	}
}
