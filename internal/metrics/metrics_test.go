package metrics

import (
	"testing"

	"github.com/san-kum/sortviz/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	tests := []struct {
		in   []int
		want int
	}{
		{nil, 0},
		{[]int{1}, 0},
		{[]int{1, 2, 3}, 0},
		{[]int{3, 2, 1}, 3},
		{[]int{5, 3, 8, 1}, 4},
		{[]int{2, 2, 2}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.in), "%v", tt.in)
	}
}

func TestSetFollowsSession(t *testing.T) {
	set := Default()
	sess := session.New(set)
	require.NoError(t, sess.SetSequence([]int{3, 1, 2}))

	v, ok := set.Value(NameInversions)
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	require.NoError(t, sess.Begin())
	assert.Equal(t, 1, sess.Compare(0, 1))
	require.NoError(t, sess.Swap(0, 1))
	sess.Compare(1, 2)
	require.NoError(t, sess.Swap(1, 2))

	values := set.Values()
	assert.Equal(t, 2.0, values[NameComparisons])
	assert.Equal(t, 2.0, values[NameExchanges])
	assert.Equal(t, 0.0, values[NameInversions])
	assert.Equal(t, []float64{2, 1, 0}, set.History(NameInversions))
}

func TestSetResetSeedsOnBegin(t *testing.T) {
	set := Default()
	sess := session.New(set)
	require.NoError(t, sess.SetSequence([]int{2, 1}))
	set.Reset()

	assert.Empty(t, set.History(NameInversions))
	require.NoError(t, sess.Begin())
	assert.Equal(t, []float64{1}, set.History(NameInversions))

	v, _ := set.Value(NameComparisons)
	assert.Zero(t, v)
}

func TestInversionHistoryIsBounded(t *testing.T) {
	inv := NewInversions()
	snap := session.Snapshot{Values: []int{2, 1}}
	for i := 0; i < historyCapacity+50; i++ {
		inv.Observe(session.Change{Kind: session.ChangeSwap, Snapshot: snap})
	}
	assert.Len(t, inv.History(), historyCapacity)
	assert.Equal(t, 1.0, inv.Value())

	inv.Reset()
	assert.Empty(t, inv.History())
	assert.Zero(t, inv.Value())
}

func TestSetUnknownNames(t *testing.T) {
	set := NewSet(NewComparisons())
	_, ok := set.Value("missing")
	assert.False(t, ok)
	assert.Nil(t, set.History(NameComparisons))
	assert.Equal(t, []string{NameComparisons}, set.Names())

	set.Add(NewExchanges())
	assert.Equal(t, []string{NameComparisons, NameExchanges}, set.Names())
}
