package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCandidates(t *testing.T) {
	names := []string{"company", "customerId", "goldCustomer", "silverCustomer"}

	candidates := RankCandidates("goldCustomr", names)
	require.Len(t, candidates, len(names))

	best := candidates.Best()
	require.NotNil(t, best)
	assert.Equal(t, "goldCustomer", best.Name)
	assert.Equal(t, "goldcustomr", best.NormalizedTarget)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].NameScore, candidates[i].NameScore)
	}
}

func TestRankCandidates_TieBreakByName(t *testing.T) {
	candidates := RankCandidates("zzz", []string{"bbb", "aaa"})
	require.Len(t, candidates, 2)

	assert.Equal(t, "aaa", candidates[0].Name)
	assert.Equal(t, "bbb", candidates[1].Name)
	assert.True(t, candidates.IsAmbiguous(DefaultAmbiguityThreshold))
}

func TestSuggest(t *testing.T) {
	names := []string{"id", "name", "price"}

	assert.Equal(t, []string{"name"}, Suggest("nme", names, 3))
	assert.Equal(t, []string{"price"}, Suggest("prise", names, 3))
	assert.Equal(t, []string{"price"}, Suggest("SetPrice", names, 3))
	assert.Nil(t, Suggest("xxx", names, 3))
	assert.Nil(t, Suggest("name", nil, 3))
}

func TestCandidateList_Top(t *testing.T) {
	list := CandidateList{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	assert.Len(t, list.Top(2), 2)
	assert.Len(t, list.Top(10), 3)
	assert.Nil(t, CandidateList(nil).Best())
	assert.False(t, list.Top(1).IsAmbiguous(DefaultAmbiguityThreshold))
}
