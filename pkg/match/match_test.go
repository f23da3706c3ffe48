package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

func businesses() []district.Business {
	return []district.Business{
		{ID: "a", Name: "Zeta Design", Category: "Design", ActiveVisitors: 5},
		{ID: "b", Name: "alpha Legal", Category: "Legal", ActiveVisitors: 40},
		{ID: "c", Name: "Beta Cloud", Category: "Tech", ActiveVisitors: 12},
		{ID: "d", Name: "Delta Cloud", Category: "Tech", ActiveVisitors: 12},
	}
}

func matches() []Match {
	return []Match{
		{BusinessID: "a", Score: 72},
		{BusinessID: "b", Score: 91, Reasons: []string{"You need legal advice"}},
		{BusinessID: "c", Score: 55},
		{BusinessID: "d", Score: 55},
		{BusinessID: "ghost", Score: 99},
	}
}

func ids(rs []Ranked) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.BusinessID
	}
	return out
}

func TestRankDefault(t *testing.T) {
	got := Rank(matches(), businesses(), DefaultOptions())
	require.Len(t, got, 4, "unknown businesses are dropped")
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(got))
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, BandExcellent, got[0].Band)
	assert.Equal(t, BandGood, got[1].Band)
	assert.Equal(t, BandFair, got[2].Band)
}

func TestRankTiesAreStableByID(t *testing.T) {
	asc := Rank(matches(), businesses(), Options{SortBy: ByScore})
	assert.Equal(t, []string{"c", "d", "a", "b"}, ids(asc))
	desc := Rank(matches(), businesses(), Options{SortBy: ByVisitors, Desc: true})
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids(desc))
}

func TestRankByNameIgnoresCase(t *testing.T) {
	got := Rank(matches(), businesses(), Options{SortBy: ByName})
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids(got))
}

func TestRankFilters(t *testing.T) {
	got := Rank(matches(), businesses(), Options{SortBy: ByScore, Desc: true, MinScore: 60})
	assert.Equal(t, []string{"b", "a"}, ids(got))

	got = Rank(matches(), businesses(), Options{Category: "tech"})
	assert.Equal(t, []string{"c", "d"}, ids(got))

	got = Rank(matches(), businesses(), Options{Query: "CLOUD", Limit: 1})
	assert.Equal(t, []string{"c"}, ids(got))
}

func TestRankClampsAndDeduplicates(t *testing.T) {
	ms := []Match{
		{BusinessID: "a", Score: 140},
		{BusinessID: "c", Score: 20},
		{BusinessID: "c", Score: 64},
		{BusinessID: "d", Score: -5},
	}
	got := Rank(ms, businesses(), DefaultOptions())
	require.Len(t, got, 3)
	assert.Equal(t, 100, got[0].Score)
	assert.Equal(t, 64, got[1].Score)
	assert.Equal(t, BandGood, got[1].Band)
	assert.Equal(t, 0, got[2].Score)
}

func TestParseSortBy(t *testing.T) {
	assert.Equal(t, ByName, ParseSortBy(" Name "))
	assert.Equal(t, ByVisitors, ParseSortBy("visitors"))
	assert.Equal(t, ByScore, ParseSortBy("bogus"))
}

func TestComposeIntroduction(t *testing.T) {
	p := Profile{Name: "Sara", Company: "Nour Analytics"}
	b := businesses()[1]
	intro := ComposeIntroduction(p, b, matches()[1], nil)

	assert.Equal(t, "b", intro.To)
	assert.Equal(t, "Introduction from Nour Analytics", intro.Subject)
	assert.Contains(t, intro.Body, "Hello alpha Legal team")
	assert.Contains(t, intro.Body, "91% match")
	assert.Contains(t, intro.Body, "- You need legal advice")
	assert.True(t, strings.HasSuffix(intro.Body, "Sara"))
}

func TestComposeIntroductionTranslated(t *testing.T) {
	tr := func(key string) string {
		if key == KeyIntroSubject {
			return "تعارف من {company}"
		}
		return key
	}
	intro := ComposeIntroduction(Profile{Company: "Nour"}, businesses()[0], Match{BusinessID: "a", Score: 70}, tr)
	assert.Equal(t, "تعارف من Nour", intro.Subject)
	assert.NotContains(t, intro.Body, "{reasons}")
	assert.NotContains(t, intro.Body, "Why we might fit")
	assert.True(t, strings.HasSuffix(intro.Body, "Nour"), "sender falls back to the company")
}
