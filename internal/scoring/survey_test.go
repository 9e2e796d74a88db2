package scoring

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocean-predict/internal/domain"
)

func uniformResponses(v int) []int {
	out := make([]int, SurveyLength)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSurveyScorer_UniformResponses(t *testing.T) {
	s := NewSurveyScorer(RoundRobinItems())
	for v := LikertMin; v <= LikertMax; v++ {
		got, err := s.Score(uniformResponses(v))
		require.NoError(t, err)
		want := float64(v-1) / 4
		for _, tr := range domain.Traits {
			assert.Equal(t, want, got.Get(tr), "trait %s with uniform %d", tr, v)
		}
	}
}

func TestSurveyScorer_RoundRobinScenario(t *testing.T) {
	responses := uniformResponses(3)
	for i := 0; i < SurveyLength; i += 5 {
		responses[i] = 5
	}

	got, err := NewSurveyScorer(RoundRobinItems()).Score(responses)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.O)
	assert.Equal(t, 0.5, got.C)
	assert.Equal(t, 0.5, got.E)
	assert.Equal(t, 0.5, got.A)
	assert.Equal(t, 0.5, got.N)
}

func TestSurveyScorer_ReverseKeyedItems(t *testing.T) {
	items := RoundRobinItems()
	items[0].Reverse = true
	s := NewSurveyScorer(items)

	low := uniformResponses(3)
	low[0] = 1
	got, err := s.Score(low)
	require.NoError(t, err)
	// un 1 en item inverso cuenta como 5: (5 + 9*3) / 10 = 3.2
	assert.InDelta(t, 0.55, got.O, 1e-12)

	high := uniformResponses(3)
	high[0] = 5
	got, err = s.Score(high)
	require.NoError(t, err)
	assert.InDelta(t, 0.45, got.O, 1e-12)
	assert.Equal(t, 0.5, got.C)
}

func TestSurveyScorer_IPIP50Keying(t *testing.T) {
	items := IPIP50Items()
	require.Len(t, items, SurveyLength)

	perTrait := map[domain.Trait]int{}
	for _, it := range items {
		perTrait[it.Trait]++
	}
	for _, tr := range domain.Traits {
		assert.Equal(t, 10, perTrait[tr], "items for %s", tr)
	}

	got, err := NewSurveyScorer(items).Score(uniformResponses(5))
	require.NoError(t, err)
	assert.InDelta(t, 0.7, got.O, 1e-12)
	assert.InDelta(t, 0.6, got.C, 1e-12)
	assert.InDelta(t, 0.5, got.E, 1e-12)
	assert.InDelta(t, 0.6, got.A, 1e-12)
	assert.InDelta(t, 0.8, got.N, 1e-12)
}

func TestSurveyScorer_GroupingInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := IPIP50Items()
	s := NewSurveyScorer(items)

	for round := 0; round < 20; round++ {
		responses := make([]int, SurveyLength)
		for i := range responses {
			responses[i] = LikertMin + rng.Intn(LikertMax)
		}
		got, err := s.Score(responses)
		require.NoError(t, err)

		for _, tr := range domain.Traits {
			sum, n := 0, 0
			for i, it := range items {
				if it.Trait != tr {
					continue
				}
				v := responses[i]
				if it.Reverse {
					v = 6 - v
				}
				sum += v
				n++
			}
			want := (float64(sum)/float64(n) - 1) / 4
			assert.InDelta(t, want, got.Get(tr), 1e-9)
		}
	}
}

func TestSurveyScorer_EmptyBucketDefaultsToMidpoint(t *testing.T) {
	items := make([]SurveyItem, SurveyLength)
	for i := range items {
		items[i] = SurveyItem{ID: i + 1, Trait: domain.Openness}
	}

	got, err := NewSurveyScorer(items).Score(uniformResponses(5))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.O)
	assert.Equal(t, 0.5, got.C)
	assert.Equal(t, 0.5, got.N)
}

func TestSurveyScorer_Validation(t *testing.T) {
	s := NewSurveyScorer(RoundRobinItems())

	tests := []struct {
		name      string
		responses []int
		required  int
		actual    int
		index     int
	}{
		{name: "empty", responses: nil, required: 50, actual: 0, index: -1},
		{name: "too short", responses: uniformResponses(3)[:49], required: 50, actual: 49, index: -1},
		{name: "too long", responses: append(uniformResponses(3), 3), required: 50, actual: 51, index: -1},
		{name: "below range", responses: func() []int { r := uniformResponses(3); r[7] = 0; return r }(), actual: 0, index: 7},
		{name: "above range", responses: func() []int { r := uniformResponses(3); r[49] = 6; return r }(), actual: 6, index: 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Score(tt.responses)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "responses", verr.Field)
			assert.Equal(t, tt.required, verr.Required)
			assert.Equal(t, tt.actual, verr.Actual)
			assert.Equal(t, tt.index, verr.Index)
		})
	}
}

func TestSurveyItemsFor(t *testing.T) {
	items, err := SurveyItemsFor(KeyingIPIP50)
	require.NoError(t, err)
	assert.True(t, items[8].Reverse)

	items, err = SurveyItemsFor("")
	require.NoError(t, err)
	assert.Equal(t, domain.Extraversion, items[7].Trait)

	_, err = SurveyItemsFor("alphabetical")
	assert.Error(t, err)
}
