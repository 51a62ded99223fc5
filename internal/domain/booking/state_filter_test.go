package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareloop/service-sharing/internal/domain"
)

func TestParseStateFilter(t *testing.T) {
	tests := []struct {
		input string
		want  StateFilter
	}{
		{input: "ALL", want: FilterAll},
		{input: "all", want: FilterAll},
		{input: "Current", want: FilterCurrent},
		{input: "past", want: FilterPast},
		{input: "fUtUrE", want: FilterFuture},
		{input: "waiting", want: FilterWaiting},
		{input: "REJECTED", want: FilterRejected},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			filter, err := ParseStateFilter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filter)
		})
	}
}

func TestParseStateFilter_Unknown(t *testing.T) {
	_, err := ParseStateFilter("sideways")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	// The message echoes the token as it was received, not uppercased.
	assert.Equal(t, "Unknown state: sideways", err.Error())
}

func TestParseStateFilter_Empty(t *testing.T) {
	_, err := ParseStateFilter("")
	require.Error(t, err)
	assert.Equal(t, "Unknown state: ", err.Error())
}
