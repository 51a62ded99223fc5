package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageRequest(t *testing.T) {
	tests := []struct {
		name       string
		from       int
		size       int
		wantPage   int
		wantOffset int
	}{
		{name: "first page", from: 0, size: 10, wantPage: 0, wantOffset: 0},
		{name: "exact page boundary", from: 20, size: 10, wantPage: 2, wantOffset: 20},
		{name: "from inside a page snaps to its start", from: 5, size: 10, wantPage: 0, wantOffset: 0},
		{name: "from inside second page", from: 15, size: 10, wantPage: 1, wantOffset: 10},
		{name: "size one", from: 3, size: 1, wantPage: 3, wantOffset: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := NewPageRequest(tt.from, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.size, page.Size)
			assert.Equal(t, tt.wantOffset, page.Offset())
		})
	}
}

func TestNewPageRequest_Invalid(t *testing.T) {
	_, err := NewPageRequest(-1, 10)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))

	_, err = NewPageRequest(0, 0)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))

	_, err = NewPageRequest(0, -5)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestNewPaginatedResult(t *testing.T) {
	page, err := NewPageRequest(10, 5)
	require.NoError(t, err)

	result := NewPaginatedResult([]string{"a", "b"}, 12, page)
	assert.Equal(t, []string{"a", "b"}, result.Items)
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 5, result.Size)
}
