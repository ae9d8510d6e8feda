package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []OrderLine
		want    []OrderLine
		wantErr error
	}{
		{
			name:  "distinct menus are kept",
			lines: []OrderLine{{MenuID: 7, Counts: 1}, {MenuID: 5, Counts: 2}},
			want:  []OrderLine{{MenuID: 5, Counts: 2}, {MenuID: 7, Counts: 1}},
		},
		{
			name:  "repeated menu is merged",
			lines: []OrderLine{{MenuID: 5, Counts: 2}, {MenuID: 5, Counts: 3}},
			want:  []OrderLine{{MenuID: 5, Counts: 5}},
		},
		{
			name:    "empty order",
			lines:   nil,
			wantErr: ErrEmptyOrder,
		},
		{
			name:    "zero counts",
			lines:   []OrderLine{{MenuID: 5, Counts: 0}},
			wantErr: ErrInvalidCounts,
		},
		{
			name:    "counts above limit",
			lines:   []OrderLine{{MenuID: 5, Counts: MaxCounts + 1}},
			wantErr: ErrTooManyCounts,
		},
		{
			name:    "huge counts do not wrap when merged",
			lines:   []OrderLine{{MenuID: 5, Counts: math.MaxInt}, {MenuID: 5, Counts: 1}},
			wantErr: ErrTooManyCounts,
		},
		{
			name:    "merged counts above limit",
			lines:   []OrderLine{{MenuID: 5, Counts: MaxCounts}, {MenuID: 5, Counts: 1}},
			wantErr: ErrTooManyCounts,
		},
		{
			name:  "merged counts at limit",
			lines: []OrderLine{{MenuID: 5, Counts: MaxCounts - 1}, {MenuID: 5, Counts: 1}},
			want:  []OrderLine{{MenuID: 5, Counts: MaxCounts}},
		},
		{
			name:    "negative menu id",
			lines:   []OrderLine{{MenuID: -1, Counts: 1}},
			wantErr: ErrInvalidMenuID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeLines(tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrder_IsObsolete(t *testing.T) {
	o := &Order{Status: OrderActive}
	assert.False(t, o.IsObsolete())

	o.Status = OrderObsolete
	assert.True(t, o.IsObsolete())
}

func TestUser_Profile(t *testing.T) {
	birthday := time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC)
	u := &User{ID: 3, Username: "alice", Gender: GenderFemale, Birthday: &birthday, Phone: "555"}

	p := u.Profile()
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "1990-03-04", p.Birthday)
	assert.Equal(t, "555", p.Phone)

	u.Birthday = nil
	assert.Empty(t, u.Profile().Birthday)
}
