package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reviewDeadline := base.Add(72 * time.Hour)

	tests := []struct {
		name string
		r    ReviewRequest
		now  time.Time
		want RequestStatus
	}{
		{
			name: "pending before deadline",
			r:    ReviewRequest{Status: RequestPending, ResponseDeadline: base},
			now:  base.Add(-time.Minute),
			want: RequestPending,
		},
		{
			name: "pending exactly at deadline",
			r:    ReviewRequest{Status: RequestPending, ResponseDeadline: base},
			now:  base,
			want: RequestPending,
		},
		{
			name: "pending past deadline",
			r:    ReviewRequest{Status: RequestPending, ResponseDeadline: base},
			now:  base.Add(time.Second),
			want: RequestExpired,
		},
		{
			name: "accepted within review window",
			r:    ReviewRequest{Status: RequestAccepted, ResponseDeadline: base, ReviewDeadline: &reviewDeadline},
			now:  reviewDeadline.Add(-time.Hour),
			want: RequestAccepted,
		},
		{
			name: "accepted past review deadline",
			r:    ReviewRequest{Status: RequestAccepted, ResponseDeadline: base, ReviewDeadline: &reviewDeadline},
			now:  reviewDeadline.Add(time.Second),
			want: RequestExpired,
		},
		{
			name: "terminal states never shift",
			r:    ReviewRequest{Status: RequestReviewed, ResponseDeadline: base},
			now:  base.Add(1000 * time.Hour),
			want: RequestReviewed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.EffectiveStatus(tt.now))
		})
	}
}
