package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntil(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		target time.Time
		want   Remaining
	}{
		{"future", now.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second), Remaining{Days: 2, Hours: 3, Minutes: 4, Seconds: 5}},
		{"sub-second truncates", now.Add(1500 * time.Millisecond), Remaining{Seconds: 1}},
		{"exactly now", now, Remaining{Started: true}},
		{"past", now.Add(-time.Hour), Remaining{Started: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Until(now, tc.target))
		})
	}
}
