package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"minibank/pkg/requestcontext"
)

// ContextWithTime returns a background context carrying a fixed request time.
// Services read time via requestcontext.Now, so this is how tests pin the
// clock for business-hours assertions.
func ContextWithTime(t *testing.T, value string) context.Context {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err, "failed to parse test time")
	return requestcontext.WithTime(context.Background(), ts)
}

// BusinessHoursTime is a Tuesday at noon, safely inside the default
// withdrawal window.
var BusinessHoursTime = time.Date(2025, time.July, 8, 12, 0, 0, 0, time.UTC)

// AfterHoursTime is a Tuesday at 20:00, outside the withdrawal window.
var AfterHoursTime = time.Date(2025, time.July, 8, 20, 0, 0, 0, time.UTC)

// WeekendTime is a Saturday at noon.
var WeekendTime = time.Date(2025, time.July, 12, 12, 0, 0, 0, time.UTC)
