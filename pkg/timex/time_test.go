package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_UnixMethods(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	assert.Equal(t, now.Unix(), tt.Unix())
	assert.Equal(t, now.UnixMilli(), tt.UnixMilli())
	assert.Equal(t, now.UnixMicro(), tt.UnixMicro())
	assert.Equal(t, now.UnixNano(), tt.UnixNano())
}

func TestTime_JSON(t *testing.T) {
	tt := Time(time.Date(2024, 3, 5, 8, 9, 10, 0, time.Local))
	b, err := tt.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05 08:09:10"`, string(b))

	var back Time
	require.NoError(t, back.UnmarshalJSON(b))
	assert.True(t, tt.Time().Equal(back.Time()))

	var zero Time
	b, _ = zero.MarshalJSON()
	assert.Equal(t, `""`, string(b))
}

func TestTime_Scan(t *testing.T) {
	var tt Time
	require.NoError(t, tt.Scan("2024-03-05 08:09:10"))
	assert.Equal(t, 2024, tt.Time().Year())

	now := time.Now()
	require.NoError(t, tt.Scan(now))
	assert.True(t, now.Equal(tt.Time()))

	require.NoError(t, tt.Scan(nil))
	assert.True(t, tt.IsZero())

	assert.Error(t, tt.Scan(42))
}
