package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMethodLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewMethodLimiter().AddBuckets(
		BucketRule{Key: "/api", FillInterval: time.Hour, Capacity: 10},
		BucketRule{Key: "/api/history", FillInterval: time.Hour, Capacity: 1},
	)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/history/abc", nil)

	key := l.Key(c)
	assert.Equal(t, "/api/history", key)

	bucket, ok := l.GetBucket(key)
	assert.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))

	c.Request = httptest.NewRequest("GET", "/health", nil)
	_, ok = l.GetBucket(l.Key(c))
	assert.False(t, ok)
}
