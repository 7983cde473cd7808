package api_router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParentFromReferer(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"empty", "", ""},
		{"no query", "http://localhost/", ""},
		{"empty query", "http://localhost/?", ""},
		{"bare folder id", "http://localhost/?OyQRAeK7QlWMr0E2xWapYg", "OyQRAeK7QlWMr0E2xWapYg"},
		{"bare id with trailing params", "http://localhost/?OyQRAeK7QlWMr0E2xWapYg&view=list", "OyQRAeK7QlWMr0E2xWapYg"},
		{"bare id with fragment", "http://localhost/?OyQRAeK7QlWMr0E2xWapYg#top", "OyQRAeK7QlWMr0E2xWapYg"},
		{"escaped legacy id", "http://localhost/?MwIwTALAjFAMUFoCmYQgRMBWLCAcAxgIYBmGUwAbAVpZUQJyVhA%3D", "MwIwTALAjFAMUFoCmYQgRMBWLCAcAxgIYBmGUwAbAVpZUQJyVhA="},
		{"legacy id with plus", "http://localhost/?ab+cd=", "ab+cd="},
		{"parent key", "http://localhost/notes?parent=abc", "abc"},
		{"parent key among others", "http://localhost/notes?view=list&parent=abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parentFromReferer(tt.referer))
		})
	}
}
