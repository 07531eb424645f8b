package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	const id = "0b6e5f4e-8a53-4f0e-9a0e-2f1f4c1e7d10"

	tests := []struct {
		in, want string
	}{
		{"/jobs", "/jobs"},
		{"/health", "/health"},
		{"/jobs/" + id, "/jobs/{id}"},
		{"/companies/" + id + "/jobs", "/companies/{id}/jobs"},
		{"/companies/" + id + "/ignored-jobs", "/companies/{id}/ignored-jobs"},
		{"/jobs/not-a-uuid", "/jobs/not-a-uuid"},
		{"/jobs/0b6e5f4e-8a53-4f0e-9a0e-2f1f4c1e7d1z", "/jobs/0b6e5f4e-8a53-4f0e-9a0e-2f1f4c1e7d1z"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePath(tt.in), tt.in)
	}
}
