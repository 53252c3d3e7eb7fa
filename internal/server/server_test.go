package server

import "testing"

func TestBodyLimitHeadroom(t *testing.T) {
	tests := []struct {
		name          string
		maxFileSizeMB int
		requestMB     int
	}{
		{"15MB upload against 10MB cap", 10, 15},
		{"3MB upload against 1MB cap", 1, 3},
		{"60MB upload against 50MB cap", 50, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := bodyLimit(tt.maxFileSizeMB)

			// An oversize request moderately above the cap must pass the
			// transport limit so the upload handler can answer with 400.
			if limit <= tt.requestMB*1024*1024 {
				t.Errorf("bodyLimit(%d) = %d, does not admit a %dMB request", tt.maxFileSizeMB, limit, tt.requestMB)
			}
			if limit <= tt.maxFileSizeMB*1024*1024 {
				t.Errorf("bodyLimit(%d) = %d, below the upload cap itself", tt.maxFileSizeMB, limit)
			}
		})
	}
}
