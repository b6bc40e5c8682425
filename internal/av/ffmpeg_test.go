package av

import (
	"context"
	"strings"
	"testing"
)

func TestConcatListContent(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{
			name:  "two plain paths",
			paths: []string{"/tmp/a.mp4", "/tmp/b.mp4"},
			want:  "file '/tmp/a.mp4'\nfile '/tmp/b.mp4'\n",
		},
		{
			name:  "path with single quote",
			paths: []string{"/tmp/it's.mp4"},
			want:  "file '/tmp/it'\\''s.mp4'\n",
		},
		{
			name:  "empty",
			paths: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConcatListContent(tt.paths); got != tt.want {
				t.Errorf("ConcatListContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConcatRejectsSingleInput(t *testing.T) {
	err := Concat(context.Background(), []string{"/tmp/only.mp4"}, "/tmp/out.mp4")
	if err == nil {
		t.Fatal("Concat() with one input should fail")
	}
	if !strings.Contains(err.Error(), "at least 2") {
		t.Errorf("unexpected error: %v", err)
	}
}
