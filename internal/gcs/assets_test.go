package gcs

import (
	"testing"
	"time"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"simple", "gs://my-bucket/videos/clip.mp4", "my-bucket", "videos/clip.mp4", false},
		{"nested object", "gs://b/a/b/c/d.png", "b", "a/b/c/d.png", false},
		{"no scheme", "my-bucket/videos/clip.mp4", "", "", true},
		{"http scheme", "https://storage.googleapis.com/b/o", "", "", true},
		{"bucket only", "gs://my-bucket", "", "", true},
		{"bucket with trailing slash", "gs://my-bucket/", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := ParseURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if bucket != tt.wantBucket {
				t.Errorf("ParseURI(%q) bucket = %q, want %q", tt.input, bucket, tt.wantBucket)
			}
			if object != tt.wantObject {
				t.Errorf("ParseURI(%q) object = %q, want %q", tt.input, object, tt.wantObject)
			}
		})
	}
}

func TestObjectNaming(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)

	if got, want := ImageObject(now), "images/2026-08-30_14-05-09.png"; got != want {
		t.Errorf("ImageObject() = %q, want %q", got, want)
	}
	if got, want := VideoObject(now), "videos/2026-08-30_14-05-09"; got != want {
		t.Errorf("VideoObject() = %q, want %q", got, want)
	}
	if got, want := FinalObject(now), "videos/final_2026-08-30_14-05-09.mp4"; got != want {
		t.Errorf("FinalObject() = %q, want %q", got, want)
	}
}

func TestStoreURI(t *testing.T) {
	s := &Store{bucket: "creative-assets"}
	if got, want := s.URI("videos/x.mp4"), "gs://creative-assets/videos/x.mp4"; got != want {
		t.Errorf("URI() = %q, want %q", got, want)
	}
}
