package storage

import "testing"

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://abc.r2.cloudflarestorage.com/bucket", "abc.r2.cloudflarestorage.com"},
		{"http://localhost:9000", "localhost:9000"},
		{"minio:9000/", "minio:9000"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeEndpoint(tt.in); got != tt.want {
			t.Errorf("normalizeEndpoint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectStorageType(t *testing.T) {
	tests := []struct {
		endpoint string
		want     StorageType
	}{
		{"https://abc.R2.cloudflarestorage.com", StorageTypeR2},
		{"s3.eu-west-1.amazonaws.com", StorageTypeS3},
		{"", StorageTypeS3},
		{"localhost:9000", StorageTypeS3Compatible},
	}

	for _, tt := range tests {
		if got := detectStorageType(tt.endpoint); got != tt.want {
			t.Errorf("detectStorageType(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}

func TestCopySource(t *testing.T) {
	got := copySource("videos", "inbox/my clip #1.mp4")
	want := "videos/inbox/my%20clip%20%231.mp4"
	if got != want {
		t.Errorf("copySource() = %q, want %q", got, want)
	}
}
