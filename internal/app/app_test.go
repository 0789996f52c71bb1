package app

import (
	"context"
	"strings"
	"testing"

	"github.com/timmy/dailyreel/internal/config"
	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/service"
)

func validConfig() *config.Config {
	return &config.Config{
		Google: config.GoogleConfig{
			ClientID:     "client",
			ClientSecret: "secret",
			RefreshToken: "refresh",
		},
		Source: config.SourceConfig{
			Type:     config.SourceTypeDrive,
			PageSize: 25,
			Drive:    config.DriveConfig{FolderID: "folder"},
		},
		Upload: config.UploadConfig{
			TitleTemplate:       config.DefaultTitleTemplate,
			DescriptionTemplate: config.DefaultDescriptionTemplate,
			CategoryID:          "22",
			PrivacyStatus:       "private",
		},
	}
}

func TestBuild_InvalidConfigSkipsRuns(t *testing.T) {
	cfg := validConfig()
	cfg.Google.RefreshToken = ""

	a, err := Build(context.Background(), cfg, Options{Guard: true})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer a.Close()

	if a.Source != nil {
		t.Errorf("Source = %v, want nil", a.Source)
	}

	result, err := a.Recorder.Run(context.Background(), service.RunContext{Manual: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	skipped, ok := result.(*domain.Skipped)
	if !ok {
		t.Fatalf("result = %T, want *domain.Skipped", result)
	}
	if !strings.Contains(skipped.Reason, "GOOGLE_REFRESH_TOKEN") {
		t.Errorf("Reason = %q, want it to name GOOGLE_REFRESH_TOKEN", skipped.Reason)
	}

	status := a.Status.Status(context.Background())
	if status.EnvOK || len(status.EnvIssues) == 0 {
		t.Errorf("status = %+v, want env issues", status)
	}
}

func TestBuild_Sources(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		wantID string
	}{
		{"drive", func(*config.Config) {}, "drive"},
		{"bucket", func(c *config.Config) {
			c.Source.Type = config.SourceTypeBucket
			c.Storage = config.StorageConfig{
				Endpoint:  "http://localhost:9000",
				AccessKey: "key",
				SecretKey: "secret",
				Bucket:    "videos",
				Prefix:    "inbox/",
			}
		}, "s3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			a, err := Build(context.Background(), cfg, Options{})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			defer a.Close()

			if a.Source == nil {
				t.Fatal("Source is nil")
			}
			if got := a.Source.GetSourceID(); got != tt.wantID {
				t.Errorf("GetSourceID() = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestBuild_Metrics(t *testing.T) {
	cfg := validConfig()
	a, err := Build(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if a.MetricsHandler() != nil {
		t.Error("MetricsHandler() should be nil when metrics are disabled")
	}

	cfg.Metrics.Enabled = true
	a, err = Build(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if a.MetricsHandler() == nil {
		t.Error("MetricsHandler() is nil with metrics enabled")
	}
}
