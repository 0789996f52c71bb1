package config

import (
	"fmt"
	"strings"
)

var privacyStatuses = map[string]bool{
	"public":   true,
	"private":  true,
	"unlisted": true,
}

// Validate checks the whole configuration and returns every issue found,
// formatted as "path: message". An empty result means the config is usable.
func (c *Config) Validate() []string {
	var issues []string
	require := func(path, value, env string) {
		if strings.TrimSpace(value) == "" {
			issues = append(issues, fmt.Sprintf("%s: %s is required", path, env))
		}
	}

	// The YouTube sink always needs the OAuth client.
	require("google.client_id", c.Google.ClientID, "GOOGLE_CLIENT_ID")
	require("google.client_secret", c.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	require("google.refresh_token", c.Google.RefreshToken, "GOOGLE_REFRESH_TOKEN")

	switch c.Source.Type {
	case SourceTypeDrive:
		require("source.drive.folder_id", c.Source.Drive.FolderID, "GOOGLE_DRIVE_FOLDER_ID")
	case SourceTypeBucket:
		require("storage.bucket", c.Storage.Bucket, "S3_BUCKET")
		if c.Storage.ArchivePrefix != "" && c.Storage.ArchivePrefix == c.Storage.Prefix {
			issues = append(issues, "storage.archive_prefix: must differ from storage.prefix")
		}
	default:
		issues = append(issues, fmt.Sprintf("source.type: unknown source type %q", c.Source.Type))
	}

	if c.Source.PageSize <= 0 {
		issues = append(issues, "source.page_size: must be positive")
	}

	issues = append(issues, c.Upload.issues()...)

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		issues = append(issues, "llm.temperature: must be between 0 and 2")
	}

	if c.Database.Enabled && c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		issues = append(issues, fmt.Sprintf("database.driver: unknown driver %q", c.Database.Driver))
	}

	return issues
}

// Err folds Validate into a single error wrapping ErrInvalidConfig.
func (c *Config) Err() error {
	issues := c.Validate()
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(issues, ", "))
}

// Validate checks the settings an upload run depends on.
func (u *UploadConfig) Validate() error {
	issues := u.issues()
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(issues, ", "))
}

func (u *UploadConfig) issues() []string {
	var issues []string
	if strings.TrimSpace(u.TitleTemplate) == "" {
		issues = append(issues, "upload.title_template: DEFAULT_VIDEO_TITLE_TEMPLATE must not be empty")
	}
	if !privacyStatuses[u.PrivacyStatus] {
		issues = append(issues, fmt.Sprintf("upload.privacy_status: expected public, private or unlisted, got %q", u.PrivacyStatus))
	}
	return issues
}
