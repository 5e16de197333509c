package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("Default() config should validate cleanly, got: %v", ValidationErrors(errs))
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Session.NameMaxLength != 50 {
		t.Errorf("NameMaxLength = %d, want 50", cfg.Session.NameMaxLength)
	}
	if cfg.Goal.MinLength != 10 || cfg.Goal.MaxLength != 2000 {
		t.Errorf("goal length bounds = (%d, %d), want (10, 2000)", cfg.Goal.MinLength, cfg.Goal.MaxLength)
	}
	if cfg.Goal.HistoryRetention != 50 {
		t.Errorf("HistoryRetention = %d, want 50", cfg.Goal.HistoryRetention)
	}
	if len(cfg.Session.DefaultFilePatterns) != 1 || cfg.Session.DefaultFilePatterns[0] != "*" {
		t.Errorf("DefaultFilePatterns = %v, want [*]", cfg.Session.DefaultFilePatterns)
	}
}

func TestResolveDataDir(t *testing.T) {
	tests := []struct {
		name    string
		dataDir string
		baseDir string
		want    string
	}{
		{
			name:    "empty uses default",
			dataDir: "",
			baseDir: "/proj",
			want:    filepath.Join("/proj", ".cohort"),
		},
		{
			name:    "relative resolves against base",
			dataDir: "state",
			baseDir: "/proj",
			want:    filepath.Join("/proj", "state"),
		},
		{
			name:    "absolute used as-is",
			dataDir: "/var/lib/cohort",
			baseDir: "/proj",
			want:    "/var/lib/cohort",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PathsConfig{DataDir: tt.dataDir}
			if got := p.ResolveDataDir(tt.baseDir); got != tt.want {
				t.Errorf("ResolveDataDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "zero name max length",
			mutate: func(c *Config) { c.Session.NameMaxLength = 0 },
			field:  "session.name_max_length",
		},
		{
			name:   "oversized name max length",
			mutate: func(c *Config) { c.Session.NameMaxLength = 300 },
			field:  "session.name_max_length",
		},
		{
			name:   "max below min goal length",
			mutate: func(c *Config) { c.Goal.MaxLength = 5 },
			field:  "goal.max_length",
		},
		{
			name:   "zero retention",
			mutate: func(c *Config) { c.Goal.HistoryRetention = 0 },
			field:  "goal.history_retention",
		},
		{
			name:   "negative word sample",
			mutate: func(c *Config) { c.Goal.WordSampleSize = -1 },
			field:  "goal.word_sample_size",
		},
		{
			name:   "tiny poll interval",
			mutate: func(c *Config) { c.Dashboard.PollIntervalMs = 50 },
			field:  "dashboard.poll_interval_ms",
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			field:  "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatal("Validate() returned no errors, want at least one")
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.field, ValidationErrors(errs))
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("multi-error message should include count, got %q", msg)
	}

	one := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if one.Error() != "a: bad (got: 1)" {
		t.Errorf("single-error message = %q", one.Error())
	}
}
