package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validExpectations = map[string]bool{
	"running": true,
	"stopped": true,
	"manual":  true,
}

// Validate checks the config for invalid values. Dangerous zero-values are
// clamped to safe defaults; genuinely unusable values return an error.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = "text"
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("format %q must be one of text, json, yaml", c.Format)
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level %q is not a valid level", c.LogLevel)
	}

	if c.DetectStaleDays < 1 {
		c.DetectStaleDays = 1
	}
	if c.InstallStaleDays < 1 {
		c.InstallStaleDays = 1
	}
	if c.PatchWarnDays < 1 {
		c.PatchWarnDays = 1
	}
	if c.PatchCritDays <= c.PatchWarnDays {
		c.PatchCritDays = c.PatchWarnDays + 30
	}
	if c.ScrapeTimeoutSec < 1 {
		c.ScrapeTimeoutSec = 15
	}
	if c.MinDiskSpaceGB < 0 {
		c.MinDiskSpaceGB = 0
	}

	if c.ScrapeURL != "" {
		u, err := url.Parse(c.ScrapeURL)
		if err != nil {
			return fmt.Errorf("scrape_url %q is not a valid URL: %w", c.ScrapeURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("scrape_url scheme must be http or https, got %q", u.Scheme)
		}
	}

	for _, entry := range c.UpdateServices {
		if _, _, err := ParseServiceExpectation(entry); err != nil {
			return err
		}
	}

	return nil
}

// ParseServiceExpectation splits a "name:expected" service entry.
// A bare name defaults to expecting the service to be running.
func ParseServiceExpectation(entry string) (name, expected string, err error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return "", "", fmt.Errorf("empty update_services entry")
	}

	name, expected = entry, "running"
	if i := strings.LastIndex(entry, ":"); i >= 0 {
		name = strings.TrimSpace(entry[:i])
		expected = strings.ToLower(strings.TrimSpace(entry[i+1:]))
	}
	if name == "" {
		return "", "", fmt.Errorf("update_services entry %q has no service name", entry)
	}
	if !validExpectations[expected] {
		return "", "", fmt.Errorf("update_services entry %q: expected state must be running, stopped or manual", entry)
	}
	return name, expected, nil
}
