package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	for _, field := range []*string{
		&c.Paths.UploadDir,
		&c.Paths.OutputDir,
		&c.Paths.WorkDir,
		&c.Paths.LogDir,
	} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	c.Transcriber.Model = strings.TrimSpace(c.Transcriber.Model)
	c.Translator.BaseURL = strings.TrimRight(strings.TrimSpace(c.Translator.BaseURL), "/")
	c.Translator.Email = strings.TrimSpace(c.Translator.Email)
	c.Synthesizer.Command = strings.TrimSpace(c.Synthesizer.Command)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Transcriber.Model == "" {
		c.Transcriber.Model = defaultTranscriberModel
	}
	if c.Translator.BaseURL == "" {
		c.Translator.BaseURL = defaultTranslatorBaseURL
	}
	if c.Translator.TimeoutSeconds <= 0 {
		c.Translator.TimeoutSeconds = defaultTranslatorTimeout
	}
	if c.Synthesizer.Command == "" {
		c.Synthesizer.Command = defaultSynthCommand
	}
	if c.Synthesizer.SampleRate <= 0 {
		c.Synthesizer.SampleRate = defaultSynthSampleRate
	}
	if c.Workflow.Workers <= 0 {
		c.Workflow.Workers = defaultWorkers
	}
	if c.Workflow.QueuePollInterval <= 0 {
		c.Workflow.QueuePollInterval = defaultQueuePollInterval
	}
	if c.Workflow.ErrorRetryInterval <= 0 {
		c.Workflow.ErrorRetryInterval = defaultErrorRetry
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// Validate checks configuration invariants that normalization cannot repair.
func (c *Config) Validate() error {
	var problems []string

	if c.Paths.UploadDir == "" {
		problems = append(problems, "paths.upload_dir must not be empty")
	}
	if c.Paths.OutputDir == "" {
		problems = append(problems, "paths.output_dir must not be empty")
	}
	if c.Paths.WorkDir == "" {
		problems = append(problems, "paths.work_dir must not be empty")
	}
	if c.Paths.WorkDir != "" && c.Paths.WorkDir == c.Paths.OutputDir {
		problems = append(problems, "paths.work_dir and paths.output_dir must differ")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not one of console, json", c.Logging.Format))
	}
	if !strings.HasPrefix(c.Translator.BaseURL, "http://") && !strings.HasPrefix(c.Translator.BaseURL, "https://") {
		problems = append(problems, "translator.base_url must be an http(s) URL")
	}
	if c.Workflow.Workers > 64 {
		problems = append(problems, "workflow.workers must not exceed 64")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
