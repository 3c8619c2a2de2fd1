package config

const (
	defaultUploadDir         = "~/.local/share/revoice/uploads"
	defaultOutputDir         = "~/.local/share/revoice/outputs"
	defaultWorkDir           = "~/.local/share/revoice/work"
	defaultLogDir            = "~/.local/share/revoice/logs"
	defaultAPIBind           = "127.0.0.1:7620"
	defaultTranscriberModel  = "small"
	defaultTranslatorBaseURL = "https://api.mymemory.translated.net"
	defaultTranslatorTimeout = 15
	defaultSynthCommand      = "gtts-cli"
	defaultSynthSampleRate   = 24000
	defaultWorkers           = 2
	defaultQueuePollInterval = 5
	defaultErrorRetry        = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			UploadDir: defaultUploadDir,
			OutputDir: defaultOutputDir,
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Transcriber: Transcriber{
			Model: defaultTranscriberModel,
		},
		Translator: Translator{
			BaseURL:        defaultTranslatorBaseURL,
			TimeoutSeconds: defaultTranslatorTimeout,
		},
		Synthesizer: Synthesizer{
			Command:    defaultSynthCommand,
			SampleRate: defaultSynthSampleRate,
		},
		Workflow: Workflow{
			Workers:            defaultWorkers,
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetry,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
