package config

const (
	defaultDataDir              = "~/.local/share/murmur/data"
	defaultLogDir               = "~/.local/share/murmur/logs"
	defaultAPIBind              = "127.0.0.1:3021"
	defaultStatusInterval       = 1
	defaultPreviewChars         = 50
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultNotifyRequestTimeout = 10
	defaultWatchFilesystem      = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Workflow: Workflow{
			StatusInterval:  defaultStatusInterval,
			PreviewChars:    defaultPreviewChars,
			WatchFilesystem: defaultWatchFilesystem,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Enqueue:        true,
			Cancel:         true,
			Replay:         true,
			Errors:         true,
		},
	}
}
