package config

const (
	// DefaultFileName is the report file name used when none is configured.
	DefaultFileName = "report.json"

	// EnvBaseDirectory holds the report directory.
	EnvBaseDirectory = "REPORT_BASE_DIRECTORY"
	// EnvFileName holds the report file name.
	EnvFileName = "REPORT_FILE_NAME"
	// EnvEnableHTTPLogs toggles performance log collection.
	EnvEnableHTTPLogs = "REPORT_ENABLE_HTTP_LOGS"
	// EnvDevtoolsURL is the DevTools websocket URL of the browser under test.
	EnvDevtoolsURL = "REPORT_DEVTOOLS_URL"
	// EnvDevtoolsTarget is the DevTools target (tab) id to attach to.
	EnvDevtoolsTarget = "REPORT_DEVTOOLS_TARGET"
	// EnvSessionFile points at a captured session to replay instead of a live browser.
	EnvSessionFile = "REPORT_SESSION_FILE"
)
