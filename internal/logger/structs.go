package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool
}

// RollingFile describes one lumberjack managed log file.
type RollingFile struct {
	Name       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// LogFile implements a file based logger.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	AccessLog        string `toml:"access"`
	AccessMaxSize    int    `toml:"accessMaxSize"`
	AccessMaxBackups int    `toml:"accessMaxBackups"`
	AccessMaxAge     int    `toml:"accessMaxAge"`

	ErrorLog        string `toml:"error"`
	ErrorMaxSize    int    `toml:"errorMaxSize"`
	ErrorMaxBackups int    `toml:"errorMaxBackups"`
	ErrorMaxAge     int    `toml:"errorMaxAge"`

	InfoLog        string `toml:"info"`
	InfoMaxSize    int    `toml:"infoMaxSize"`
	InfoMaxBackups int    `toml:"infoMaxBackups"`
	InfoMaxAge     int    `toml:"infoMaxAge"`

	TraceLog        string `toml:"trace"`
	TraceMaxSize    int    `toml:"traceMaxSize"`
	TraceMaxBackups int    `toml:"traceMaxBackups"`
	TraceMaxAge     int    `toml:"traceMaxAge"`

	WarnLog        string `toml:"warn"`
	WarnMaxSize    int    `toml:"warnMaxSize"`
	WarnMaxBackups int    `toml:"warnMaxBackups"`
	WarnMaxAge     int    `toml:"warnMaxAge"`
}

// Access returns the rolling settings of the access log.
func (f LogFile) Access() RollingFile {
	return RollingFile{Name: f.AccessLog, MaxSize: f.AccessMaxSize, MaxBackups: f.AccessMaxBackups, MaxAge: f.AccessMaxAge}
}

// Error returns the rolling settings of the error log.
func (f LogFile) Error() RollingFile {
	return RollingFile{Name: f.ErrorLog, MaxSize: f.ErrorMaxSize, MaxBackups: f.ErrorMaxBackups, MaxAge: f.ErrorMaxAge}
}

// Info returns the rolling settings of the info log.
func (f LogFile) Info() RollingFile {
	return RollingFile{Name: f.InfoLog, MaxSize: f.InfoMaxSize, MaxBackups: f.InfoMaxBackups, MaxAge: f.InfoMaxAge}
}

// Trace returns the rolling settings of the trace log.
func (f LogFile) Trace() RollingFile {
	return RollingFile{Name: f.TraceLog, MaxSize: f.TraceMaxSize, MaxBackups: f.TraceMaxBackups, MaxAge: f.TraceMaxAge}
}

// Warn returns the rolling settings of the warn log.
func (f LogFile) Warn() RollingFile {
	return RollingFile{Name: f.WarnLog, MaxSize: f.WarnMaxSize, MaxBackups: f.WarnMaxBackups, MaxAge: f.WarnMaxAge}
}

// Log implements the logger config.
type Log struct {
	LogLevel string // info, warn, error.

	// EnableAccessLogToConsole if true the webserver access log is written to the console.
	// Does not overrule flag Console.Enabled!
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /checkalive calls

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	// File based logging with rotation.
	File LogFile `toml:"file"`
}
