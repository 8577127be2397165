package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.repro/logs/repro.log
	CLILogFileName = "repro.log"

	// LogMaxSizeMB is the size at which the CLI log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days rotated log files are kept.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global repro configuration file.
	// This file is located in the repro home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigName is the name of the project-specific repro configuration file.
	// This file is located in the directory repro is run from.
	ProjectConfigName = ".repro.yaml"
)
