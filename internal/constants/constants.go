package constants

const (
	AppName            = "stride"
	Version            = "v0.3.1"
	DefaultConfigPath  = "~/.config/stride/stride.db"
	DefaultKeyringUser = "database-connection"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format for reminder times (HH:MM)
	TimeFormat = "15:04"

	// RateWindowDays is the trailing window used for per-habit completion rates
	RateWindowDays = 30

	// Server defaults
	DefaultPort         = 5000
	DefaultStatsDays    = 7
	NotificationLimit   = 10
	ShutdownGracePeriod = 5
)
