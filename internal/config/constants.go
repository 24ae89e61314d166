package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./library-manager.db"
)
