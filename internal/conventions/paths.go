package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default ddx data directory name (relative to home).
	DefaultDataDir = ".ddx"

	// HistoryDBFile is the filename of the local operation history database.
	HistoryDBFile = "ddx.db"
	// ConfigFile is the filename of the optional configuration file.
	ConfigFile = "config.yaml"
)

// DataDir returns the ddx data directory for a home directory.
func DataDir(home string) string {
	return filepath.Join(home, DefaultDataDir)
}

// HistoryDBPath returns the default path of the operation history database.
func HistoryDBPath(home string) string {
	return filepath.Join(DataDir(home), HistoryDBFile)
}

// ConfigPath returns the default path of the configuration file.
func ConfigPath(home string) string {
	return filepath.Join(DataDir(home), ConfigFile)
}
