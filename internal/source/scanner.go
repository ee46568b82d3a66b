package source

import (
	"os"
	"path/filepath"
)

// DefaultPaths returns the conventional table locations under dataDir.
// An empty dataDir means the working directory.
func DefaultPaths(dataDir string) Paths {
	return Paths{
		Historical: filepath.Join(dataDir, filepath.FromSlash(HistoricalFile)),
		Forecast:   filepath.Join(dataDir, filepath.FromSlash(ForecastFile)),
	}
}

// WithOverrides replaces either path when the override is non-empty.
func (p Paths) WithOverrides(historical, forecast string) Paths {
	if historical != "" {
		p.Historical = historical
	}
	if forecast != "" {
		p.Forecast = forecast
	}
	return p
}

// Discover reports which of the two tables are absent. Directories and
// unreadable entries count as absent.
func Discover(p Paths) []string {
	var missing []string
	for _, path := range []string{p.Historical, p.Forecast} {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			missing = append(missing, path)
		}
	}
	return missing
}
