package configfile

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// SearchDirs returns the conventional candidate directories for an
// application named appName, ordered from most to least specific:
//
//  1. the current directory,
//  2. the user XDG config directory joined with appName
//     (e.g. ~/.config/appName),
//  3. each system XDG config directory joined with appName
//     (e.g. /etc/xdg/appName).
//
// The result is meant to be passed to WithDirectories. Panics if appName is
// empty.
func SearchDirs(appName string) []string {
	if appName == "" {
		panic("configfile: SearchDirs: appName cannot be empty")
	}
	dirs := []string{".", filepath.Join(xdg.ConfigHome, appName)}
	for _, d := range xdg.ConfigDirs {
		dirs = append(dirs, filepath.Join(d, appName))
	}
	return dirs
}
