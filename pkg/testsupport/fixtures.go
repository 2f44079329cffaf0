// Package testsupport builds theme fixtures for tests.
package testsupport

import (
	"testing/fstest"
	"time"
)

// FixtureTime is the modification time given to ThemeFS files, so cache
// busters are stable: ?v=1700000000.
var FixtureTime = time.Unix(1700000000, 0)

// ThemeFS returns an in-memory public directory holding files, keyed by
// slash separated path. Every file carries FixtureTime.
func ThemeFS(files map[string]string) fstest.MapFS {
	fsys := make(fstest.MapFS, len(files))
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body), Mode: 0o644, ModTime: FixtureTime}
	}
	return fsys
}
