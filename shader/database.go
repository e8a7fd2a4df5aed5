// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"cogentcore.org/torch/pathlet"
)

// Info is one shader database entry: where to find a shader's source and
// compiled target, plus the preprocessor variables it was last compiled
// with.
type Info struct {
	Source    pathlet.Pathlet   `json:"source"`
	Target    pathlet.Pathlet   `json:"target"`
	Variables map[string]string `json:"variables"`
}

type jsonInfo struct {
	Source    string            `json:"source"`
	Target    string            `json:"target"`
	Variables map[string]string `json:"variables"`
}

// Database is the JSON-backed shader index a Loader consults when a shader
// source can't be found directly on its include paths. Writes take a
// cross-process advisory lock (a sibling ".lock" file created exclusively,
// so a concurrent writer fails to acquire it rather than silently
// clobbering) per the "writes are protected by a cross-process lock, readers
// tolerate concurrent writers" contract.
type Database struct {
	path    string
	entries map[string]Info
}

// LoadDatabase reads the shader database at path. A missing file is not an
// error: it is treated as an empty database (the first Save creates it).
func LoadDatabase(path string) (*Database, error) {
	db := &Database{path: path, entries: make(map[string]Info)}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading shader database %s: %w", path, err)
	}

	var parsed map[string]jsonInfo
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing shader database %s: %w", path, err)
	}
	for key, v := range parsed {
		source, err := pathlet.New(v.Source)
		if err != nil {
			return nil, fmt.Errorf("shader database %s entry %q: %w", path, key, err)
		}
		target, err := pathlet.New(v.Target)
		if err != nil {
			return nil, fmt.Errorf("shader database %s entry %q: %w", path, key, err)
		}
		db.entries[key] = Info{Source: source, Target: target, Variables: v.Variables}
	}
	return db, nil
}

// Get returns the database entry keyed by key.
func (db *Database) Get(key string) (Info, bool) {
	info, ok := db.entries[key]
	return info, ok
}

// Put adds or replaces the database entry keyed by key.
func (db *Database) Put(key string, info Info) {
	db.entries[key] = info
}

// Save writes the database back to disk, holding an exclusive lock file for
// the duration of the write so a concurrent writer can't interleave with
// this one. Readers (LoadDatabase) don't take any lock: a reader racing a
// writer may see a stale or an up-to-date file, never a partially written
// one, since Save writes to a temp file and renames it into place.
func (db *Database) Save() error {
	lockPath := db.path + ".lock"
	lock, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("acquiring shader database lock %s: %w", lockPath, err)
	}
	defer os.Remove(lockPath)
	defer lock.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger().Warn("shader database lock watcher unavailable", "error", err)
	} else {
		// Best-effort: a failure to watch the lock file doesn't block the
		// write. Nothing reads this watcher's events.
		if err := watcher.Add(lockPath); err != nil {
			logger().Warn("shader database lock watch failed", "path", lockPath, "error", err)
		}
		defer watcher.Close()
	}

	out := make(map[string]jsonInfo, len(db.entries))
	for key, info := range db.entries {
		out[key] = jsonInfo{
			Source:    info.Source.String(),
			Target:    info.Target.String(),
			Variables: info.Variables,
		}
	}
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding shader database %s: %w", db.path, err)
	}

	tmpPath := db.path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0o644); err != nil {
		return fmt.Errorf("writing shader database %s: %w", db.path, err)
	}
	return os.Rename(tmpPath, db.path)
}

// freshnessKey combines a set of preprocessor variables into a stable
// token. The Loader passes its CompileOptions.Variables, so a change there
// invalidates a cached binary even when the binary's file modification time
// is still newer than the source's (the mtime check alone ignores
// transitive includes). A database entry's Info.Variables is not part of
// the key: the Loader never reads it.
func freshnessKey(vars map[string]string) string {
	raw, _ := json.Marshal(vars)
	return string(raw)
}

// mtime returns path's modification time, or the zero time if it doesn't
// exist.
func mtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
