// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	onReload func(ok bool)
}

// WithReloadHook registers a callback invoked after every reload attempt
// with its outcome. Used by callers to record reload metrics.
func WithReloadHook(fn func(ok bool)) WatchOption {
	return func(o *watchOptions) {
		o.onReload = fn
	}
}

// Watch reloads the registry data file whenever it changes on disk and
// atomically swaps the new snapshot into the handle. A reload that fails to
// parse keeps the previous snapshot; the failure is logged and watching
// continues. Watch blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself because many
// editors replace files via rename, which drops a direct file watch.
func Watch(ctx context.Context, path string, handle *Handle, logger *slog.Logger, opts ...WatchOption) error {
	var options watchOptions
	for _, opt := range opts {
		opt(&options)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(path)
	logger.Debug("watching registry data", "path", target)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			next, err := Load(target)
			if options.onReload != nil {
				options.onReload(err == nil)
			}
			if err != nil {
				logger.Error("registry reload failed, keeping previous snapshot",
					"path", target, "error", err)
				continue
			}
			handle.Swap(next)
			logger.Info("registry reloaded", "path", target, "actions", next.Len())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("registry watch error", "error", err)
		}
	}
}
