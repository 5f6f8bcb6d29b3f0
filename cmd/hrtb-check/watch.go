/*
 * Cadence HRTB - Rank-N trait bound analysis
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/crypto/blake2b"
)

// watch checks the files, and checks each file again when it is written.
// It returns when the context is done.
func (c *checker) watch(ctx context.Context, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := map[string]string{}
	digests := map[string][blake2b.Size256]byte{}

	for _, path := range paths {
		// watch the directory, so replaced files are seen
		directory := filepath.Dir(path)
		if err := watcher.Add(directory); err != nil {
			return err
		}
		watched[filepath.Clean(path)] = path

		c.checkFile(ctx, path, digests)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path, ok := watched[filepath.Clean(event.Name)]
			if !ok {
				continue
			}

			c.logger.Debug().Str("path", path).Msg("file changed")
			c.checkFile(ctx, path, digests)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Error().Err(err).Msg("watch error")
		}
	}
}

// checkFile checks the file, unless its content is unchanged since the last check.
// Editors often emit several events for one save.
func (c *checker) checkFile(ctx context.Context, path string, digests map[string][blake2b.Size256]byte) {
	data, err := os.ReadFile(path)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("failed to read file")
		return
	}

	digest := blake2b.Sum256(data)
	if previous, ok := digests[path]; ok && previous == digest {
		return
	}
	digests[path] = digest

	inputs, err := readInputs(path, bytes.NewReader(data))
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("failed to read file")
		return
	}

	failed, err := c.check(ctx, inputs)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("failed to check file")
		return
	}

	if !failed {
		c.logger.Info().Str("path", path).Msg("no problems found")
	}
}
