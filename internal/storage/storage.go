// storage.go
//
// Lead capture, notification and admin backend for the leaddesk marketing site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of leaddesk.
// leaddesk is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// leaddesk is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with leaddesk.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/google/uuid"
	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "storage")

// PublicPrefix is the URL path uploaded files are served from
const PublicPrefix = "/uploads/"

// ErrNotFound is returned by Open for unknown files
var ErrNotFound = errors.New("file not found")

// Store persists uploaded files. Files are written once and never overwritten.
type Store interface {
	// Save writes the content and returns the public relative path (/uploads/<name>)
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	// Open returns the content of a file by its generated name or public path
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// New returns the store selected by UPLOAD_STORE
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocal(cfg.Dir)
	case "minio":
		s, err := NewMinIO(cfg)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported upload store: %s", cfg.Type)
}

// GenerateName builds a collision resistant file name for an upload slot.
// The millisecond timestamp orders files, the random part separates concurrent uploads.
func GenerateName(field, ext string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s%s", field, now.UnixMilli(), random, strings.ToLower(ext))
}

// PublicPath returns the relative path stored on submissions
func PublicPath(name string) string {
	return PublicPrefix + name
}

// CleanName reduces a public path or name to a bare file name, rejecting traversal
func CleanName(name string) (string, error) {
	name = strings.TrimPrefix(name, PublicPrefix)
	base := path.Base(name)
	if name == "" || base != name || base == "." || base == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return base, nil
}
