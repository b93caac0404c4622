package source

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"
)

// FileSource reads documents from the local filesystem.
type FileSource struct{}

// Fetch opens a file:// location or a bare path.
func (FileSource) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(filePath(location))
}

func filePath(location string) string {
	if !strings.HasPrefix(location, "file://") {
		return location
	}
	u, err := url.Parse(location)
	if err != nil {
		return strings.TrimPrefix(location, "file://")
	}
	return u.Path
}
