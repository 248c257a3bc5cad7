package ports

import (
	"context"

	"github.com/bft-labs/hostctl/pkg/hostsfile"
)

// DocumentStore is the file access facade for hosts files.
type DocumentStore interface {
	// Read loads and parses the file at path.
	// Returns an error wrapping domain.ErrNotFound, domain.ErrPermissionDenied
	// or domain.ErrMalformedPath when the file cannot be read.
	Read(ctx context.Context, path string) (*hostsfile.Document, error)

	// Write renders doc to path, keeping the permission bits of the existing file.
	Write(ctx context.Context, path string, doc *hostsfile.Document) error
}
