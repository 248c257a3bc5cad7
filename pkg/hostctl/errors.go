package hostctl

import (
	"errors"

	"github.com/bft-labs/hostctl/internal/domain"
	"github.com/bft-labs/hostctl/pkg/hostsfile"
)

// Errors returned by Hosts operations. Check them with errors.Is.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrPermissionDenied = domain.ErrPermissionDenied
	ErrLockTimeout      = domain.ErrLockTimeout
	ErrMalformedPath    = domain.ErrMalformedPath
	ErrInvalidConfig    = domain.ErrInvalidConfig
	ErrInvalidEntry     = hostsfile.ErrInvalidEntry
)

// ErrAbort can be returned by a Mutation to end an update without writing.
var ErrAbort = errors.New("hostctl: abort")

// PathError describes a failed operation on a target file.
type PathError = domain.PathError
