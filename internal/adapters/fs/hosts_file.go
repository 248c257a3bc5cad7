package fs

import (
	"bytes"
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"strings"
	"syscall"

	atomicfile "github.com/natefinch/atomic"
	pkgerr "github.com/pkg/errors"

	"github.com/bft-labs/hostctl/internal/domain"
	"github.com/bft-labs/hostctl/internal/ports"
	"github.com/bft-labs/hostctl/pkg/hostsfile"
	"github.com/bft-labs/hostctl/pkg/log"
)

// HostsFileStore implements ports.DocumentStore on the local file system.
type HostsFileStore struct {
	atomic bool
	logger ports.Logger
}

// NewHostsFileStore creates a store. With atomicWrite the new content is written
// to a temporary file and renamed over the target; otherwise the target is
// truncated and rewritten in place, which also works for bind-mounted files.
func NewHostsFileStore(atomicWrite bool, logger ports.Logger) *HostsFileStore {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &HostsFileStore{atomic: atomicWrite, logger: logger}
}

// Read loads and parses the file at path.
func (s *HostsFileStore) Read(ctx context.Context, path string) (*hostsfile.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := statRegular("read", path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify("read", path, err)
	}

	doc := hostsfile.ParseDocument(data)
	s.logger.Debug("hosts file read",
		log.String("path", path),
		log.Int("lines", len(doc.Lines)),
	)
	return doc, nil
}

// Write renders doc to path. The permission bits of the existing file are
// read first and applied to the new content.
//
// In-place mode is not atomic: if the write fails after the file was
// truncated, the file may be left incomplete and the returned error says so.
func (s *HostsFileStore) Write(ctx context.Context, path string, doc *hostsfile.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fi, err := statRegular("write", path)
	if err != nil {
		return err
	}

	mode := fi.Mode().Perm()
	data := []byte(doc.Render())

	if s.atomic {
		err = writeAtomic(path, data, mode)
	} else {
		err = s.writeInPlace(path, data, mode)
	}
	if err != nil {
		return err
	}

	s.logger.Debug("hosts file written",
		log.String("path", path),
		log.Int("bytes", len(data)),
		log.Bool("atomic", s.atomic),
	)
	return nil
}

func (s *HostsFileStore) writeInPlace(path string, data []byte, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return classify("open", path, err)
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		s.logger.Error("hosts file write failed after truncation, manual recovery may be needed",
			log.String("path", path),
			log.Err(werr),
		)
		return classify("write", path, werr)
	}

	return classify("chmod", path, os.Chmod(path, mode))
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	if err := atomicfile.WriteFile(path, bytes.NewReader(data)); err != nil {
		return classify("write", path, err)
	}
	return classify("chmod", path, os.Chmod(path, mode))
}

// statRegular validates path and returns its file info.
func statRegular(op, path string) (os.FileInfo, error) {
	if strings.TrimSpace(path) == "" || strings.ContainsRune(path, 0) {
		return nil, pkgerr.WithStack(&domain.PathError{Op: op, Path: path, Kind: domain.ErrMalformedPath})
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, classify(op, path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, pkgerr.WithStack(&domain.PathError{
			Op:   op,
			Path: path,
			Kind: domain.ErrMalformedPath,
			Err:  errors.New("not a regular file"),
		})
	}
	return fi, nil
}

// classify maps an OS error to a domain error kind. Returns nil for nil.
func classify(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var kind error
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		kind = domain.ErrNotFound
	case errors.Is(err, iofs.ErrPermission):
		kind = domain.ErrPermissionDenied
	case errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.ENAMETOOLONG), errors.Is(err, syscall.EISDIR):
		kind = domain.ErrMalformedPath
	default:
		return pkgerr.Wrapf(err, "%s %s", op, path)
	}
	return pkgerr.WithStack(&domain.PathError{Op: op, Path: path, Kind: kind, Err: err})
}
