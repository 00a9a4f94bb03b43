// Package upload stores the uploaded store images.
//
// Files are named <unix millis>-<original file name>. Two uploads of the same
// file name in the same millisecond would collide; the later one then gets a
// short random infix instead of overwriting the earlier image.
package upload

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	fallbackName = "upload"
	infixLen     = 8
)

// Saver writes images into a directory of an afero filesystem.
type Saver struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// New returns a Saver writing into dir on fsys.
func New(fsys afero.Fs, dir string) *Saver {
	return &Saver{
		fs:  fsys,
		dir: dir,
		now: time.Now,
	}
}

// NewOS returns a Saver writing into dir on the local disk.
func NewOS(dir string) *Saver {
	return New(afero.NewOsFs(), dir)
}

// Dir is the directory images are written to.
func (s *Saver) Dir() string {
	return s.dir
}

// Init creates the upload directory.
func (s *Saver) Init() error {
	if err := s.fs.MkdirAll(s.dir, dirPerm); err != nil {
		return errors.Wrapf(err, "failed to create upload dir %s", s.dir)
	}

	return nil
}

// Save copies src into a new file named after originalName and returns the
// stored file name, relative to Dir.
func (s *Saver) Save(originalName string, src io.Reader) (string, error) {
	name := FileName(s.now(), originalName)

	f, err := s.create(name)
	if errors.Is(err, fs.ErrExist) {
		name = withInfix(name, uuid.NewString()[:infixLen])
		f, err = s.create(name)
	}

	if err != nil {
		return "", errors.Wrap(err, "failed to create upload file")
	}

	if _, err = io.Copy(f, src); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(filepath.Join(s.dir, name))

		return "", errors.Wrap(err, "failed to write upload file")
	}

	if err = f.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close upload file")
	}

	return name, nil
}

// Remove deletes a previously saved file.
func (s *Saver) Remove(name string) error {
	if err := s.fs.Remove(filepath.Join(s.dir, filepath.Base(name))); err != nil {
		return errors.Wrapf(err, "failed to remove upload %s", name)
	}

	return nil
}

func (s *Saver) create(name string) (afero.File, error) {
	return s.fs.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm) //nolint:wrapcheck
}

// FileName is the stored name of originalName uploaded at t.
// Directory parts of originalName are dropped.
func FileName(t time.Time, originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, `\`, "/"))
	if base == "." || base == "/" || base == ".." {
		base = fallbackName
	}

	return fmt.Sprintf("%d-%s", t.UnixMilli(), base)
}

// withInfix turns "<millis>-<name>" into "<millis>-<infix>-<name>".
func withInfix(name, infix string) string {
	millis, rest, _ := strings.Cut(name, "-")

	return millis + "-" + infix + "-" + rest
}
