package store

import (
	"errors"
	"io"
	"os"

	"github.com/google/uuid"
)

// snapshotFile is one file inside a snapshot folder.
type snapshotFile struct {
	path string
	file *os.File
}

func (c *Catalog) snapshotFile(id uuid.UUID, name string) *snapshotFile {
	return &snapshotFile{path: c.getAbsStoragePath(id.String(), name)}
}

// create truncates an existing file: saving a dataset again replaces its
// previous snapshot.
func (f *snapshotFile) create() (io.Writer, error) {

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}

	f.file = file
	return file, nil
}

func (f *snapshotFile) open() (io.Reader, error) {

	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}

	f.file = file
	return file, nil
}

func (f *snapshotFile) Close() error {

	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil

	return err
}

// write replaces the file content.
func (f *snapshotFile) write(content []byte) error {

	w, err := f.create()
	if err != nil {
		return err
	}

	written, err := w.Write(content)
	if err != nil {
		f.Close()
		return err
	}

	if written != len(content) {
		f.Close()
		return errors.New("written bytes mismatch")
	}

	return f.Close()
}
