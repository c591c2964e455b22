package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/dot5enko/copper/dataset"
	"github.com/dot5enko/copper/metadata"
	"github.com/dot5enko/copper/schema"
	"github.com/dot5enko/copper/table"
	"github.com/google/uuid"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type Config struct {
	PathToStorage string

	Logger *slog.Logger
}

// Catalog keeps dataset snapshots under one storage folder, one sub folder
// per snapshot id.
type Catalog struct {
	manifests map[uuid.UUID]*Manifest
	lock      sync.RWMutex

	config Config
	logger *slog.Logger
}

func NewCatalog(config Config) *Catalog {

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Catalog{
		manifests: map[uuid.UUID]*Manifest{},
		config:    config,
		logger:    logger,
	}
}

func (c *Catalog) getAbsStoragePath(segments ...string) string {

	pathSegments := []string{c.config.PathToStorage}
	pathSegments = append(pathSegments, segments...)

	return filepath.Join(pathSegments...)
}

func (c *Catalog) createStoragePathIfNotExists(segments ...string) (string, error) {
	storagePath := c.getAbsStoragePath(segments...)

	if _, err := os.Stat(storagePath); err != nil {
		storageFolderErr := os.MkdirAll(storagePath, 0755)
		if storageFolderErr != nil {
			return "", storageFolderErr
		}
	}

	return storagePath, nil
}

func (c *Catalog) addManifest(m *Manifest) {

	c.lock.Lock()
	defer c.lock.Unlock()

	c.manifests[m.Uid] = m
}

func (c *Catalog) Manifest(id uuid.UUID) (*Manifest, error) {

	c.lock.RLock()
	defer c.lock.RUnlock()

	m, ok := c.manifests[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id.String())
	}

	return m, nil
}

// List returns known snapshot ids, oldest first.
func (c *Catalog) List() []uuid.UUID {

	c.lock.RLock()
	defer c.lock.RUnlock()

	result := make([]uuid.UUID, 0, len(c.manifests))
	for id := range c.manifests {
		result = append(result, id)
	}

	// v7 ids sort by creation time
	slices.SortFunc(result, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	return result
}

// Save writes the dataset under its own id, replacing an earlier snapshot of
// the same dataset.
func (c *Catalog) Save(ds *dataset.Dataset) (*Manifest, error) {

	id := ds.ID()

	if _, err := c.createStoragePathIfNotExists(id.String()); err != nil {
		return nil, fmt.Errorf("unable to create snapshot folder : %w", err)
	}

	frame := ds.Frame()

	manifest := &Manifest{
		Uid:     id,
		Created: time.Now().UTC(),
		Rows:    frame.RowsCount(),
		Columns: make([]ManifestColumn, frame.ColumnsCount()),
	}

	for i := range manifest.Columns {
		col := frame.At(i)
		manifest.Columns[i] = ManifestColumn{
			Key:     schema.LabelKey(col.Label),
			Kind:    schema.LabelKind(col.Label),
			Numeric: col.IsNumeric(),
			Missing: missingRows(col),
		}
	}

	var metaBuf bytes.Buffer
	if err := ds.WriteMetadata(&metaBuf); err != nil {
		return nil, fmt.Errorf("unable to encode metadata : %w", err)
	}

	if err := c.snapshotFile(id, metadataFile).write(metaBuf.Bytes()); err != nil {
		return nil, fmt.Errorf("unable to write metadata : %w", err)
	}

	if frame.ColumnsCount() > 0 && frame.RowsCount() > 0 {

		data := c.snapshotFile(id, dataFile)

		w, err := data.create()
		if err != nil {
			return nil, fmt.Errorf("unable to write data : %w", err)
		}

		manifest.CompressedSize, manifest.UncompressedSize, err = writeData(w, frame)
		closeErr := data.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, fmt.Errorf("unable to write data : %w", closeErr)
		}
	}

	manifestBytes, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("unable to encode manifest : %w", err)
	}

	if err := c.snapshotFile(id, manifestFile).write(manifestBytes); err != nil {
		return nil, fmt.Errorf("unable to write manifest : %w", err)
	}

	c.addManifest(manifest)

	c.logger.Info("saved snapshot", "snapshot", id, "columns", len(manifest.Columns), "rows", manifest.Rows, "compressed_size", manifest.CompressedSize)

	return manifest, nil
}

func (c *Catalog) loadTable(id uuid.UUID, m *Manifest) (*table.Table, error) {

	if len(m.Columns) == 0 || m.Rows == 0 {
		columns := make([]table.Column, len(m.Columns))
		for i, mc := range m.Columns {
			col, err := decodeColumn(mc, nil)
			if err != nil {
				return nil, err
			}
			columns[i] = col
		}
		return table.New(columns...)
	}

	data := c.snapshotFile(id, dataFile)

	r, err := data.open()
	if err != nil {
		return nil, err
	}
	defer data.Close()

	return readData(r, m)
}

// Load rebuilds a saved dataset with its id, values and tags.
func (c *Catalog) Load(id uuid.UUID) (*dataset.Dataset, error) {

	m, err := c.Manifest(id)
	if err != nil {
		return nil, err
	}

	t, err := c.loadTable(id, m)
	if err != nil {
		return nil, fmt.Errorf("unable to load snapshot %s : %w", id.String(), err)
	}

	meta := c.snapshotFile(id, metadataFile)

	r, err := meta.open()
	if err != nil {
		return nil, err
	}
	defer meta.Close()

	rows, err := metadata.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read snapshot metadata : %w", err)
	}

	entries, err := metadata.Resolve(rows, t.Labels())
	if err != nil {
		return nil, err
	}

	return dataset.Restore(dataset.Config{Logger: c.logger}, id, t, entries)
}

func (c *Catalog) Remove(id uuid.UUID) error {

	if _, err := c.Manifest(id); err != nil {
		return err
	}

	if err := os.RemoveAll(c.getAbsStoragePath(id.String())); err != nil {
		return err
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.manifests, id)

	return nil
}

// LoadManifestsFromDisk registers every snapshot folder found in storage.
// Folders without a readable manifest are skipped.
func (c *Catalog) LoadManifestsFromDisk() error {

	entries, err := os.ReadDir(c.config.PathToStorage)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) { // no snapshots yet
			return nil
		}
		return err
	}

	for _, e := range entries {

		if !e.IsDir() {
			continue
		}

		content, readErr := os.ReadFile(c.getAbsStoragePath(e.Name(), manifestFile))
		if readErr != nil {
			c.logger.Warn("skipping snapshot folder", "folder", e.Name(), "error", readErr)
			continue
		}

		var m Manifest
		if err := json.Unmarshal(content, &m); err != nil {
			c.logger.Warn("skipping snapshot folder", "folder", e.Name(), "error", err)
			continue
		}

		c.addManifest(&m)
		c.logger.Info("loaded snapshot from disk", "snapshot", m.Uid, "columns", len(m.Columns), "rows", m.Rows)
	}

	return nil
}
