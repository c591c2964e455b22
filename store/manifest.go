package store

import (
	"time"

	"github.com/google/uuid"
)

const (
	manifestFile = "manifest.json"
	metadataFile = "metadata.csv"
	dataFile     = "data.csv.lz4"
)

type ManifestColumn struct {
	Key     string `json:"key"`
	Kind    string `json:"label_kind"`
	Numeric bool   `json:"numeric"`

	// rows holding no value
	Missing []int `json:"missing,omitempty"`
}

// Manifest describes one saved dataset.
type Manifest struct {
	Uid     uuid.UUID        `json:"uuid"`
	Created time.Time        `json:"created"`
	Rows    int              `json:"rows"`
	Columns []ManifestColumn `json:"columns"`

	CompressedSize   int `json:"compressed_size"`
	UncompressedSize int `json:"uncompressed_size"`
}
