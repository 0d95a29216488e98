package config

import (
	"fmt"

	"github.com/censuskit/censuskit/folder_sync"
)

// File is a parsed collection spec. A spec holds any number of collection
// blocks (multi-year county fetches) and sync blocks (remote folder mirrors).
type File struct {
	Collections []*Collection `hcl:"collection,block"`
	Syncs       []*Sync       `hcl:"sync,block"`
}

// Collection describes one multi-year county fetch.
type Collection struct {
	Name      string   `hcl:"name,label"`
	StartYear int      `hcl:"start_year"`
	EndYear   int      `hcl:"end_year"`
	VarCodes  []string `hcl:"var_codes"`
	VarNames  []string `hcl:"var_names"`
	// Output is a filename under the data directory; when unset the result is
	// not persisted
	Output *string `hcl:"output,optional"`
}

// Sync describes one remote folder to mirror locally.
type Sync struct {
	Name        string   `hcl:"name,label"`
	Source      string   `hcl:"source"`
	Bucket      string   `hcl:"bucket"`
	Prefix      *string  `hcl:"prefix,optional"`
	Destination string   `hcl:"destination"`
	Credentials *string  `hcl:"credentials,optional"`
	Region      *string  `hcl:"region,optional"`
	Extensions  []string `hcl:"extensions,optional"`
}

func (f *File) Validate() error {
	for _, c := range f.Collections {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("collection %q: %w", c.Name, err)
		}
	}
	for _, s := range f.Syncs {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sync %q: %w", s.Name, err)
		}
	}
	return nil
}

func (c *Collection) Validate() error {
	if c.StartYear > c.EndYear {
		return fmt.Errorf("start_year %d is after end_year %d", c.StartYear, c.EndYear)
	}
	if len(c.VarCodes) == 0 {
		return fmt.Errorf("var_codes must not be empty")
	}
	if len(c.VarCodes) != len(c.VarNames) {
		return fmt.Errorf("var_codes has %d entries, var_names has %d - they must align", len(c.VarCodes), len(c.VarNames))
	}
	return nil
}

func (s *Sync) Validate() error {
	switch s.Source {
	case folder_sync.GcpStorageFolderSourceIdentifier, folder_sync.AwsS3FolderSourceIdentifier:
	default:
		return fmt.Errorf("unknown source %q", s.Source)
	}
	if s.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if s.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	return nil
}
