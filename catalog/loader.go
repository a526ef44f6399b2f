package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/orbital-cdn/model"
)

// internal JSON shapes – kept unexported so we're free to evolve them.
type catalogJSON struct {
	Contents []contentJSON `json:"contents"`
}

type contentJSON struct {
	ID         string  `json:"id"`
	SizeMB     float64 `json:"size_mb"`
	Type       string  `json:"type"`
	Popularity float64 `json:"popularity"`
}

// Load reads a JSON catalog from r and populates c. It fails on JSON errors,
// empty IDs, and duplicate IDs; entries added before a failure remain.
func Load(c *Catalog, r io.Reader) error {
	if c == nil {
		return fmt.Errorf("catalog.Load: catalog is nil")
	}

	var payload catalogJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("catalog.Load: decode failed: %w", err)
	}

	for _, jc := range payload.Contents {
		ref := model.ContentRef{
			ID:         jc.ID,
			SizeBytes:  int64(jc.SizeMB * 1024 * 1024),
			Type:       model.ContentType(jc.Type),
			Popularity: jc.Popularity,
		}
		if err := c.Add(ref); err != nil {
			return fmt.Errorf("catalog.Load: %w", err)
		}
	}
	return nil
}
