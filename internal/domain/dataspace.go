package domain

import (
	"errors"
	"strings"
	"time"
)

// DataSpace is a top-level shared collection living in its creator's pod.
// It is never physically removed; deletion flips Active off, because other
// holders of the document cannot have their copies revoked.
type DataSpace struct {
	ID              string
	Title           string
	Description     string
	Purpose         string
	Access          AccessMode
	StorageLocation string
	CreatedBy       string
	CreatedAt       time.Time
	Active          bool
	Members         []Member
	Metadata        []Metadata
	Tags            []string
	Category        string
	// Extra carries foreign statements preserved from the backing document.
	Extra []Statement
}

func (d DataSpace) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("data space id is required")
	}
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("data space title is required")
	}
	if !d.Access.Valid() {
		return errors.New("access mode must be one of: public, private, restricted")
	}
	if strings.TrimSpace(d.CreatedBy) == "" {
		return errors.New("data space creator is required")
	}
	for _, m := range d.Members {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	for _, md := range d.Metadata {
		if err := md.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AdminCount reports how many members hold the admin role.
func (d DataSpace) AdminCount() int {
	n := 0
	for _, m := range d.Members {
		if m.Role == RoleAdmin {
			n++
		}
	}
	return n
}
