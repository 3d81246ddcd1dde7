package domain

import (
	"errors"
	"strings"
	"time"
)

// Asset is a shareable resource scoped inside a data space. BelongsTo is a
// back-reference by id only; the data space document holds no list of its
// assets. Membership is an independent selection, not inherited.
type Asset struct {
	ID              string
	BelongsTo       string
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
	Records         []AssetRecord
	Tags            []string
	Category        string
	Extra           []Statement
}

func (a Asset) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("asset id is required")
	}
	if strings.TrimSpace(a.BelongsTo) == "" {
		return errors.New("asset data space id is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("asset title is required")
	}
	if !a.Access.Valid() {
		return errors.New("access mode must be one of: public, private, restricted")
	}
	if strings.TrimSpace(a.CreatedBy) == "" {
		return errors.New("asset creator is required")
	}
	for _, m := range a.Members {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	for _, md := range a.Metadata {
		if err := md.Validate(); err != nil {
			return err
		}
	}
	for _, r := range a.Records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (a Asset) AdminCount() int {
	n := 0
	for _, m := range a.Members {
		if m.Role == RoleAdmin {
			n++
		}
	}
	return n
}
