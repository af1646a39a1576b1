package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"giftmarketBack/internal/models"
	"giftmarketBack/utils"
)

// ListingRepository persists the whole listing collection in a single JSON
// file. Every operation is a full read-modify-write cycle; the mutex
// serializes them so a moderation call can never overwrite a concurrent
// create (lost-update hardening, see DESIGN.md).
type ListingRepository struct {
	DataFile string

	mu sync.Mutex
}

func (r *ListingRepository) LoadAll(ctx context.Context) ([]models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *ListingRepository) SaveAll(ctx context.Context, listings []models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(listings)
}

// Update runs a load -> mutate -> save cycle under the store lock. fn gets the
// current collection and returns the collection to persist; returning an error
// aborts the cycle without touching the file.
func (r *ListingRepository) Update(ctx context.Context, fn func([]models.Listing) ([]models.Listing, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listings, err := r.loadLocked()
	if err != nil {
		return err
	}
	updated, err := fn(listings)
	if err != nil {
		return err
	}
	return r.saveLocked(updated)
}

func (r *ListingRepository) loadLocked() ([]models.Listing, error) {
	data, err := os.ReadFile(r.DataFile)
	if os.IsNotExist(err) {
		// First access initializes an empty collection file.
		if err := r.saveLocked(nil); err != nil {
			return nil, err
		}
		return []models.Listing{}, nil
	}
	if err != nil {
		return nil, err
	}

	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("corrupt listings file %s: %w", r.DataFile, err)
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}

// saveLocked overwrites the collection atomically: marshal, write a temp file
// next to the target, fsync, rename. An interrupted write leaves the previous
// file intact.
func (r *ListingRepository) saveLocked(listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}

	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.DataFile); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	suffix, err := utils.RandomHex(8)
	if err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.%s.tmp", r.DataFile, suffix)

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, r.DataFile); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// FindIndexByID returns the position of the listing with the given id, or -1
// when absent.
func FindIndexByID(listings []models.Listing, id string) int {
	for i, listing := range listings {
		if listing.ID == id {
			return i
		}
	}
	return -1
}
