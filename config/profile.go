package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Profile holds the shop owner's business settings. The assistant reads it to
// build its system prompt and to fill omitted tool arguments (UPI id, shop
// name); it only ever writes through the explicit settings tools.
type Profile struct {
	Name     string `toml:"name"`
	ShopName string `toml:"shop_name"`
	UPIID    string `toml:"upi_id"`
	Email    string `toml:"email"`
	Language string `toml:"language"`
	ShowCP   bool   `toml:"show_cp"` // show cost price on inventory screens
}

// ProfileUpdate carries a partial update: nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string
	ShopName *string
	UPIID    *string
	Email    *string
	Language *string
	ShowCP   *bool
}

// ProfileStore persists the profile as TOML under the data directory.
// Reads return a copy; concurrent readers never observe a partial write.
type ProfileStore struct {
	path    string
	mu      sync.RWMutex
	profile Profile
}

// LoadProfileStore loads (or creates) the profile file in dataDir.
func LoadProfileStore(dataDir string) (*ProfileStore, error) {
	path := filepath.Join(dataDir, "profile.toml")
	store := &ProfileStore{
		path: path,
		profile: Profile{
			Language: "en",
		},
	}

	if !FileExists(path) {
		if err := store.save(); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return store, nil
	}

	if _, err := toml.DecodeFile(path, &store.profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	return store, nil
}

// Get returns a snapshot copy of the profile.
func (s *ProfileStore) Get() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Apply applies a partial update and persists. Omitted (nil) fields are
// untouched; boolean fields are compared against the current value so a
// no-op toggle does not touch disk.
func (s *ProfileStore) Apply(update ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	if update.Name != nil && *update.Name != s.profile.Name {
		s.profile.Name = *update.Name
		changed = true
	}
	if update.ShopName != nil && *update.ShopName != s.profile.ShopName {
		s.profile.ShopName = *update.ShopName
		changed = true
	}
	if update.UPIID != nil && *update.UPIID != s.profile.UPIID {
		s.profile.UPIID = *update.UPIID
		changed = true
	}
	if update.Email != nil && *update.Email != s.profile.Email {
		s.profile.Email = *update.Email
		changed = true
	}
	if update.Language != nil && *update.Language != s.profile.Language {
		s.profile.Language = *update.Language
		changed = true
	}
	if update.ShowCP != nil && *update.ShowCP != s.profile.ShowCP {
		s.profile.ShowCP = *update.ShowCP
		changed = true
	}

	if !changed {
		return nil
	}

	return s.save()
}

// SetShopName persists a new shop name.
func (s *ProfileStore) SetShopName(name string) error {
	return s.Apply(ProfileUpdate{ShopName: &name})
}

// SetUPIID persists a new UPI id.
func (s *ProfileStore) SetUPIID(upiID string) error {
	return s.Apply(ProfileUpdate{UPIID: &upiID})
}

// ToggleShowCP flips the cost-price visibility flag and persists.
func (s *ProfileStore) ToggleShowCP() error {
	s.mu.RLock()
	next := !s.profile.ShowCP
	s.mu.RUnlock()
	return s.Apply(ProfileUpdate{ShowCP: &next})
}

// save writes the profile under the caller's lock (or at construction).
func (s *ProfileStore) save() error {
	// 0600 - contains the owner's UPI id and email
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(s.profile); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	return nil
}
