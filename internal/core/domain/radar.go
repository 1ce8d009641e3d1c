package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxRadarNameLength is the longest allowed radar name.
const MaxRadarNameLength = 64

// Radar is a named collection of repositories curated by the user.
type Radar struct {
	// ID uniquely identifies the radar.
	ID string

	// Name is the user-chosen display name.
	Name string

	// Description is an optional free-form description.
	Description string

	// RepoIDs are the upstream ids of the member repositories, in
	// insertion order.
	RepoIDs []int64

	// CreatedAt is when the radar was created.
	CreatedAt time.Time

	// UpdatedAt is when the radar was last modified.
	UpdatedAt time.Time
}

// Validate checks that the radar is well-formed.
func (r *Radar) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("%w: radar name is required", ErrInvalidInput)
	}
	if len(name) > MaxRadarNameLength {
		return fmt.Errorf("%w: radar name exceeds %d characters", ErrInvalidInput, MaxRadarNameLength)
	}
	return nil
}

// Contains reports whether the repository is a member of the radar.
func (r *Radar) Contains(repoID int64) bool {
	for _, id := range r.RepoIDs {
		if id == repoID {
			return true
		}
	}
	return false
}

// AddRepo appends the repository to the radar. Adding an existing
// member is a no-op. Returns true if the radar changed.
func (r *Radar) AddRepo(repoID int64) bool {
	if r.Contains(repoID) {
		return false
	}
	r.RepoIDs = append(r.RepoIDs, repoID)
	return true
}

// RemoveRepo removes the repository from the radar. Returns true if
// the radar changed.
func (r *Radar) RemoveRepo(repoID int64) bool {
	for i, id := range r.RepoIDs {
		if id == repoID {
			r.RepoIDs = append(r.RepoIDs[:i], r.RepoIDs[i+1:]...)
			return true
		}
	}
	return false
}
