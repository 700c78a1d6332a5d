// Package domain contains the core data types for the Trip Journal application.
// It is imported by every other internal package (repo, service, handler) and
// depends only on uuid.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Visibility controls who may read a trip.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityPrivate    Visibility = "private"
	VisibilityRestricted Visibility = "restricted"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityRestricted:
		return true
	}
	return false
}

// Trip represents one journey record.
// StartDate and EndDate are calendar dates: only year, month and day are
// meaningful. The slug and owner never change after creation.
type Trip struct {
	ID            uuid.UUID
	Slug          string
	OwnerID       string
	Title         string
	StartLocation string
	Destination   string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	Visibility    Visibility
	AllowedUsers  []string
	IsLive        bool // live location sharing; cleared by the auto-stop job
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VisibleTo reports whether userID may read the trip.
// An empty userID is an anonymous viewer.
func (t Trip) VisibleTo(userID string) bool {
	if userID != "" && userID == t.OwnerID {
		return true
	}
	switch t.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityRestricted:
		return userID != "" && slices.Contains(t.AllowedUsers, userID)
	}
	return false
}

// TripPatch carries the mutable fields of an update. Nil fields are left unchanged.
type TripPatch struct {
	Title         *string
	StartLocation *string
	Destination   *string
	Description   *string
	StartDate     *time.Time
	EndDate       *time.Time
	Visibility    *Visibility
	AllowedUsers  []string
	IsLive        *bool
}

// Apply returns a copy of t with the non-nil patch fields applied.
func (p TripPatch) Apply(t Trip) Trip {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.StartLocation != nil {
		t.StartLocation = *p.StartLocation
	}
	if p.Destination != nil {
		t.Destination = *p.Destination
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Visibility != nil {
		t.Visibility = *p.Visibility
	}
	if p.AllowedUsers != nil {
		t.AllowedUsers = slices.Clone(p.AllowedUsers)
	}
	if p.IsLive != nil {
		t.IsLive = *p.IsLive
	}
	return t
}

// ChangesDates reports whether applying the patch may move the trip's date range.
func (p TripPatch) ChangesDates() bool {
	return p.StartDate != nil || p.EndDate != nil
}

// SlugEntry is one row of the slug uniqueness index.
// An entry exists if and only if a trip with that slug exists.
type SlugEntry struct {
	Slug      string
	TripID    uuid.UUID
	OwnerID   string
	CreatedAt time.Time
}

// TripEvent describes a change to one of an owner's trips.
// It is published after the change commits and drives the live trip feed.
type TripEvent struct {
	Type    string    `json:"type"`
	OwnerID string    `json:"owner_id"`
	TripID  uuid.UUID `json:"trip_id"`
	At      time.Time `json:"at"`
}

// Trip event types.
const (
	EventTripCreated = "trip.created"
	EventTripUpdated = "trip.updated"
	EventTripDeleted = "trip.deleted"
	EventTripStopped = "trip.stopped"

	// EventSnapshot labels the first live feed frame, sent before any change.
	EventSnapshot = "snapshot"
)

// MediaUpload is a presigned upload slot for a trip media object.
type MediaUpload struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}
