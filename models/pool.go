package models

import "time"

// PoolPreviewLimit is the number of participant avatars returned with a pool summary
const PoolPreviewLimit = 4

// Pool is a betting group identified by a unique join code
type Pool struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	OwnerID   *string   `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasOwner reports whether ownership of the pool has been claimed
func (p *Pool) HasOwner() bool {
	return p.OwnerID != nil
}

// PoolOwner is the owner as shown in pool listings
type PoolOwner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParticipantPreviewUser carries the user fields shown in a participant preview
type ParticipantPreviewUser struct {
	AvatarURL *string `json:"avatarUrl"`
}

// ParticipantPreview is a participant as shown in pool listings
type ParticipantPreview struct {
	ID   string                 `json:"id"`
	User ParticipantPreviewUser `json:"user"`
}

// PoolSummary is the read projection returned by pool list and detail endpoints
type PoolSummary struct {
	Pool
	Owner            *PoolOwner           `json:"owner"`
	ParticipantCount int                  `json:"participantCount"`
	Participants     []ParticipantPreview `json:"participants"`
}
