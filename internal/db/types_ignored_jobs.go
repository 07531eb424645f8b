package db

import (
	"time"

	"github.com/google/uuid"
)

// IgnoredJob is a posting ingestion must never re-create (spam, duplicates,
// permanent roles). Search results are not filtered against this set.
type IgnoredJob struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"companyId"`
	URL       string    `json:"url"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IgnoredJobCreateInput is used when recording an ignored posting
type IgnoredJobCreateInput struct {
	CompanyID uuid.UUID `json:"companyId" validate:"required"`
	URL       string    `json:"url" validate:"required,url"`
	Reason    string    `json:"reason,omitempty" validate:"max=1024"`
}
