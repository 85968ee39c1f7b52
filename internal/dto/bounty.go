package dto

import "time"

type CreateBountyRequestDTO struct {
	Amount int64 `json:"amount" example:"2000"`
}

type BountyResponseDTO struct {
	ID          string    `json:"id" example:"5c9f0f3e-9d3c-4a52-8a4e-2f9b1a6d7c10"`
	PosterID    int       `json:"poster_id" example:"1"`
	WorkerID    *int      `json:"worker_id,omitempty" example:"2"`
	Amount      int64     `json:"amount" example:"2000"`
	Status      string    `json:"status" example:"in_progress"`
	EscrowState string    `json:"escrow_state" example:"held"`
	CreatedAt   time.Time `json:"created_at" example:"2024-11-02T16:09:57+03:00"`
}
