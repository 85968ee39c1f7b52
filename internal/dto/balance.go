package dto

import "time"

type BalanceResponseDTO struct {
	Current   int64 `json:"current" example:"50050"`
	Escrowed  int64 `json:"escrowed" example:"2000"`
	Withdrawn int64 `json:"withdrawn" example:"4200"`
}

type WithdrawRequestDTO struct {
	Destination string `json:"destination" example:"2377225624"`
	Sum         int64  `json:"sum" example:"1500"`
}

type WithdrawResponseDTO struct {
	Reference string `json:"reference" example:"b2a7d9e4-31f0-4f0a-bb4e-61b1a0f3c6d2"`
	Sum       int64  `json:"sum" example:"1500"`
}

type LedgerEntryResponseDTO struct {
	ID        string    `json:"id" example:"b2a7d9e4-31f0-4f0a-bb4e-61b1a0f3c6d2"`
	Kind      string    `json:"kind" example:"deposit"`
	Amount    int64     `json:"amount" example:"5000"`
	Status    string    `json:"status" example:"completed"`
	CreatedAt time.Time `json:"created_at" example:"2024-11-02T16:09:57+03:00"`
}
