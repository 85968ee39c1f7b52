package dto

import "encoding/json"

// PaymentEventDTO is the envelope of an inbound processor notification. The
// raw body must be signature-verified before this is decoded.
type PaymentEventDTO struct {
	ID      string          `json:"id" example:"evt_1Nv0q2"`
	Type    string          `json:"type" example:"funds-settled"`
	Payload json.RawMessage `json:"data"`
}

type FundsPayloadDTO struct {
	UserID int   `json:"user_id" example:"1"`
	Amount int64 `json:"amount" example:"5000"`
}

type TransferPayloadDTO struct {
	TransferID string `json:"transfer_id" example:"tr_8fa1c"`
}

type PayoutPayloadDTO struct {
	PayoutID string `json:"payout_id" example:"po_55e01"`
	UserID   int    `json:"user_id" example:"1"`
}

type AccountPayloadDTO struct {
	AccountID      string `json:"account_id" example:"acct_9921b"`
	PayoutsEnabled bool   `json:"payouts_enabled" example:"true"`
}

type BountyPayloadDTO struct {
	BountyID string `json:"bounty_id" example:"5c9f0f3e-9d3c-4a52-8a4e-2f9b1a6d7c10"`
}
