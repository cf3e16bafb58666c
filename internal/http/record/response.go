package record

import (
	"time"

	"github.com/lux2ube/Customer-service-sub002/internal/record"
)

type recordResponse struct {
	ID              string        `json:"id"`
	Kind            record.Kind   `json:"kind"`
	Type            record.Type   `json:"type"`
	Date            time.Time     `json:"date"`
	Amount          int64         `json:"amount"`
	Currency        string        `json:"currency"`
	AmountUSD       int64         `json:"amount_usd"`
	Status          record.Status `json:"status"`
	Flagged         bool          `json:"flagged"`
	ClientID        *int64        `json:"client_id,omitempty"`
	TransferEntryID *string       `json:"transfer_entry_id,omitempty"`
	SuspenseBefore  *int64        `json:"suspense_before,omitempty"`
	SuspenseAfter   *int64        `json:"suspense_after,omitempty"`
	SenderName      string        `json:"sender_name,omitempty"`
	RawMessage      string        `json:"raw_message,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

func toResponse(rec *record.Record) recordResponse {
	return recordResponse{
		ID:              rec.ID,
		Kind:            rec.Kind,
		Type:            rec.Type,
		Date:            rec.Date,
		Amount:          rec.Amount,
		Currency:        rec.Currency,
		AmountUSD:       rec.AmountUSD,
		Status:          rec.Status,
		Flagged:         rec.Flagged,
		ClientID:        rec.ClientID,
		TransferEntryID: rec.TransferEntryID,
		SuspenseBefore:  rec.SuspenseBefore,
		SuspenseAfter:   rec.SuspenseAfter,
		SenderName:      rec.SenderName,
		RawMessage:      rec.RawMessage,
		CreatedAt:       rec.CreatedAt,
	}
}

func toResponseList(recs []*record.Record) []recordResponse {
	resp := make([]recordResponse, len(recs))
	for i, rec := range recs {
		resp[i] = toResponse(rec)
	}

	return resp
}
