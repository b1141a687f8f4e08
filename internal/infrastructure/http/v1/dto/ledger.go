package dto

import (
	"time"

	"bayanihan/internal/domain/ledger"
)

// LedgerEntryResponse is the API shape of one ledger entry.
type LedgerEntryResponse struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"itemId"`
	ActorID       *string   `json:"actorId,omitempty"`
	Kind          string    `json:"kind"`
	Delta         int64     `json:"delta"`
	Before        int64     `json:"before"`
	After         int64     `json:"after"`
	Note          string    `json:"note,omitempty"`
	ReferenceID   *string   `json:"referenceId,omitempty"`
	ReferenceKind string    `json:"referenceKind,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromLedgerEntry creates LedgerEntryResponse from a domain entry.
func FromLedgerEntry(e *ledger.Entry) *LedgerEntryResponse {
	resp := &LedgerEntryResponse{
		ID:            e.ID.String(),
		ItemID:        e.ItemID.String(),
		Kind:          string(e.Kind),
		Delta:         e.Delta,
		Before:        e.Before,
		After:         e.After,
		Note:          e.Note,
		ReferenceKind: e.ReferenceKind,
		CreatedAt:     e.CreatedAt,
	}
	if e.ActorID != nil {
		s := e.ActorID.String()
		resp.ActorID = &s
	}
	if e.ReferenceID != nil {
		s := e.ReferenceID.String()
		resp.ReferenceID = &s
	}
	return resp
}

// FromLedgerEntries maps a slice of domain entries.
func FromLedgerEntries(entries []*ledger.Entry) []*LedgerEntryResponse {
	out := make([]*LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = FromLedgerEntry(e)
	}
	return out
}
