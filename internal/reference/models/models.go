// Package models holds the static reference entities: rarely-changing
// lookup rows seeded once at startup.
package models

// GenderType is one row of the seeded gender lookup table.
type GenderType struct {
	ID          int64  `json:"gender_id"`
	GenderName  string `json:"gender_name"`
	SortOrder   int64  `json:"sort_order"`
	Description string `json:"description,omitempty"`
}

// Row projects the entity for the in-memory predicate evaluator, using the
// same column names the Postgres store queries.
func (g GenderType) Row() map[string]any {
	return map[string]any{
		"gender_id":   g.ID,
		"gender_name": g.GenderName,
		"sort_order":  g.SortOrder,
		"description": g.Description,
	}
}

// TicketCategory is one row of the seeded support-ticket category table.
type TicketCategory struct {
	ID           int64  `json:"ticket_category_id"`
	CategoryName string `json:"category_name"`
	SortOrder    int64  `json:"sort_order"`
	Description  string `json:"description,omitempty"`
}

func (c TicketCategory) Row() map[string]any {
	return map[string]any{
		"ticket_category_id": c.ID,
		"category_name":      c.CategoryName,
		"sort_order":         c.SortOrder,
		"description":        c.Description,
	}
}
