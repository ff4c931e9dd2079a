package store

import "github.com/mjza/mra-core-sub001/internal/reference/models"

// SeedGenderTypes returns the ten seeded gender rows ordered by sort_order.
func SeedGenderTypes() []models.GenderType {
	return []models.GenderType{
		{ID: 1, GenderName: "Male", SortOrder: 1},
		{ID: 2, GenderName: "Female", SortOrder: 2},
		{ID: 3, GenderName: "Transgender Male", SortOrder: 3},
		{ID: 4, GenderName: "Transgender Female", SortOrder: 4},
		{ID: 5, GenderName: "Non-Binary", SortOrder: 5},
		{ID: 6, GenderName: "Genderqueer", SortOrder: 6},
		{ID: 7, GenderName: "Genderfluid", SortOrder: 7},
		{ID: 8, GenderName: "Agender", SortOrder: 8},
		{ID: 9, GenderName: "Two-Spirit", SortOrder: 9},
		{ID: 10, GenderName: "Prefer Not to Say", SortOrder: 10},
	}
}

// SeedTicketCategories returns the seeded support-ticket categories.
func SeedTicketCategories() []models.TicketCategory {
	return []models.TicketCategory{
		{ID: 1, CategoryName: "General Inquiry", SortOrder: 1},
		{ID: 2, CategoryName: "Technical Support", SortOrder: 2},
		{ID: 3, CategoryName: "Account Access", SortOrder: 3},
		{ID: 4, CategoryName: "Billing", SortOrder: 4},
		{ID: 5, CategoryName: "Bug Report", SortOrder: 5},
		{ID: 6, CategoryName: "Feature Request", SortOrder: 6},
		{ID: 7, CategoryName: "Feedback", SortOrder: 7},
		{ID: 8, CategoryName: "Other", SortOrder: 8},
	}
}
