package domain

// DefaultBlocks is the tourism-business questionnaire: six blocks of five
// questions, each answered on a 0..2 scale.
var DefaultBlocks = []Block{
	{
		ID:          "positioning",
		Title:       "Format and positioning",
		Description: "How well the business understands itself",
		Icon:        "Target",
		Questions: []Question{
			{ID: "q1_1", Text: "Is the target audience clearly described?", MaxValue: 2},
			{ID: "q1_2", Text: "Do you sell an experience or just accommodation?", MaxValue: 2},
			{ID: "q1_3", Text: "Do you know why guests choose you?", MaxValue: 2},
			{ID: "q1_4", Text: "Do you stand apart from nearby competitors?", MaxValue: 2},
			{ID: "q1_5", Text: "Does the property have a packaged concept?", MaxValue: 2},
		},
	},
	{
		ID:          "pricing",
		Title:       "Price and occupancy",
		Description: "Where revenue is being lost",
		Icon:        "DollarSign",
		Questions: []Question{
			{ID: "q2_1", Text: "How are prices set?", MaxValue: 2},
			{ID: "q2_2", Text: "Do prices change with the season?", MaxValue: 2},
			{ID: "q2_3", Text: "Average occupancy in high season?", MaxValue: 2},
			{ID: "q2_4", Text: "Average occupancy on weekdays?", MaxValue: 2},
			{ID: "q2_5", Text: "Do you use minimum-stay rules?", MaxValue: 2},
		},
	},
	{
		ID:          "seasonality",
		Title:       "Seasonality and the shape of the year",
		Description: "How many months the business earns",
		Icon:        "Calendar",
		Questions: []Question{
			{ID: "q3_1", Text: "How many months a year does the property earn?", MaxValue: 2},
			{ID: "q3_2", Text: "Do you have low-season offers?", MaxValue: 2},
			{ID: "q3_3", Text: "Do you run events or packages off-season?", MaxValue: 2},
			{ID: "q3_4", Text: "Is demand planned ahead of the season?", MaxValue: 2},
			{ID: "q3_5", Text: "Do repeat guests return outside the peak?", MaxValue: 2},
		},
	},
	{
		ID:          "upsells",
		Title:       "Product and upsells",
		Description: "Untapped revenue potential",
		Icon:        "ShoppingBag",
		Questions: []Question{
			{ID: "q4_1", Text: "Do you offer additional services?", MaxValue: 2},
			{ID: "q4_2", Text: "Are upsells offered at booking time?", MaxValue: 2},
			{ID: "q4_3", Text: "Do you track which extras sell?", MaxValue: 2},
			{ID: "q4_4", Text: "Are there packages combining stay and services?", MaxValue: 2},
			{ID: "q4_5", Text: "Do partners bring you extra revenue?", MaxValue: 2},
		},
	},
	{
		ID:          "service",
		Title:       "Staff and service",
		Description: "Risk of a service failure",
		Icon:        "Users",
		Questions: []Question{
			{ID: "q5_1", Text: "Does the staff match the property's format?", MaxValue: 2},
			{ID: "q5_2", Text: "Are service standards written down?", MaxValue: 2},
			{ID: "q5_3", Text: "Is guest feedback collected systematically?", MaxValue: 2},
			{ID: "q5_4", Text: "Are complaints resolved within a day?", MaxValue: 2},
			{ID: "q5_5", Text: "Is there a person responsible for guest experience?", MaxValue: 2},
		},
	},
	{
		ID:          "management",
		Title:       "Management and numbers",
		Description: "How manageable the business is",
		Icon:        "BarChart",
		Questions: []Question{
			{ID: "q6_1", Text: "Do you review the unit economics regularly?", MaxValue: 2},
			{ID: "q6_2", Text: "Do you know your cost per occupied night?", MaxValue: 2},
			{ID: "q6_3", Text: "Is there a booking calendar everyone works from?", MaxValue: 2},
			{ID: "q6_4", Text: "Are monthly targets set and tracked?", MaxValue: 2},
			{ID: "q6_5", Text: "Could the business run a week without you?", MaxValue: 2},
		},
	},
}
