package wise

import "strings"

// categoryRule maps merchant-name keywords to a spending category.
type categoryRule struct {
	keywords []string
	category string
}

// categoryRules is evaluated in order and the first matching rule wins.
// The order is significant: keyword sets overlap (e.g. "amazon prime" must be
// seen before the generic "amazon"), do not reorder.
var categoryRules = []categoryRule{
	{[]string{"uber", "bolt", "lyft", "taxi", "cabify"}, "Transport"},
	{[]string{"lidl", "aldi", "pingo doce", "continente", "mercado", "supermarket", "grocery"}, "Groceries"},
	{[]string{"restaurant", "cafe", "coffee", "starbucks", "mcdonald", "burger", "pizza", "sushi"}, "Restaurants"},
	{[]string{"patreon", "netflix", "spotify", "youtube", "apple", "google", "amazon prime"}, "Subscriptions"},
	{[]string{"pharmacy", "farmacia", "gym", "yoga", "fitness", "health"}, "Health & Fitness"},
	{[]string{"amazon", "ebay", "aliexpress", "shop", "store", "market"}, "Shopping"},
}

// fallbackCategory labels card payments no rule matches.
const fallbackCategory = "Card Payment"

// Categorize maps a merchant name to a spending category using substring
// matching on the lowercased name. It is a pure function: the same input
// always yields the same label.
func Categorize(merchant string) string {
	lower := strings.ToLower(merchant)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return fallbackCategory
}
