package monobank

import "fmt"

// currencies maps the ISO-4217 numeric codes the API reports to letter codes.
var currencies = map[int]string{
	980: "UAH", 840: "USD", 978: "EUR", 826: "GBP", 985: "PLN",
}

// CurrencyCode converts a numeric ISO-4217 currency code to its letter code,
// falling back to the number itself for codes outside the table.
func CurrencyCode(code int) string {
	if c, ok := currencies[code]; ok {
		return c
	}
	return fmt.Sprintf("%d", code)
}

// mccCategories maps merchant category codes to human-readable categories.
var mccCategories = map[int]string{
	4111: "Transportation", 4112: "Railways", 4121: "Taxi & Rideshare",
	4131: "Bus Lines", 4784: "Tolls & Fees", 4789: "Transportation Services",
	4829: "Money Transfer", 5411: "Groceries", 5412: "Convenience Stores",
	5422: "Meat & Seafood", 5441: "Candy & Confectionery", 5451: "Dairy Stores",
	5462: "Bakeries", 5499: "Food Stores", 5541: "Gas Stations", 5542: "Fuel",
	5651: "Clothing", 5691: "Clothing Stores", 5812: "Restaurants",
	5813: "Bars & Nightclubs", 5814: "Fast Food", 5815: "Digital Goods",
	5816: "Digital Games", 5817: "Digital Services", 5818: "Digital Purchases",
	5912: "Pharmacy", 5921: "Alcohol", 5941: "Sporting Goods",
	5942: "Bookstores", 5943: "Office Supplies", 5944: "Jewelry",
	5945: "Toys & Games", 5977: "Cosmetics", 5999: "Retail",
	6010: "ATM Cash", 6011: "Cash Withdrawal", 6012: "Financial Services",
	6051: "Currency Exchange", 6211: "Investments", 6300: "Insurance",
	7011: "Hotels", 7230: "Beauty Salons", 7299: "Other Services",
	7372: "Software", 7375: "Information Services", 7379: "Computer Services",
	7392: "Consulting", 7399: "Business Services", 7512: "Car Rental",
	7523: "Parking", 7832: "Cinema", 7941: "Sports Events",
	7999: "Recreation Services", 8011: "Medical", 8021: "Dentist",
	8099: "Health Services", 8211: "Schools", 8299: "Education",
	8398: "Charity", 9311: "Tax Payments", 9399: "Government Services",
}

// Category converts a merchant category code to a human-readable category.
// Unrecognized codes keep the code visible in the fallback label rather than
// collapsing into a bare "Unknown".
func Category(mcc int) string {
	if c, ok := mccCategories[mcc]; ok {
		return c
	}
	return fmt.Sprintf("Other (%d)", mcc)
}
