package monobank

// merchantCategories maps ISO 18245 merchant category codes to display text
// appended to transaction descriptions. Unknown codes are simply skipped, so
// the table only needs the categories that actually show up on statements.
var merchantCategories = map[int]string{
	4111: "Local and Suburban Commuter Transport",
	4112: "Passenger Railways",
	4121: "Taxicabs and Limousines",
	4131: "Bus Lines",
	4511: "Airlines and Air Carriers",
	4722: "Travel Agencies and Tour Operators",
	4814: "Telecommunication Services",
	4829: "Money Transfer",
	4899: "Cable and Other Pay Television Services",
	4900: "Utilities",
	5200: "Home Supply Warehouse Stores",
	5261: "Nurseries and Lawn and Garden Supply Stores",
	5331: "Variety Stores",
	5411: "Grocery Stores and Supermarkets",
	5422: "Freezer and Locker Meat Provisioners",
	5441: "Candy, Nut and Confectionery Stores",
	5451: "Dairy Products Stores",
	5462: "Bakeries",
	5499: "Miscellaneous Food Stores",
	5541: "Service Stations",
	5651: "Family Clothing Stores",
	5661: "Shoe Stores",
	5691: "Men's and Women's Clothing Stores",
	5712: "Furniture and Home Furnishings Stores",
	5732: "Electronics Stores",
	5734: "Computer Software Stores",
	5812: "Eating Places and Restaurants",
	5813: "Drinking Places",
	5814: "Fast Food Restaurants",
	5912: "Drug Stores and Pharmacies",
	5921: "Package Stores - Beer, Wine and Liquor",
	5941: "Sporting Goods Stores",
	5942: "Book Stores",
	5977: "Cosmetic Stores",
	5983: "Fuel Dealers",
	5999: "Specialty Retail Stores",
	6011: "Automated Cash Disbursements",
	6012: "Financial Institutions",
	6051: "Non-Financial Institutions - Foreign Currency",
	7230: "Barber and Beauty Shops",
	7372: "Computer Programming and Data Processing",
	7399: "Business Services",
	7832: "Motion Picture Theaters",
	7997: "Membership Clubs",
	8011: "Doctors",
	8062: "Hospitals",
	8099: "Medical Services and Health Practitioners",
	8299: "Educational Services",
	9402: "Postal Services",
}

// merchantCategoryText resolves an MCC code to its display text.
func merchantCategoryText(code int) (string, bool) {
	text, ok := merchantCategories[code]
	return text, ok
}
