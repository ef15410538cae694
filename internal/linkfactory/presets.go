package linkfactory

var builtinPresets = []Preset{
	{
		ID:          "amazon-serp",
		Label:       "Amazon SERP",
		Description: "Amazon product search result URLs.",
		ScraperKey:  "amazon-serp",
		Pattern:     "https://www.amazon.com/s?k={keyword}&page={page}",
		Variables: []Variable{
			{Name: "keyword", Defaults: []string{"best sellers", "prime deals"}},
			{Name: "page", Defaults: []string{"1", "2", "3"}},
		},
		Notes: "For large listings export to XLSX and split the batch by page.",
	},
	{
		ID:          "walmart-serp",
		Label:       "Walmart SERP",
		Description: "Walmart searches by keyword and department.",
		ScraperKey:  "walmart-serp",
		Pattern:     "https://www.walmart.com/search?q={keyword}&cat_id={category}&page={page}",
		Variables: []Variable{
			{Name: "keyword", Defaults: []string{"laptop", "smartphone"}},
			{Name: "category", Defaults: []string{"3944", "3944_1229626"}},
			{Name: "page", Defaults: []string{"1", "2"}},
		},
		Notes: "cat_id is the Walmart department identifier.",
	},
	{
		ID:                "facebook-page",
		Label:             "Facebook Page",
		Description:       "Direct links to public Facebook pages.",
		ScraperKey:        "facebook-page",
		Pattern:           "https://www.facebook.com/{page_slug}",
		Variables:         []Variable{{Name: "page_slug", Defaults: []string{"Meta", "Walmart", "IKEAUSA"}}},
		RecommendedFormat: FormatMarkdown,
		Notes:             "Markdown works well when notes are added by hand afterwards.",
	},
	{
		ID:                "instagram-hashtag",
		Label:             "Instagram Hashtag",
		Description:       "Popular Instagram hashtag pages.",
		ScraperKey:        "instagram-hashtag",
		Pattern:           "https://www.instagram.com/explore/tags/{hashtag}/",
		Variables:         []Variable{{Name: "hashtag", Defaults: []string{"handmade", "fashion", "technews"}}},
		RecommendedFormat: FormatText,
	},
	{
		ID:          "google-serp",
		Label:       "Google SERP",
		Description: "Structured Google queries scoped to a site.",
		ScraperKey:  "google-serp",
		Pattern:     "https://www.google.com/search?q={keyword}+site:{domain}",
		Variables: []Variable{
			{Name: "keyword", Defaults: []string{"promo code", "reviews"}},
			{Name: "domain", Defaults: []string{"amazon.com", "walmart.com"}},
		},
		Notes: "Follow Google's policies; pair keywords with specific domains.",
	},
	{
		ID:                "tiktok-profile",
		Label:             "TikTok Profile",
		Description:       "TikTok profiles from parameterized usernames.",
		ScraperKey:        "tiktok-profile",
		Pattern:           "https://www.tiktok.com/@{username}",
		Variables:         []Variable{{Name: "username", Defaults: []string{"nike", "liverpoolfc", "google"}}},
		RecommendedFormat: FormatCSV,
	},
	{
		ID:          "aliexpress-product",
		Label:       "AliExpress Product",
		Description: "AliExpress product pages by item ID.",
		ScraperKey:  "aliexpress-product",
		Pattern:     "https://www.aliexpress.com/item/{product_id}.html",
		Variables:   []Variable{{Name: "product_id", Defaults: []string{"1005008227636051", "1005006243252878"}}},
		Notes:       "Item IDs can be collected from aliexpress-serp listings.",
	},
	{
		ID:          "bing-serp",
		Label:       "Bing SERP",
		Description: "Shopping-oriented Bing queries.",
		ScraperKey:  "bing-serp",
		Pattern:     "https://www.bing.com/search?q={keyword}+intitle:{intitle}",
		Variables: []Variable{
			{Name: "keyword", Defaults: []string{"buy online", "best price"}},
			{Name: "intitle", Defaults: []string{"sale", "reviews"}},
		},
	},
	{
		ID:          "bestbuy-product-details",
		Label:       "BestBuy Product",
		Description: "Best Buy product detail pages by SKU.",
		ScraperKey:  "bestbuy-product-details",
		Pattern:     "https://www.bestbuy.com/site/{slug}/{sku}.p",
		Variables: []Variable{
			{Name: "slug", Defaults: []string{"meta-quest-3-512gb-the-most-powerful-quest-ultimate-mixed-reality-experiences-get-batman-arkham-shadow-white"}},
			{Name: "sku", Defaults: []string{"6596938"}},
		},
	},
	{
		ID:          "eventbrite-events-list",
		Label:       "Eventbrite Events",
		Description: "Eventbrite listings by city and topic.",
		ScraperKey:  "eventbrite-events-list",
		Pattern:     "https://www.eventbrite.com/d/{country_code}--{city}/{topic}/?page={page}",
		Variables: []Variable{
			{Name: "country_code", Defaults: []string{"us", "mx"}},
			{Name: "city", Defaults: []string{"new-york", "mexico-city"}},
			{Name: "topic", Defaults: []string{"ai", "marketing"}},
			{Name: "page", Defaults: []string{"1", "2"}},
		},
		Notes: "Export to XLSX to filter by city and topic.",
	},
	{
		ID:                "generic-extractor",
		Label:             "Generic extractor",
		Description:       "Free-form URLs from a basic template.",
		ScraperKey:        "generic-extractor",
		Pattern:           "{base_url}",
		Variables:         []Variable{{Name: "base_url", Defaults: []string{"https://example.org", "https://news.ycombinator.com"}}},
		RecommendedFormat: FormatText,
	},
}
