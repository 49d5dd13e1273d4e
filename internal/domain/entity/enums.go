package entity

// Category is the primary classification of an establishment.
// Every establishment carries exactly one.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryCafe       Category = "cafe"
	CategoryBar        Category = "bar"
	CategoryBakery     Category = "bakery"
	CategoryFastFood   Category = "fast_food"
	CategoryFoodTruck  Category = "food_truck"
)

// Valid reports whether the category is a member of the fixed enumeration.
func (c Category) Valid() bool {
	switch c {
	case CategoryRestaurant, CategoryCafe, CategoryBar, CategoryBakery, CategoryFastFood, CategoryFoodTruck:
		return true
	}

	return false
}

// Cuisine is a kitchen style tag. An establishment may carry several.
type Cuisine string

const (
	CuisineBelarusian Cuisine = "belarusian"
	CuisineEuropean   Cuisine = "european"
	CuisineItalian    Cuisine = "italian"
	CuisineJapanese   Cuisine = "japanese"
	CuisineChinese    Cuisine = "chinese"
	CuisineGeorgian   Cuisine = "georgian"
	CuisineMexican    Cuisine = "mexican"
	CuisineIndian     Cuisine = "indian"
	CuisineFrench     Cuisine = "french"
	CuisineThai       Cuisine = "thai"
)

// Valid reports whether the cuisine is a member of the fixed enumeration.
func (c Cuisine) Valid() bool {
	switch c {
	case CuisineBelarusian, CuisineEuropean, CuisineItalian, CuisineJapanese, CuisineChinese,
		CuisineGeorgian, CuisineMexican, CuisineIndian, CuisineFrench, CuisineThai:
		return true
	}

	return false
}

// PriceTier is the rough price bracket of an establishment.
type PriceTier string

const (
	PriceBudget   PriceTier = "budget"
	PriceModerate PriceTier = "moderate"
	PriceUpscale  PriceTier = "upscale"
	PriceLuxury   PriceTier = "luxury"
)

// Valid reports whether the price tier is a member of the fixed enumeration.
func (p PriceTier) Valid() bool {
	switch p {
	case PriceBudget, PriceModerate, PriceUpscale, PriceLuxury:
		return true
	}

	return false
}

// Feature is an amenity tag. An establishment may carry several.
type Feature string

const (
	FeatureWifi          Feature = "wifi"
	FeatureParking       Feature = "parking"
	FeatureTerrace       Feature = "terrace"
	FeatureDelivery      Feature = "delivery"
	FeatureTakeout       Feature = "takeout"
	FeaturePetFriendly   Feature = "pet_friendly"
	FeatureWheelchair    Feature = "wheelchair_accessible"
	FeatureLiveMusic     Feature = "live_music"
	FeatureKidsMenu      Feature = "kids_menu"
	FeatureReservations  Feature = "reservations"
)

// Valid reports whether the feature is a member of the fixed enumeration.
func (f Feature) Valid() bool {
	switch f {
	case FeatureWifi, FeatureParking, FeatureTerrace, FeatureDelivery, FeatureTakeout,
		FeaturePetFriendly, FeatureWheelchair, FeatureLiveMusic, FeatureKidsMenu, FeatureReservations:
		return true
	}

	return false
}

// HoursPredicate is a single-choice operating-hours filter.
type HoursPredicate string

const (
	// HoursClosesByTen matches establishments that close at or before 22:00 and do not run overnight.
	HoursClosesByTen HoursPredicate = "closes_by_22"
	// HoursOpenOvernight matches establishments whose service continues past midnight.
	HoursOpenOvernight HoursPredicate = "open_overnight"
	// HoursTwentyFour matches establishments operating around the clock.
	HoursTwentyFour HoursPredicate = "twenty_four_hours"
)

// Valid reports whether the hours predicate is a member of the fixed enumeration.
func (h HoursPredicate) Valid() bool {
	switch h {
	case HoursClosesByTen, HoursOpenOvernight, HoursTwentyFour:
		return true
	}

	return false
}

// SubscriptionTier is the paid tier of an establishment's owner.
// It contributes a capped boost to ranking, it never gates discoverability.
type SubscriptionTier string

const (
	TierFree     SubscriptionTier = "free"
	TierBasic    SubscriptionTier = "basic"
	TierStandard SubscriptionTier = "standard"
	TierPremium  SubscriptionTier = "premium"
)

// Valid reports whether the subscription tier is a member of the fixed enumeration.
func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierFree, TierBasic, TierStandard, TierPremium:
		return true
	}

	return false
}

// Status is the lifecycle state of an establishment. The lifecycle itself is
// owned by the catalog; discovery only ever sees active rows.
type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusArchived Status = "archived"
)

// Valid reports whether the status is a member of the fixed enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusArchived:
		return true
	}

	return false
}
