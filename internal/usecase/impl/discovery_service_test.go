package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"testing"

	"nosh/config"
	"nosh/internal/domain/entity"
	domainerrors "nosh/internal/domain/errors"
	"nosh/internal/domain/repository"
	"nosh/internal/domain/search"
	"nosh/internal/infra/persistence/memory"
	"nosh/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture geography: central Minsk.
const (
	originLat = 53.9006
	originLon = 27.5590
)

// offsetPoint shifts the origin by approximately the given kilometers.
// The longitude step is corrected for latitude so distances stay honest.
func offsetPoint(northKm, eastKm float64) (lat, lon float64) {
	const kmPerDegree = 111.0

	lat = originLat + northKm/kmPerDegree
	lon = originLon + eastKm/(kmPerDegree*math.Cos(originLat*math.Pi/180))

	return lat, lon
}

// referenceHaversine cross-checks reported distances independently of the
// production geodesy code.
func referenceHaversine(fromLat, fromLon, toLat, toLon float64) float64 {
	const earthRadiusMeters = 6378137.0

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(toLat - fromLat)
	dLon := toRad(toLon - fromLon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(fromLat))*math.Cos(toRad(toLat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

type fixtureSpec struct {
	name     string
	northKm  float64
	eastKm   float64
	category entity.Category
	cuisines []entity.Cuisine
	price    entity.PriceTier
	features []entity.Feature
	hours    entity.OperatingHours
	mean     float64
	count    int
	tier     entity.SubscriptionTier
	status   entity.Status
}

func buildFixture(spec fixtureSpec) *entity.Establishment {
	lat, lon := offsetPoint(spec.northKm, spec.eastKm)

	status := spec.status
	if status == "" {
		status = entity.StatusActive
	}
	tier := spec.tier
	if tier == "" {
		tier = entity.TierFree
	}

	return &entity.Establishment{
		ID:               uuid.NewSHA1(uuid.NameSpaceOID, []byte(spec.name)),
		Name:             spec.name,
		Latitude:         lat,
		Longitude:        lon,
		Category:         spec.category,
		Cuisines:         spec.cuisines,
		PriceTier:        spec.price,
		Features:         spec.features,
		Hours:            spec.hours,
		Rating:           entity.RatingSummary{Mean: spec.mean, Count: spec.count},
		SubscriptionTier: tier,
		Status:           status,
	}
}

// minskCatalog is a 27-establishment snapshot spread around the origin, with
// a handful outside the default 3 km test radius and two undiscoverable rows.
func minskCatalog() []*entity.Establishment {
	daytime := entity.OperatingHours{OpenMinute: 9 * 60, CloseMinute: 21 * 60}
	evening := entity.OperatingHours{OpenMinute: 12 * 60, CloseMinute: 23 * 60}
	overnight := entity.OperatingHours{OpenMinute: 18 * 60, CloseMinute: 2 * 60}
	always := entity.OperatingHours{Open24Hours: true}

	specs := []fixtureSpec{
		{name: "Vasilki", northKm: 0.2, eastKm: 0.1, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineBelarusian}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureWifi, entity.FeatureParking}, hours: daytime, mean: 4.6, count: 180, tier: entity.TierStandard},
		{name: "Kamyanitsa", northKm: -0.4, eastKm: 0.3, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineBelarusian, entity.CuisineEuropean}, price: entity.PriceUpscale, features: []entity.Feature{entity.FeatureParking, entity.FeatureReservations}, hours: evening, mean: 4.8, count: 240, tier: entity.TierFree},
		{name: "Depo", northKm: 0.6, eastKm: -0.5, category: entity.CategoryCafe, cuisines: []entity.Cuisine{entity.CuisineEuropean}, price: entity.PriceBudget, features: []entity.Feature{entity.FeatureWifi}, hours: daytime, mean: 4.2, count: 95, tier: entity.TierBasic},
		{name: "Enzo", northKm: 1.1, eastKm: 0.8, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineItalian}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureWifi, entity.FeatureTerrace}, hours: evening, mean: 4.4, count: 150, tier: entity.TierPremium},
		{name: "Tokyo Garden", northKm: -1.3, eastKm: -0.9, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineJapanese}, price: entity.PriceUpscale, features: []entity.Feature{entity.FeatureReservations, entity.FeatureParking}, hours: evening, mean: 4.1, count: 60, tier: entity.TierStandard},
		{name: "Panda House", northKm: 1.7, eastKm: -1.2, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineChinese}, price: entity.PriceBudget, features: []entity.Feature{entity.FeatureTakeout, entity.FeatureDelivery}, hours: evening, mean: 3.9, count: 310, tier: entity.TierFree},
		{name: "Tbilisi Dvor", northKm: -0.8, eastKm: 1.4, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineGeorgian}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureWifi, entity.FeatureParking, entity.FeatureLiveMusic}, hours: evening, mean: 4.7, count: 205, tier: entity.TierBasic},
		{name: "El Pueblo", northKm: 2.1, eastKm: 0.4, category: entity.CategoryBar, cuisines: []entity.Cuisine{entity.CuisineMexican}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureLiveMusic}, hours: overnight, mean: 4.0, count: 120, tier: entity.TierFree},
		{name: "Taj", northKm: -1.9, eastKm: 0.6, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineIndian}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureDelivery, entity.FeatureWifi}, hours: daytime, mean: 4.3, count: 88, tier: entity.TierBasic},
		{name: "Chez Marc", northKm: 0.9, eastKm: 1.8, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineFrench}, price: entity.PriceLuxury, features: []entity.Feature{entity.FeatureReservations}, hours: evening, mean: 4.9, count: 75, tier: entity.TierPremium},
		{name: "Bangkok Street", northKm: -2.3, eastKm: -1.1, category: entity.CategoryFoodTruck, cuisines: []entity.Cuisine{entity.CuisineThai}, price: entity.PriceBudget, features: []entity.Feature{entity.FeatureTakeout}, hours: daytime, mean: 4.5, count: 45, tier: entity.TierFree},
		{name: "Svislach Bakery", northKm: 0.3, eastKm: -1.6, category: entity.CategoryBakery, cuisines: []entity.Cuisine{entity.CuisineBelarusian}, price: entity.PriceBudget, features: []entity.Feature{entity.FeatureTakeout, entity.FeatureWifi}, hours: daytime, mean: 4.4, count: 130, tier: entity.TierFree},
		{name: "Night Owl", northKm: 1.4, eastKm: 1.3, category: entity.CategoryBar, cuisines: []entity.Cuisine{entity.CuisineEuropean}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureLiveMusic, entity.FeatureWifi}, hours: always, mean: 3.8, count: 160, tier: entity.TierBasic},
		{name: "Burger Post", northKm: -0.6, eastKm: -2.0, category: entity.CategoryFastFood, cuisines: []entity.Cuisine{entity.CuisineEuropean}, price: entity.PriceBudget, features: []entity.Feature{entity.FeatureDelivery, entity.FeatureTakeout, entity.FeatureParking}, hours: always, mean: 3.7, count: 420, tier: entity.TierStandard},
		{name: "Gurman", northKm: 2.4, eastKm: -0.7, category: entity.CategoryCafe, cuisines: []entity.Cuisine{entity.CuisineBelarusian, entity.CuisineEuropean}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureKidsMenu, entity.FeatureWifi}, hours: daytime, mean: 4.2, count: 70, tier: entity.TierFree},
		{name: "Sakura", northKm: -2.6, eastKm: 0.9, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineJapanese}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureDelivery}, hours: evening, mean: 4.0, count: 55, tier: entity.TierFree},
		{name: "Piazza", northKm: 0.1, eastKm: 2.5, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineItalian}, price: entity.PriceUpscale, features: []entity.Feature{entity.FeatureTerrace, entity.FeatureReservations, entity.FeatureWifi}, hours: evening, mean: 4.6, count: 190, tier: entity.TierStandard},
		{name: "Korchma", northKm: -1.5, eastKm: -1.8, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineBelarusian}, price: entity.PriceBudget, features: []entity.Feature{entity.FeatureParking, entity.FeatureKidsMenu}, hours: daytime, mean: 4.1, count: 140, tier: entity.TierFree},
		{name: "Wok Express", northKm: 1.9, eastKm: 1.9, category: entity.CategoryFastFood, cuisines: []entity.Cuisine{entity.CuisineChinese, entity.CuisineThai}, price: entity.PriceBudget, features: []entity.Feature{entity.FeatureTakeout, entity.FeatureDelivery}, hours: evening, mean: 3.6, count: 260, tier: entity.TierFree},
		{name: "Le Coin", northKm: -0.2, eastKm: -0.4, category: entity.CategoryCafe, cuisines: []entity.Cuisine{entity.CuisineFrench}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureWifi, entity.FeatureTerrace}, hours: daytime, mean: 4.5, count: 110, tier: entity.TierBasic},
		{name: "Pivnaya Lavka", northKm: 0.7, eastKm: 0.6, category: entity.CategoryBar, cuisines: []entity.Cuisine{entity.CuisineBelarusian}, price: entity.PriceBudget, features: []entity.Feature{entity.FeatureParking}, hours: overnight, mean: 3.9, count: 85, tier: entity.TierFree},
		{name: "Green Market Cafe", northKm: 2.7, eastKm: 0.2, category: entity.CategoryCafe, cuisines: []entity.Cuisine{entity.CuisineEuropean}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureWifi, entity.FeatureKidsMenu, entity.FeatureParking}, hours: daytime, mean: 4.3, count: 100, tier: entity.TierBasic},

		// Outside the default 3 km test radius.
		{name: "Uruchcha Grill", northKm: 7.5, eastKm: 4.0, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineEuropean}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureParking}, hours: evening, mean: 4.4, count: 90, tier: entity.TierFree},
		{name: "Malinovka Pizza", northKm: -8.2, eastKm: -3.5, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineItalian}, price: entity.PriceBudget, features: []entity.Feature{entity.FeatureDelivery}, hours: evening, mean: 4.0, count: 200, tier: entity.TierFree},
		{name: "Airport Diner", northKm: 3.4, eastKm: 30.0, category: entity.CategoryFastFood, cuisines: []entity.Cuisine{entity.CuisineEuropean}, price: entity.PriceModerate, features: []entity.Feature{entity.FeatureWifi}, hours: always, mean: 3.5, count: 500, tier: entity.TierFree},

		// Undiscoverable rows the index must exclude up front.
		{name: "Closed Cellar", northKm: 0.5, eastKm: 0.5, category: entity.CategoryBar, cuisines: []entity.Cuisine{entity.CuisineEuropean}, price: entity.PriceModerate, hours: evening, mean: 4.0, count: 30, status: entity.StatusArchived},
		{name: "Pending Pierogi", northKm: -0.3, eastKm: 0.2, category: entity.CategoryRestaurant, cuisines: []entity.Cuisine{entity.CuisineBelarusian}, price: entity.PriceBudget, hours: daytime, mean: 0, count: 0, status: entity.StatusPending},
	}

	catalog := make([]*entity.Establishment, 0, len(specs))
	for _, spec := range specs {
		catalog = append(catalog, buildFixture(spec))
	}

	return catalog
}

type discoveryFixtures struct {
	service usecase.DiscoveryUsecase
	index   *memory.EstablishmentIndex
	cfg     *config.Config
}

func createTestDiscoveryService(t *testing.T, mutate func(*config.Config)) discoveryFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	index := memory.NewEstablishmentIndex(0, logger)
	index.Load(minskCatalog())

	cfg := &config.Config{}
	if mutate != nil {
		mutate(cfg)
	}

	return discoveryFixtures{
		service: NewDiscoveryService(index, cfg, logger),
		index:   index,
		cfg:     cfg,
	}
}

func nearbyInput() *usecase.SearchNearInput {
	return &usecase.SearchNearInput{
		Latitude:     originLat,
		Longitude:    originLon,
		RadiusMeters: 3000,
		PageSize:     100,
	}
}

func TestDiscoveryService_SearchNear_RadiusContainmentAndDistances(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	result, err := fx.service.SearchNear(context.Background(), nearbyInput())

	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	assert.False(t, result.Pagination.HasMore)

	for _, item := range result.Items {
		assert.LessOrEqual(t, item.DistanceMeters, 3000.0, "%s is outside the radius", item.Establishment.Name)

		want := referenceHaversine(originLat, originLon,
			item.Establishment.Latitude, item.Establishment.Longitude)
		assert.InDelta(t, want, item.DistanceMeters, 1.0,
			"%s distance drifts from the reference", item.Establishment.Name)
	}

	names := make(map[string]bool, len(result.Items))
	for _, item := range result.Items {
		names[item.Establishment.Name] = true
	}
	assert.False(t, names["Uruchcha Grill"], "beyond the radius")
	assert.False(t, names["Airport Diner"], "far beyond the radius")
	assert.False(t, names["Closed Cellar"], "archived rows never surface")
	assert.False(t, names["Pending Pierogi"], "pending rows never surface")
}

func TestDiscoveryService_SearchNear_OrderedByScoreThenID(t *testing.T) {
	fx := createTestDiscoveryService(t, func(cfg *config.Config) {
		cfg.Search = &config.SearchConfig{IncludeScore: true}
	})

	result, err := fx.service.SearchNear(context.Background(), nearbyInput())

	require.NoError(t, err)
	require.Greater(t, len(result.Items), 1)

	for i := 1; i < len(result.Items); i++ {
		previous, current := result.Items[i-1], result.Items[i]
		require.NotNil(t, previous.Score)
		require.NotNil(t, current.Score)

		assert.True(t, search.OrderBefore(
			*previous.Score, previous.Establishment.ID,
			*current.Score, current.Establishment.ID,
		), "items %d and %d are out of order", i-1, i)
	}
}

func TestDiscoveryService_SearchNear_FeatureFilterRequiresAll(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	input := nearbyInput()
	input.Filters = search.FilterSet{
		Features: []entity.Feature{entity.FeatureWifi, entity.FeatureParking},
	}

	result, err := fx.service.SearchNear(context.Background(), input)

	require.NoError(t, err)
	require.NotEmpty(t, result.Items)

	for _, item := range result.Items {
		assert.True(t, item.Establishment.HasFeature(entity.FeatureWifi))
		assert.True(t, item.Establishment.HasFeature(entity.FeatureParking))
	}

	for _, item := range result.Items {
		assert.NotEqual(t, "Depo", item.Establishment.Name,
			"wifi without parking must not pass a wifi+parking filter")
	}
}

func TestDiscoveryService_SearchNear_EmptyFilterGroupsMatchEverything(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	unfiltered, err := fx.service.SearchNear(context.Background(), nearbyInput())
	require.NoError(t, err)

	input := nearbyInput()
	input.Filters = search.FilterSet{
		Categories: []entity.Category{},
		Features:   []entity.Feature{},
	}

	filtered, err := fx.service.SearchNear(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, len(unfiltered.Items), len(filtered.Items),
		"an empty group is no constraint, never match-nothing")
}

func TestDiscoveryService_SearchNear_PaginationWalkIsGaplessAndDuplicateFree(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	full, err := fx.service.SearchNear(context.Background(), nearbyInput())
	require.NoError(t, err)
	require.Greater(t, len(full.Items), 10, "fixture must span several pages")

	input := nearbyInput()
	input.PageSize = 5

	var walked []uuid.UUID
	cursor := ""
	for page := 0; ; page++ {
		require.Less(t, page, 20, "pagination must terminate")

		input.Cursor = cursor
		result, err := fx.service.SearchNear(context.Background(), input)
		require.NoError(t, err)

		for _, item := range result.Items {
			walked = append(walked, item.Establishment.ID)
		}

		if !result.Pagination.HasMore {
			assert.Empty(t, result.Pagination.NextCursor, "the last page carries no cursor")

			break
		}

		require.NotEmpty(t, result.Pagination.NextCursor)
		require.LessOrEqual(t, len(result.Items), 5)
		cursor = result.Pagination.NextCursor
	}

	require.Len(t, walked, len(full.Items), "the walk must visit every result exactly once")

	seen := make(map[uuid.UUID]bool, len(walked))
	for i, id := range walked {
		assert.False(t, seen[id], "duplicate at position %d", i)
		seen[id] = true
		assert.Equal(t, full.Items[i].Establishment.ID, id, "walk order diverges at position %d", i)
	}
}

func TestDiscoveryService_SearchNear_TamperedCursor(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	input := nearbyInput()
	input.PageSize = 5

	first, err := fx.service.SearchNear(context.Background(), input)
	require.NoError(t, err)
	require.True(t, first.Pagination.HasMore)

	input.Cursor = first.Pagination.NextCursor[:len(first.Pagination.NextCursor)-3] + "x!z"

	_, err = fx.service.SearchNear(context.Background(), input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCursorInvalid)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CURSOR_INVALID", appErr.ErrorCode())
}

func TestDiscoveryService_SearchNear_ScoreHiddenByDefault(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	result, err := fx.service.SearchNear(context.Background(), nearbyInput())

	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	for _, item := range result.Items {
		assert.Nil(t, item.Score)
	}
}

func TestDiscoveryService_SearchNear_InvalidParameters(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	input := nearbyInput()
	input.RadiusMeters = 50

	_, err := fx.service.SearchNear(context.Background(), input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidParameter)
}

// failingRepo simulates a data-store outage.
type failingRepo struct{}

func (failingRepo) SearchWithinRadius(context.Context, float64, float64, float64, search.FilterSet) ([]repository.Candidate, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) SearchWithinBounds(context.Context, search.Bounds, search.FilterSet, int) ([]*entity.Establishment, error) {
	return nil, errors.New("connection refused")
}

func TestDiscoveryService_SearchNear_UpstreamFailureFailsClosed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewDiscoveryService(failingRepo{}, &config.Config{}, logger)

	result, err := service.SearchNear(context.Background(), nearbyInput())

	require.Error(t, err)
	assert.Nil(t, result, "no partial page on upstream failure")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_QUERY_FAILED", appErr.ErrorCode())
	assert.NotContains(t, appErr.Message(), "connection refused",
		"store internals stay out of the caller-facing message")
}

// incompleteRepo returns a candidate missing its identity.
type incompleteRepo struct{}

func (incompleteRepo) SearchWithinRadius(context.Context, float64, float64, float64, search.FilterSet) ([]repository.Candidate, error) {
	return []repository.Candidate{
		{Establishment: &entity.Establishment{SubscriptionTier: entity.TierFree}, DistanceMeters: 100},
	}, nil
}

func (incompleteRepo) SearchWithinBounds(context.Context, search.Bounds, search.FilterSet, int) ([]*entity.Establishment, error) {
	return []*entity.Establishment{{}}, nil
}

func TestDiscoveryService_SearchNear_IncompleteCandidateSurfacesDefect(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewDiscoveryService(incompleteRepo{}, &config.Config{}, logger)

	_, err := service.SearchNear(context.Background(), nearbyInput())

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_QUERY_FAILED", appErr.ErrorCode())
}

func viewportInput() *usecase.SearchBoxInput {
	// Roughly 6 km x 6 km around the origin.
	return &usecase.SearchBoxInput{
		South: originLat - 0.027,
		West:  originLon - 0.046,
		North: originLat + 0.027,
		East:  originLon + 0.046,
	}
}

func TestDiscoveryService_SearchBox_MarkersWithinBounds(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	input := viewportInput()
	result, err := fx.service.SearchBox(context.Background(), input)

	require.NoError(t, err)
	require.NotEmpty(t, result.Markers)
	assert.Equal(t, len(result.Markers), result.Count)

	for _, marker := range result.Markers {
		assert.NotEqual(t, uuid.Nil, marker.ID)
		assert.GreaterOrEqual(t, marker.Latitude, input.South)
		assert.LessOrEqual(t, marker.Latitude, input.North)
		assert.GreaterOrEqual(t, marker.Longitude, input.West)
		assert.LessOrEqual(t, marker.Longitude, input.East)
	}
}

func TestDiscoveryService_SearchBox_FilterApplies(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	input := viewportInput()
	input.Filters = search.FilterSet{Categories: []entity.Category{entity.CategoryCafe}}

	result, err := fx.service.SearchBox(context.Background(), input)

	require.NoError(t, err)
	require.NotEmpty(t, result.Markers)
	for _, marker := range result.Markers {
		assert.Equal(t, entity.CategoryCafe, marker.Category)
	}
}

func TestDiscoveryService_SearchBox_LimitCapsResults(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	input := viewportInput()
	input.Limit = 3

	result, err := fx.service.SearchBox(context.Background(), input)

	require.NoError(t, err)
	assert.Len(t, result.Markers, 3)
	assert.Equal(t, 3, result.Count)
}

func TestDiscoveryService_SearchBox_RejectsInvertedViewport(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	input := viewportInput()
	input.South, input.North = input.North, input.South

	_, err := fx.service.SearchBox(context.Background(), input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidParameter)
}

func TestDiscoveryService_SearchBox_UpstreamFailureFailsClosed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewDiscoveryService(failingRepo{}, &config.Config{}, logger)

	result, err := service.SearchBox(context.Background(), viewportInput())

	require.Error(t, err)
	assert.Nil(t, result)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_QUERY_FAILED", appErr.ErrorCode())
}

func TestDiscoveryService_RankingFavorsQualityOverTierAtEqualDistance(t *testing.T) {
	// Two synthetic rows at the same distance isolate the quality/tier
	// trade-off from geography.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	excellentFree := buildFixture(fixtureSpec{
		name: "Excellent Free", northKm: 1.0, eastKm: 0,
		category: entity.CategoryRestaurant, price: entity.PriceModerate,
		mean: 5.0, count: 200, tier: entity.TierFree,
	})
	mediocrePremium := buildFixture(fixtureSpec{
		name: "Mediocre Premium", northKm: -1.0, eastKm: 0,
		category: entity.CategoryRestaurant, price: entity.PriceModerate,
		mean: 3.0, count: 10, tier: entity.TierPremium,
	})

	index := memory.NewEstablishmentIndex(0, logger)
	index.Load([]*entity.Establishment{excellentFree, mediocrePremium})

	service := NewDiscoveryService(index, &config.Config{}, logger)

	result, err := service.SearchNear(context.Background(), nearbyInput())

	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Excellent Free", result.Items[0].Establishment.Name)
}

func TestMinskFixture_NearestFiveAscending(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	candidates, err := fx.index.SearchWithinRadius(context.Background(), originLat, originLon, 3000, search.FilterSet{})

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(candidates), 5)

	wantOrder := []string{"Vasilki", "Le Coin", "Kamyanitsa", "Depo", "Pivnaya Lavka"}
	for i, want := range wantOrder {
		assert.Equal(t, want, candidates[i].Establishment.Name, "position %d", i)
	}

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i].DistanceMeters, candidates[i-1].DistanceMeters,
			"distances must ascend")
	}

	for _, c := range candidates[:5] {
		want := referenceHaversine(originLat, originLon,
			c.Establishment.Latitude, c.Establishment.Longitude)
		assert.InDelta(t, want, c.DistanceMeters, 1.0, c.Establishment.Name)
	}
}

func TestDiscoveryService_FixtureSanity(t *testing.T) {
	fx := createTestDiscoveryService(t, nil)

	assert.Equal(t, 25, fx.index.Size(), "two catalog rows are undiscoverable")
	assert.Equal(t, 2, fx.index.Excluded())

	for i, est := range minskCatalog() {
		assert.True(t, est.HasValidCoordinate(), "fixture %d has a broken coordinate", i)
		require.NotEqual(t, uuid.Nil, est.ID, fmt.Sprintf("fixture %d has no identity", i))
	}
}
