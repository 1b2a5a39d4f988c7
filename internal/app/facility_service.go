package app

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	kmPerDegreeLat      = 111.0
	DefaultSearchRadius = 5.0
	FacilityTypeAll     = "all"
)

var facilityTypes = []string{"hospital", "clinic", "emergency", "pharmacy", "diagnostic"}

var facilityNames = map[string][]string{
	"hospital":   {"City General Hospital", "Metro Medical Center", "Regional Health Hospital", "Community Hospital", "Medical Center"},
	"clinic":     {"Family Health Clinic", "Quick Care Clinic", "Primary Care Center", "Health Plus Clinic", "Wellness Clinic"},
	"emergency":  {"Emergency Medical Center", "Urgent Care", "Emergency Hospital", "Crisis Care Center", "Emergency Services"},
	"pharmacy":   {"Health Pharmacy", "MedPlus Pharmacy", "Care Pharmacy", "Wellness Pharmacy", "Quick Pharmacy"},
	"diagnostic": {"Diagnostic Center", "Lab Services", "Medical Diagnostics", "Health Lab", "Scan Center"},
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type NearbyFacility struct {
	PlaceID      string `json:"place_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Vicinity     string `json:"vicinity"`
	AddressLine1 string `json:"address_line1"`
	Geometry     struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
	Contact struct {
		Phone string `json:"phone"`
	} `json:"contact"`
	Distance     string `json:"distance"`
	OpeningHours string `json:"opening_hours"`
	Rating       string `json:"rating"`
	distanceKm   float64
}

type NearbySearch struct {
	Facilities []NearbyFacility `json:"facilities"`
	Count      int              `json:"count"`
	Radius     float64          `json:"radius"`
	Center     LatLng           `json:"center"`
}

type Facility struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	Distance     string  `json:"distance"`
	Rating       float64 `json:"rating"`
	Available24h bool    `json:"available24h"`
	Coordinates  LatLng  `json:"coordinates"`
}

type FacilityDetails struct {
	PlaceID              string  `json:"place_id"`
	Name                 string  `json:"name"`
	FormattedAddress     string  `json:"formatted_address"`
	FormattedPhoneNumber string  `json:"formatted_phone_number"`
	Website              string  `json:"website"`
	Rating               float64 `json:"rating"`
	UserRatingsTotal     int     `json:"user_ratings_total"`
	OpeningHours         struct {
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

// FacilityService serves mock facility data. Nothing here talks to a real
// places provider.
type FacilityService struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewFacilityService(rnd *rand.Rand) *FacilityService {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return &FacilityService{rnd: rnd, now: time.Now}
}

// Nearby generates 8 to 15 facilities uniformly placed within radiusKm of
// center, nearest first.
func (s *FacilityService) Nearby(center LatLng, radiusKm float64, facilityType string) NearbySearch {
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadius
	}
	facilityType = strings.ToLower(strings.TrimSpace(facilityType))
	if facilityType == "" {
		facilityType = FacilityTypeAll
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.now().UnixMilli()
	count := s.rnd.IntN(8) + 8
	facilities := make([]NearbyFacility, 0, count)
	for i := 0; i < count; i++ {
		angle := s.rnd.Float64() * 2 * math.Pi
		distance := s.rnd.Float64() * radiusKm
		deltaLat := (distance / kmPerDegreeLat) * math.Cos(angle)
		deltaLng := (distance / (kmPerDegreeLat * math.Cos(center.Lat*math.Pi/180))) * math.Sin(angle)

		category := facilityType
		if category == FacilityTypeAll {
			category = facilityTypes[s.rnd.IntN(len(facilityTypes))]
		}

		f := NearbyFacility{
			PlaceID:      fmt.Sprintf("facility_%d_%d", i, stamp),
			Name:         s.facilityName(category),
			Category:     category,
			Vicinity:     fmt.Sprintf("Street %d, Medical District", i+1),
			AddressLine1: fmt.Sprintf("%d Healthcare Ave", s.rnd.IntN(999)+1),
			Distance:     fmt.Sprintf("%.1f", distance),
			OpeningHours: "Mon-Fri 9AM-6PM",
			Rating:       fmt.Sprintf("%.1f", 3.5+s.rnd.Float64()*1.5),
			distanceKm:   distance,
		}
		f.Geometry.Location = LatLng{Lat: center.Lat + deltaLat, Lng: center.Lng + deltaLng}
		f.Contact.Phone = fmt.Sprintf("+91-11-%d-%d", s.rnd.IntN(9000)+1000, s.rnd.IntN(9000)+1000)
		if s.rnd.Float64() > 0.3 {
			f.OpeningHours = "Open 24 hours"
		}
		facilities = append(facilities, f)
	}

	sort.SliceStable(facilities, func(i, j int) bool {
		return facilities[i].distanceKm < facilities[j].distanceKm
	})

	return NearbySearch{
		Facilities: facilities,
		Count:      len(facilities),
		Radius:     radiusKm,
		Center:     center,
	}
}

func (s *FacilityService) facilityName(category string) string {
	names, ok := facilityNames[category]
	if !ok {
		names = facilityNames["hospital"]
	}
	return names[s.rnd.IntN(len(names))]
}

// List returns the fixed facility list, filtered by type unless "all".
func (s *FacilityService) List(facilityType string) []Facility {
	facilityType = strings.ToLower(strings.TrimSpace(facilityType))
	all := staticFacilities()
	if facilityType == "" || facilityType == FacilityTypeAll {
		return all
	}
	filtered := make([]Facility, 0, len(all))
	for _, f := range all {
		if f.Type == facilityType {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func (s *FacilityService) Details(placeID string) FacilityDetails {
	d := FacilityDetails{
		PlaceID:              placeID,
		Name:                 "Sample Healthcare Facility",
		FormattedAddress:     "123 Healthcare Street, Medical District, City 12345",
		FormattedPhoneNumber: "+91-11-2345-6789",
		Website:              "https://example-hospital.com",
		Rating:               4.3,
		UserRatingsTotal:     127,
	}
	d.OpeningHours.WeekdayText = []string{
		"Monday: 8:00 AM – 8:00 PM",
		"Tuesday: 8:00 AM – 8:00 PM",
		"Wednesday: 8:00 AM – 8:00 PM",
		"Thursday: 8:00 AM – 8:00 PM",
		"Friday: 8:00 AM – 8:00 PM",
		"Saturday: 9:00 AM – 6:00 PM",
		"Sunday: 10:00 AM – 4:00 PM",
	}
	for _, ref := range []string{"sample1", "sample2"} {
		d.Photos = append(d.Photos, struct {
			PhotoReference string `json:"photo_reference"`
		}{PhotoReference: ref})
	}
	return d
}

func staticFacilities() []Facility {
	return []Facility{
		{
			ID:           "1",
			Name:         "City General Hospital",
			Type:         "hospital",
			Address:      "123 Main Street, Central District",
			Phone:        "+91-11-2345-6789",
			Distance:     "2.3 km",
			Rating:       4.5,
			Available24h: true,
			Coordinates:  LatLng{Lat: 28.6139, Lng: 77.2090},
		},
		{
			ID:           "2",
			Name:         "Heart Care Clinic",
			Type:         "clinic",
			Address:      "456 Healthcare Avenue, Medical Plaza",
			Phone:        "+91-11-9876-5432",
			Distance:     "1.8 km",
			Rating:       4.2,
			Available24h: false,
			Coordinates:  LatLng{Lat: 28.6129, Lng: 77.2080},
		},
		{
			ID:           "3",
			Name:         "Emergency Medical Center",
			Type:         "emergency",
			Address:      "789 Emergency Lane, Quick Response Zone",
			Phone:        "+91-11-1111-0000",
			Distance:     "0.9 km",
			Rating:       4.8,
			Available24h: true,
			Coordinates:  LatLng{Lat: 28.6149, Lng: 77.2100},
		},
	}
}
