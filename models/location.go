package models

import "time"

// BuskingLocation is a curated spot where street performance is sanctioned.
type BuskingLocation struct {
	ID                     string    `bson:"id" json:"id"`
	LocationName           string    `bson:"locationName" json:"location_name"`
	LocationType           string    `bson:"locationType" json:"location_type"` // e.g. "Shopping Mall"
	State                  string    `bson:"state" json:"state"`
	City                   string    `bson:"city" json:"city"`
	FullAddress            string    `bson:"fullAddress" json:"full_address"`
	IndoorOutdoor          string    `bson:"indoorOutdoor" json:"indoor_outdoor"`
	BuskingAreaDescription string    `bson:"buskingAreaDescription" json:"busking_area_description"`
	CrowdType              string    `bson:"crowdType" json:"crowd_type"`
	SuitableForBusking     string    `bson:"suitableForBusking" json:"suitable_for_busking"`
	Remarks                string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
	IsActive               bool      `bson:"isActive" json:"is_active"`
	CreatedAt              time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt              time.Time `bson:"updatedAt" json:"updated_at"`
}
