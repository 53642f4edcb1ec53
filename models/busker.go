package models

import "time"

// VerificationStatus tracks busker identity review.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// IDProofType enumerates accepted identity documents.
type IDProofType string

const (
	IDProofIC             IDProofType = "ic"
	IDProofPassport       IDProofType = "passport"
	IDProofDrivingLicense IDProofType = "driving_license"
)

// Busker is the performer profile attached to a user account.
type Busker struct {
	ID                 string             `bson:"id" json:"id"`
	UserID             string             `bson:"userId" json:"user_id"`
	StageName          string             `bson:"stageName,omitempty" json:"stage_name,omitempty"`
	Bio                string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Genres             []string           `bson:"genres,omitempty" json:"genres,omitempty"`
	ExperienceYears    int                `bson:"experienceYears,omitempty" json:"experience_years,omitempty"`
	IDProofURL         string             `bson:"idProofUrl,omitempty" json:"id_proof_url,omitempty"`
	IDProofType        IDProofType        `bson:"idProofType,omitempty" json:"id_proof_type,omitempty"`
	VerificationStatus VerificationStatus `bson:"verificationStatus" json:"verification_status"`
	VerificationNotes  string             `bson:"verificationNotes,omitempty" json:"verification_notes,omitempty"`
	VerifiedAt         *time.Time         `bson:"verifiedAt,omitempty" json:"verified_at,omitempty"`
	VerifiedBy         string             `bson:"verifiedBy,omitempty" json:"verified_by,omitempty"`
	TotalShows         int                `bson:"totalShows" json:"total_shows"`
	AverageRating      float64            `bson:"averageRating" json:"average_rating"`
	CitiesPerformed    []string           `bson:"citiesPerformed,omitempty" json:"cities_performed,omitempty"`
	IsAvailable        bool               `bson:"isAvailable" json:"is_available"`
	CreatedAt          time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updated_at"`
}
