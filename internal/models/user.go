// internal/models/user.go
package models

import (
	"math"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel             `bson:",inline"`
	Name                  string `json:"name" bson:"name"`
	Email                 string `json:"email" bson:"email"`
	PasswordHash          string `json:"-" bson:"password"`
	Role                  Role   `json:"role" bson:"role"`
	Address               string `json:"address,omitempty" bson:"address,omitempty"`
	Phone                 string `json:"phone,omitempty" bson:"phone,omitempty"`
	Location              string `json:"location,omitempty" bson:"location,omitempty"`
	Aadhar                string `json:"aadhar,omitempty" bson:"aadhar,omitempty"`
	ProfileImage          string `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	ProfileCompleted      bool   `json:"profileCompleted" bson:"profileCompleted"`
	IsMedicineVerified    bool   `json:"isMedicineVerified" bson:"isMedicineVerified"`
	PharmacyLicenseNumber string `json:"pharmacyLicenseNumber,omitempty" bson:"pharmacyLicenseNumber,omitempty"`
	BusinessName          string `json:"businessName,omitempty" bson:"businessName,omitempty"`
	DocumentURL           string `json:"documentUrl,omitempty" bson:"documentUrl,omitempty"`

	// Rating cache, written only by the rating aggregator
	RatingSummary `bson:",inline"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// HasCompleteProfile reports whether every field a vendor must supply is present.
func (u *User) HasCompleteProfile() bool {
	return u.Name != "" && u.Email != "" && u.Phone != "" && u.Location != "" && u.Aadhar != ""
}

// ProfileCompletion is the rounded percentage of filled profile fields.
func (u *User) ProfileCompletion() int {
	fields := []string{u.Name, u.Email, u.Phone, u.Location, u.Aadhar, u.ProfileImage}
	filled := 0
	for _, f := range fields {
		if f != "" {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}

// RatingDistribution counts reviews per star, keyed "1".."5" on the wire.
type RatingDistribution struct {
	One   int64 `json:"1" bson:"1"`
	Two   int64 `json:"2" bson:"2"`
	Three int64 `json:"3" bson:"3"`
	Four  int64 `json:"4" bson:"4"`
	Five  int64 `json:"5" bson:"5"`
}

// Bucket returns a pointer to the counter for a star value, nil when out of range.
func (d *RatingDistribution) Bucket(stars int) *int64 {
	switch stars {
	case 1:
		return &d.One
	case 2:
		return &d.Two
	case 3:
		return &d.Three
	case 4:
		return &d.Four
	case 5:
		return &d.Five
	}
	return nil
}

func (d RatingDistribution) Total() int64 {
	return d.One + d.Two + d.Three + d.Four + d.Five
}

type RatingSummary struct {
	AverageRating      float64            `json:"averageRating" bson:"averageRating"`
	NumReviews         int64              `json:"numReviews" bson:"numReviews"`
	RatingDistribution RatingDistribution `json:"ratingDistribution" bson:"ratingDistribution"`
}
