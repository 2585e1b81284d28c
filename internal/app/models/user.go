package models

import "strings"

// ProfileType selects which dashboard and signup form a user gets
type ProfileType string

const (
	ProfileStudent               ProfileType = "student"
	ProfileEventOrganiser        ProfileType = "eventOrganiser"
	ProfileAccommodationProvider ProfileType = "accommodationProvider"
)

// Valid reports whether p is one of the three known profile types
func (p ProfileType) Valid() bool {
	switch p {
	case ProfileStudent, ProfileEventOrganiser, ProfileAccommodationProvider:
		return true
	}
	return false
}

// SocialMediaLinks holds optional profile links
type SocialMediaLinks struct {
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
}

// User is the authenticated account. Role-specific fields are empty for the
// other profile types.
type User struct {
	ID                ID               `json:"id" yaml:"id"`
	ProfileType       ProfileType      `json:"profileType" yaml:"profileType"`
	FirstName         string           `json:"firstName" yaml:"firstName"`
	LastName          string           `json:"lastName" yaml:"lastName"`
	Email             string           `json:"email" yaml:"email"`
	PhoneNumber       string           `json:"phoneNumber,omitempty" yaml:"phoneNumber,omitempty"`
	ProfilePictureURL string           `json:"profilePictureURL,omitempty" yaml:"profilePictureURL,omitempty"`
	SocialMediaLinks  SocialMediaLinks `json:"socialMediaLinks" yaml:"socialMediaLinks"`

	// student
	UniversityName string `json:"universityName,omitempty" yaml:"universityName,omitempty"`
	UniversityID   string `json:"universityId,omitempty" yaml:"universityId,omitempty"`
	StudentID      string `json:"studentId,omitempty" yaml:"studentId,omitempty"`

	// event organiser
	OrganisationName  string `json:"organisationName,omitempty" yaml:"organisationName,omitempty"`
	CompanyWebsiteURL string `json:"companyWebsiteURL,omitempty" yaml:"companyWebsiteURL,omitempty"`

	// accommodation provider
	BusinessName string `json:"businessName,omitempty" yaml:"businessName,omitempty"`
	WebsiteURL   string `json:"websiteURL,omitempty" yaml:"websiteURL,omitempty"`
}

// IsEmpty reports whether u carries neither an id nor an email
func (u *User) IsEmpty() bool {
	return u == nil || (u.ID == "" && strings.TrimSpace(u.Email) == "")
}

// DisplayName is the name shown next to comments and chat messages
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SignupPayload is the signup form data held between submission and OTP
// confirmation.
type SignupPayload struct {
	User     `yaml:",inline"`
	Password string `json:"password" yaml:"-"`
}

// Credentials is the login request body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
