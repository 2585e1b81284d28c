package dto

import (
	"strings"

	"github.com/yigit/uniconnect/internal/app/models"
)

// SocialLinksForm holds the optional social links shared by signup and profile forms
type SocialLinksForm struct {
	LinkedIn string `json:"linkedin" validate:"absurl"`
	Twitter  string `json:"twitter" validate:"absurl"`
}

// signupBase holds the fields every signup form asks for
type signupBase struct {
	FirstName         string          `json:"firstName" validate:"notblank"`
	LastName          string          `json:"lastName" validate:"notblank"`
	Email             string          `json:"email" validate:"required,uniemail"`
	Password          string          `json:"password" validate:"required,unipassword"`
	ConfirmPassword   string          `json:"confirmPassword" validate:"eqfield=Password"`
	PhoneNumber       string          `json:"phoneNumber" validate:"required,uniphone"`
	ProfilePictureURL string          `json:"profilePictureURL" validate:"absurl"`
	SocialMediaLinks  SocialLinksForm `json:"socialMediaLinks"`
	TermsAccepted     bool            `json:"termsAccepted" validate:"required"`
}

func (b signupBase) payload(profile models.ProfileType) models.SignupPayload {
	return models.SignupPayload{
		User: models.User{
			ProfileType:       profile,
			FirstName:         strings.TrimSpace(b.FirstName),
			LastName:          strings.TrimSpace(b.LastName),
			Email:             strings.TrimSpace(b.Email),
			PhoneNumber:       b.PhoneNumber,
			ProfilePictureURL: b.ProfilePictureURL,
			SocialMediaLinks: models.SocialMediaLinks{
				LinkedIn: b.SocialMediaLinks.LinkedIn,
				Twitter:  b.SocialMediaLinks.Twitter,
			},
		},
		Password: b.Password,
	}
}

// StudentSignupForm is the student registration form
type StudentSignupForm struct {
	signupBase
	UniversityName string `json:"universityName" validate:"notblank"`
	StudentID      string `json:"studentId" validate:"notblank"`
}

// EventOrganiserSignupForm is the event organiser registration form
type EventOrganiserSignupForm struct {
	signupBase
	OrganisationName  string `json:"organisationName" validate:"notblank"`
	CompanyWebsiteURL string `json:"companyWebsiteURL" validate:"required,absurl"`
}

// AccommodationProviderSignupForm is the accommodation provider registration form
type AccommodationProviderSignupForm struct {
	signupBase
	BusinessName string `json:"businessName" validate:"notblank"`
	WebsiteURL   string `json:"websiteURL" validate:"absurl"`
}

// ToPayload converts the form into the pending signup payload
func (f StudentSignupForm) ToPayload() models.SignupPayload {
	p := f.payload(models.ProfileStudent)
	p.UniversityName = strings.TrimSpace(f.UniversityName)
	p.StudentID = strings.TrimSpace(f.StudentID)
	return p
}

// ToPayload converts the form into the pending signup payload
func (f EventOrganiserSignupForm) ToPayload() models.SignupPayload {
	p := f.payload(models.ProfileEventOrganiser)
	p.OrganisationName = strings.TrimSpace(f.OrganisationName)
	p.CompanyWebsiteURL = f.CompanyWebsiteURL
	return p
}

// ToPayload converts the form into the pending signup payload
func (f AccommodationProviderSignupForm) ToPayload() models.SignupPayload {
	p := f.payload(models.ProfileAccommodationProvider)
	p.BusinessName = strings.TrimSpace(f.BusinessName)
	p.WebsiteURL = f.WebsiteURL
	return p
}

// LoginForm is the sign-in form
type LoginForm struct {
	Email    string `json:"email" validate:"required,uniemail"`
	Password string `json:"password" validate:"required"`
}

// OtpForm is the one-time password confirmation form
type OtpForm struct {
	OTP string `json:"otp" validate:"notblank"`
}

// EventForm is the organiser's add-event form
type EventForm struct {
	Title            string `json:"title" validate:"notblank"`
	Description      string `json:"description" validate:"notblank"`
	Location         string `json:"location" validate:"notblank"`
	StartDate        string `json:"startDate" validate:"required"`
	EndDate          string `json:"endDate" validate:"required"`
	MaxParticipants  int    `json:"maxParticipants" validate:"gt=0"`
	EventType        string `json:"eventType"`
	ContactEmail     string `json:"contactEmail" validate:"omitempty,uniemail"`
	ContactNumber    string `json:"contactNumber" validate:"omitempty,uniphone"`
	RegistrationLink string `json:"registrationLink" validate:"absurl"`
}

// ToModel converts the form into an event owned by organiserID
func (f EventForm) ToModel(organiserID models.ID) models.Event {
	return models.Event{
		Title:            strings.TrimSpace(f.Title),
		Description:      strings.TrimSpace(f.Description),
		Location:         strings.TrimSpace(f.Location),
		StartDate:        f.StartDate,
		EndDate:          f.EndDate,
		OrganiserID:      organiserID,
		MaxParticipants:  f.MaxParticipants,
		EventType:        f.EventType,
		ContactEmail:     f.ContactEmail,
		ContactNumber:    f.ContactNumber,
		RegistrationLink: f.RegistrationLink,
	}
}

// AccommodationForm is the provider's add-accommodation form
type AccommodationForm struct {
	Title              string  `json:"title" validate:"notblank"`
	Description        string  `json:"description" validate:"notblank"`
	Location           string  `json:"location" validate:"notblank"`
	Address            string  `json:"address" validate:"notblank"`
	ZipCode            string  `json:"zipCode" validate:"required,zipcode"`
	Type               string  `json:"type" validate:"notblank"`
	Capacity           int     `json:"capacity" validate:"gt=0"`
	Price              float64 `json:"price" validate:"gt=0"`
	PriceDuration      string  `json:"priceDuration" validate:"omitempty,oneof=night week month"`
	ContactNumber      string  `json:"contactNumber" validate:"notblank"`
	Email              string  `json:"email" validate:"omitempty,uniemail"`
	AvailabilityStatus bool    `json:"availabilityStatus"`
}

// ToModel converts the form into an accommodation owned by providerID
func (f AccommodationForm) ToModel(providerID models.ID) models.Accommodation {
	duration := f.PriceDuration
	if duration == "" {
		duration = "month"
	}
	return models.Accommodation{
		Title:              strings.TrimSpace(f.Title),
		Description:        strings.TrimSpace(f.Description),
		Location:           strings.TrimSpace(f.Location),
		Address:            strings.TrimSpace(f.Address),
		ZipCode:            f.ZipCode,
		Type:               f.Type,
		Price:              f.Price,
		PriceDuration:      duration,
		Capacity:           f.Capacity,
		ProviderID:         providerID,
		AvailabilityStatus: f.AvailabilityStatus,
		ContactNumber:      f.ContactNumber,
		Email:              f.Email,
	}
}

// BookingForm is the student's booking request
type BookingForm struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// ToModel converts the form into a booking for the given accommodation and student
func (f BookingForm) ToModel(accommodationID, studentID models.ID) models.Booking {
	return models.Booking{
		AccommodationID: accommodationID,
		StudentID:       studentID,
		StartDate:       f.StartDate,
		EndDate:         f.EndDate,
	}
}

// CommentForm is the comment box under a post
type CommentForm struct {
	PostID   string `json:"postId" validate:"required"`
	PostType string `json:"postType" validate:"required,oneof=EVENT ACCOMMODATION"`
	Text     string `json:"text" validate:"notblank"`
}

// ToModel converts the form into a comment written by user
func (f CommentForm) ToModel(user *models.User) models.Comment {
	c := models.Comment{
		PostID:   models.ID(f.PostID),
		PostType: models.PostType(f.PostType),
		Text:     strings.TrimSpace(f.Text),
	}
	if user != nil {
		c.UserID = user.ID
		c.UserName = user.DisplayName()
	}
	return c
}

// FeedbackForm is the free-text feedback page
type FeedbackForm struct {
	Text string `json:"feedback" validate:"notblank"`
}

// ContactForm is the contact-us page
type ContactForm struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"required,uniemail"`
	Message string `json:"message" validate:"notblank"`
}

// ToFeedback converts the contact form into a feedback submission
func (f ContactForm) ToFeedback() models.Feedback {
	return models.Feedback{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Text:  strings.TrimSpace(f.Message),
	}
}

// ProfileForm is the profile editor
type ProfileForm struct {
	FirstName         string          `json:"firstName" validate:"notblank"`
	LastName          string          `json:"lastName" validate:"notblank"`
	PhoneNumber       string          `json:"phoneNumber" validate:"omitempty,uniphone"`
	ProfilePictureURL string          `json:"profilePictureURL" validate:"absurl"`
	SocialMediaLinks  SocialLinksForm `json:"socialMediaLinks"`
}

// Apply copies the edited fields onto a copy of current
func (f ProfileForm) Apply(current models.User) models.User {
	current.FirstName = strings.TrimSpace(f.FirstName)
	current.LastName = strings.TrimSpace(f.LastName)
	if f.PhoneNumber != "" {
		current.PhoneNumber = f.PhoneNumber
	}
	current.ProfilePictureURL = f.ProfilePictureURL
	current.SocialMediaLinks = models.SocialMediaLinks{
		LinkedIn: f.SocialMediaLinks.LinkedIn,
		Twitter:  f.SocialMediaLinks.Twitter,
	}
	return current
}
