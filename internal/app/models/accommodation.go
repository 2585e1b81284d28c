package models

// Accommodation is a listing created by an accommodation provider
type Accommodation struct {
	ID                 ID      `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description,omitempty"`
	Location           string  `json:"location"`
	Address            string  `json:"address"`
	ZipCode            string  `json:"zipCode,omitempty"`
	Type               string  `json:"type,omitempty"`
	Price              float64 `json:"price"`
	PriceDuration      string  `json:"priceDuration"`
	Capacity           int     `json:"capacity"`
	ProviderID         ID      `json:"providerId,omitempty"`
	AvailabilityStatus bool    `json:"availabilityStatus"`
	ContactNumber      string  `json:"contactNumber,omitempty"`
	Email              string  `json:"email,omitempty"`
	Media              []Media `json:"media,omitempty"`
}

// Key implements Keyed
func (a Accommodation) Key() ID { return a.ID }

// Booking reserves an accommodation for a student between two dates
type Booking struct {
	ID              ID     `json:"id"`
	AccommodationID ID     `json:"accommodationId"`
	StudentID       ID     `json:"studentId"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

// Key implements Keyed
func (b Booking) Key() ID { return b.ID }
