package models

// Event is an event listing created by an event organiser
type Event struct {
	ID               ID      `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Location         string  `json:"location"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	OrganiserID      ID      `json:"organiserId,omitempty"`
	MaxParticipants  int     `json:"maxParticipants"`
	EventType        string  `json:"eventType,omitempty"`
	ContactEmail     string  `json:"contactEmail,omitempty"`
	ContactNumber    string  `json:"contactNumber,omitempty"`
	RegistrationLink string  `json:"registrationLink,omitempty"`
	Media            []Media `json:"media,omitempty"`
}

// Key implements Keyed
func (e Event) Key() ID { return e.ID }

// Participant is the backend's record of a student joining an event
type Participant struct {
	ID      ID `json:"id,omitempty"`
	EventID ID `json:"eventId,omitempty"`
	UserID  ID `json:"userId,omitempty"`
}
