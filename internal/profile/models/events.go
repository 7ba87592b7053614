package models

import (
	"time"

	"github.com/google/uuid"

	"worklink/pkg/domain"
)

// EventType names a domain event. The strings are a stable contract:
// downstream subscribers (notifications, audit trail) key on them, so
// renaming one is a breaking change.
type EventType string

const (
	// Agency events.
	EventAgencyProfileCreated         EventType = "AgencyProfileCreated"
	EventAgencyBasicInfoUpdated       EventType = "AgencyProfileBasicInfoUpdated"
	EventAgencyLicenseInfoUpdated     EventType = "AgencyProfileLicenseInfoUpdated"
	EventAgencyBusinessInfoUpdated    EventType = "AgencyProfileBusinessInfoUpdated"
	EventAgencyDocumentUploaded       EventType = "AgencyProfileDocumentUploaded"
	EventAgencyProfileSubmitted       EventType = "AgencyProfileSubmitted"
	EventAgencyProfileVerified        EventType = "AgencyProfileVerified"
	EventAgencyProfileRejected        EventType = "AgencyProfileRejected"
	EventAgencyProfileArchived        EventType = "AgencyProfileArchived"
	EventAgencyMaidAdded              EventType = "AgencyMaidAdded"
	EventAgencyMaidRemoved            EventType = "AgencyMaidRemoved"
	EventAgencyPlacementRecorded      EventType = "AgencyPlacementRecorded"
	EventAgencyRatingUpdated          EventType = "AgencyRatingUpdated"

	// Maid events.
	EventMaidProfileCreated       EventType = "MaidProfileCreated"
	EventMaidPersonalInfoUpdated  EventType = "MaidProfilePersonalInfoUpdated"
	EventMaidWorkProfileUpdated   EventType = "MaidProfileWorkProfileUpdated"
	EventMaidDocumentUploaded     EventType = "MaidProfileDocumentUploaded"
	EventMaidProfileSubmitted     EventType = "MaidProfileSubmitted"
	EventMaidProfileVerified      EventType = "MaidProfileVerified"
	EventMaidProfileRejected      EventType = "MaidProfileRejected"
	EventMaidProfileArchived      EventType = "MaidProfileArchived"
	EventMaidAvailabilityChanged  EventType = "MaidAvailabilityChanged"
	EventMaidPlacementRecorded    EventType = "MaidPlacementRecorded"
	EventMaidRatingUpdated        EventType = "MaidRatingUpdated"

	// Sponsor events.
	EventSponsorProfileCreated        EventType = "SponsorProfileCreated"
	EventSponsorBasicInfoUpdated      EventType = "SponsorProfileBasicInfoUpdated"
	EventSponsorHouseholdInfoUpdated  EventType = "SponsorProfileHouseholdInfoUpdated"
	EventSponsorDocumentUploaded      EventType = "SponsorProfileDocumentUploaded"
	EventSponsorProfileSubmitted      EventType = "SponsorProfileSubmitted"
	EventSponsorProfileVerified       EventType = "SponsorProfileVerified"
	EventSponsorProfileRejected       EventType = "SponsorProfileRejected"
	EventSponsorProfileArchived       EventType = "SponsorProfileArchived"
	EventSponsorHireRecorded          EventType = "SponsorHireRecorded"
	EventSponsorRatingUpdated         EventType = "SponsorRatingUpdated"
)

// Event is an immutable record of something that happened inside an
// aggregate. Events carry plain data and no references back to the
// aggregate, so they are safe to serialize and hand to any sink.
type Event struct {
	ID          string           `json:"id"`
	Type        EventType        `json:"type"`
	AggregateID domain.ProfileID `json:"aggregate_id"`
	UserID      domain.UserID    `json:"user_id,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Payload     map[string]any   `json:"payload,omitempty"`
}

func newEvent(evtType EventType, aggregateID domain.ProfileID, userID domain.UserID, occurredAt time.Time, payload map[string]any) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        evtType,
		AggregateID: aggregateID,
		UserID:      userID,
		OccurredAt:  occurredAt,
		Payload:     payload,
	}
}
