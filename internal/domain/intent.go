package domain

type Intent int

const (
	IntentGeneral Intent = iota
	IntentHours
	IntentLocation
	IntentAmenities
)

func (i Intent) String() string {
	switch i {
	case IntentHours:
		return "hours"
	case IntentLocation:
		return "location"
	case IntentAmenities:
		return "amenities"
	default:
		return "general"
	}
}
