package testutil

import "github.com/preston-bernstein/activities-service/internal/domain/activities"

// SampleActivity returns an activity fixture with the given capacity and roster.
func SampleActivity(name string, capacity int, participants ...string) activities.Activity {
	roster := make([]string, 0, len(participants))
	roster = append(roster, participants...)
	return activities.Activity{
		Name:            name,
		Description:     name + " description",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: capacity,
		Participants:    roster,
	}
}

// SampleCatalog returns a small two-activity catalog: an empty Chess Club
// with two spots and a Programming Class with one participant.
func SampleCatalog() []activities.Activity {
	return []activities.Activity{
		SampleActivity("Chess Club", 2),
		SampleActivity("Programming Class", 20, "emma@mergington.edu"),
	}
}
