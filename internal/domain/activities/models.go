package activities

// Activity is a named, capacity-bounded group participants can join.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// AvailableSpots is derived from capacity and the current roster.
func (a Activity) AvailableSpots() int {
	spots := a.MaxParticipants - len(a.Participants)
	if spots < 0 {
		return 0
	}
	return spots
}

// HasParticipant reports whether email is on the roster.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share the roster slice.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}
