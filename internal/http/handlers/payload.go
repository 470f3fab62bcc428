package handlers

import (
	"bytes"
	"encoding/json"

	"github.com/preston-bernstein/activities-service/internal/domain/activities"
)

type activityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
	AvailableSpots  int      `json:"available_spots"`
}

func newActivityView(a activities.Activity) activityView {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return activityView{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
		AvailableSpots:  a.AvailableSpots(),
	}
}

// activitiesResponse encodes as a JSON object keyed by activity name.
// encoding/json sorts map keys, so the object is written by hand to keep catalog order.
type activitiesResponse []activities.Activity

func (a activitiesResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, act := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(act.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(newActivityView(act))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
