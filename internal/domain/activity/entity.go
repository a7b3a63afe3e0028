package activity

// Activity is one named entry of the directory. Participants keep
// insertion order and never hold the same email twice.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Clone returns a copy that shares no backing array with a.
func (a Activity) Clone() Activity {
	a.Participants = append([]string(nil), a.Participants...)
	return a
}

// HasParticipant reports whether email is signed up.
func (a Activity) HasParticipant(email string) bool {
	return indexOf(a.Participants, email) >= 0
}

func indexOf(list []string, v string) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}
