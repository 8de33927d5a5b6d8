package embedded

import "time"

//sqlmodel:table name="events"
type Event struct {
	time.Time
	Name string
}
