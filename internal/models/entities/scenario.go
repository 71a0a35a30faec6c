package entities

// Window is a closed-open unavailability interval in minutes from the
// simulation epoch. Airport curfews are plain windows.
type Window struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Availability is an aircraft unavailability window, optionally pinned to a
// specific airport. A nil LocationID means the window applies wherever the
// aircraft happens to be.
type Availability struct {
	From       int     `json:"from"`
	To         int     `json:"to"`
	LocationID *string `json:"location_id"`
}

// Airport is a node in the generated network. MTT is the minimum turn time in
// minutes between an arrival and the next departure at this airport.
type Airport struct {
	ID          string   `json:"id"`
	MTT         int      `json:"mtt"`
	Disruptions []Window `json:"disruptions"`
}

// Aircraft starts at InitialLocationID and may carry one maintenance window.
type Aircraft struct {
	ID                string         `json:"id"`
	InitialLocationID string         `json:"initial_location_id"`
	Disruptions       []Availability `json:"disruptions"`
}

// FlightState tags a flight's scheduling state. Generated flights are always
// Unscheduled; the other states exist for the downstream recovery engine.
type FlightState string

const (
	StateUnscheduled FlightState = "Unscheduled"
	StateScheduled   FlightState = "Scheduled"
	StateDelayed     FlightState = "Delayed"
)

// ReasonWaiting is the initial unscheduled reason: the flight has simply not
// been assigned yet.
const ReasonWaiting = "Waiting"

// FlightStatus carries the state tag plus an optional reason. At generation
// time the status is always {Unscheduled, Waiting} with no further payload.
type FlightStatus struct {
	State  FlightState `json:"state"`
	Reason string      `json:"reason,omitempty"`
}

// Flight is a single leg. AircraftID is always nil at generation time; the
// downstream scheduler assigns it.
type Flight struct {
	ID            string       `json:"id"`
	OriginID      string       `json:"origin_id"`
	DestinationID string       `json:"destination_id"`
	DepartureTime int          `json:"departure_time"`
	ArrivalTime   int          `json:"arrival_time"`
	AircraftID    *string      `json:"aircraft_id"`
	Status        FlightStatus `json:"status"`
}

// Scenario is the complete generated document.
type Scenario struct {
	Airports []Airport  `json:"airports"`
	Aircraft []Aircraft `json:"aircraft"`
	Flights  []Flight   `json:"flights"`
}
