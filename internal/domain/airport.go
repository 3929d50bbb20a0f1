package domain

type Airport struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type Route struct {
	ID            int64 `json:"id"`
	SourceID      int64 `json:"source_id"`
	DestinationID int64 `json:"destination_id"`
	Distance      int   `json:"distance"`

	Source      *Airport `json:"source,omitempty"`
	Destination *Airport `json:"destination,omitempty"`
}

// Label renders the route the way lists show it, e.g. "Heathrow - Schiphol".
func (r Route) Label() string {
	if r.Source == nil || r.Destination == nil {
		return ""
	}
	return r.Source.Name + " - " + r.Destination.Name
}
