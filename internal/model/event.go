package model

const (
	EventItemCreated  = "item.created"
	EventItemUpdated  = "item.updated"
	EventItemsCleared = "items.cleared"
	EventUserCreated  = "user.created"
)

// Event describes a single change to the items or users collections.
type Event struct {
	Type       string    `json:"type"`
	Item       *Item     `json:"item,omitempty"`
	User       *User     `json:"user,omitempty"`
	OccurredAt Timestamp `json:"occurredAt"`
}

const (
	KindItems = "items"
	KindUsers = "users"
)

// Kind names the collection the event belongs to.
func (e Event) Kind() string {
	if e.User != nil || e.Type == EventUserCreated {
		return KindUsers
	}
	return KindItems
}
