package component

// Room type tags. Physical rooms exist in simulated space; virtual rooms are
// logical gathering places (channels, dreams) with no spatial meaning.
const (
	RoomTypePhysical = "physical"
	RoomTypeVirtual  = "virtual"
)

// Room holds the descriptive state of a spatial location agents can occupy.
// ID is caller-assigned and only assumed unique by convention; lookups take
// the first match.
type Room struct {
	ID          string
	Name        string
	Description string
	Type        string
}
