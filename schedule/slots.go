package schedule

// TimeSlot is a fixed, named hour range used uniformly across all vendors.
type TimeSlot struct {
	ID    string `json:"id"`
	Start int    `json:"start"` // hour, 24h clock
	End   int    `json:"end"`
	Label string `json:"label"`
}

// The canonical catalogue. Slots are non-overlapping and ordered by start
// hour; the IDs double as keys in the per-row slot maps.
var catalogue = []TimeSlot{
	{ID: "9-10", Start: 9, End: 10, Label: "9-10am"},
	{ID: "10-11", Start: 10, End: 11, Label: "10-11am"},
	{ID: "11-12", Start: 11, End: 12, Label: "11-12pm"},
	{ID: "12-13", Start: 12, End: 13, Label: "12-1pm"},
	{ID: "13-14", Start: 13, End: 14, Label: "1-2pm"},
	{ID: "14-15", Start: 14, End: 15, Label: "2-3pm"},
	{ID: "15-16", Start: 15, End: 16, Label: "3-4pm"},
	{ID: "16-17", Start: 16, End: 17, Label: "4-5pm"},
	{ID: "17-18", Start: 17, End: 18, Label: "5-6pm"},
	{ID: "18-19", Start: 18, End: 19, Label: "6-7pm"},
	{ID: "19-20", Start: 19, End: 20, Label: "7-8pm"},
}

// TimeSlots returns the ordered slot catalogue. The result is a copy, so
// callers may not mutate the catalogue.
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(catalogue))
	copy(out, catalogue)
	return out
}

// SlotByID looks a slot up by its id.
func SlotByID(id string) (TimeSlot, bool) {
	for _, s := range catalogue {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// KnownSlotID reports whether id is part of the catalogue.
func KnownSlotID(id string) bool {
	_, ok := SlotByID(id)
	return ok
}
