package view

import (
	"github.com/lomoval/famboard/internal/model"
)

const dayKeyLayout = "2006-01-02"

// DayGroup is one rendered section of the availability view: all slots whose
// start falls on the same calendar date, in original order.
type DayGroup struct {
	Date  string                   `json:"date"`
	Slots []model.AvailabilitySlot `json:"slots"`
}

// GroupSlotsByDay buckets slots by the calendar date of their start time.
// Day groups appear in first-seen order and slots keep their relative order
// within each group.
func GroupSlotsByDay(slots []model.AvailabilitySlot) []DayGroup {
	groups := make([]DayGroup, 0)
	index := make(map[string]int)
	for _, slot := range slots {
		key := slot.StartTime.Format(dayKeyLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Date: key})
		}
		groups[i].Slots = append(groups[i].Slots, slot)
	}
	return groups
}

// SlotStatus derives the aggregate status of a slot from its per-member
// statuses: Busy when every member is unavailable, Partial when only some
// are (or someone is tentative), Available otherwise. Empty slots count as
// available.
func SlotStatus(members []model.MemberAvailability) model.SlotStatus {
	busy := 0
	tentative := 0
	for _, m := range members {
		switch m.Status {
		case model.MemberBusy, model.MemberOutOfOffice:
			busy++
		case model.MemberTentative:
			tentative++
		}
	}
	switch {
	case len(members) > 0 && busy == len(members):
		return model.SlotBusy
	case busy > 0 || tentative > 0:
		return model.SlotPartial
	default:
		return model.SlotAvailable
	}
}
