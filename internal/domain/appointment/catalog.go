package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// Catalog lists the bookable branches and hourly slots. Empty lists
// accept any value.
type Catalog struct {
	Branches []string
	Slots    []string
}

func (c Catalog) Check(branch, slot string) error {
	if len(c.Branches) > 0 && !contains(c.Branches, branch) {
		return httperr.Validation("unknown_branch", "Unknown branch")
	}
	return c.CheckSlot(slot)
}

func (c Catalog) CheckSlot(slot string) error {
	if len(c.Slots) > 0 && !contains(c.Slots, slot) {
		return httperr.Validation("unknown_slot", "Time is not a bookable slot")
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
