package model

// IPOCategory selects one of the IPO list views.
type IPOCategory string

const (
	IPOCurrent  IPOCategory = "current"
	IPOUpcoming IPOCategory = "upcoming"
	IPOPast     IPOCategory = "past"
)

// IPOCategories lists every IPO list view in display order.
var IPOCategories = []IPOCategory{IPOCurrent, IPOUpcoming, IPOPast}

// ParseIPOCategory maps a route segment to an IPOCategory.
func ParseIPOCategory(s string) (IPOCategory, bool) {
	switch IPOCategory(s) {
	case IPOCurrent, IPOUpcoming, IPOPast:
		return IPOCategory(s), true
	}
	return "", false
}
