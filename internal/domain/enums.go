package domain

type ClientKind string

const (
	ClientIndividual   ClientKind = "Particulier"
	ClientProfessional ClientKind = "Professionnel"
)

// ValidClientKinds is the canonical set of accepted client classifications.
var ValidClientKinds = map[ClientKind]bool{
	ClientIndividual:   true,
	ClientProfessional: true,
}

type Location string

const (
	LocationOnSite Location = "Domicile"
	LocationRemote Location = "À distance"
)

// ValidLocations is the canonical set of accepted intervention locations.
var ValidLocations = map[Location]bool{
	LocationOnSite: true,
	LocationRemote: true,
}

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "Payé"
	PaymentUnpaid PaymentStatus = "À payer"
	PaymentFree   PaymentStatus = "Gratuit"
)

// PaymentStatuses lists payment tags in display order.
var PaymentStatuses = []PaymentStatus{PaymentPaid, PaymentUnpaid, PaymentFree}

// ValidPaymentStatuses is the canonical set of accepted payment tags.
var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentPaid:   true,
	PaymentUnpaid: true,
	PaymentFree:   true,
}

// InterventionFilter selects a subset of interventions in list views.
type InterventionFilter string

const (
	FilterAll    InterventionFilter = "all"
	FilterDone   InterventionFilter = "done"
	FilterTodo   InterventionFilter = "todo"
	FilterUnpaid InterventionFilter = "unpaid"
)

// InterventionFilters lists the filters in tab order.
var InterventionFilters = []InterventionFilter{FilterAll, FilterTodo, FilterDone, FilterUnpaid}

// ParseInterventionFilter maps user input to a filter, defaulting to FilterAll.
func ParseInterventionFilter(s string) InterventionFilter {
	for _, f := range InterventionFilters {
		if string(f) == s {
			return f
		}
	}
	return FilterAll
}
