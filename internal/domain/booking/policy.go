package booking

import "github.com/stayhost/stayhost-api/internal/domain/pricing"

// approvalFlags force an event into the request workflow
var approvalFlags = map[pricing.RiskFlag]struct{}{
	pricing.FlagAlcohol:        {},
	pricing.FlagAmplifiedSound: {},
	pricing.FlagLateEnd:        {},
	pricing.FlagOverParking:    {},
	pricing.FlagProduction:     {},
	pricing.FlagWedding:        {},
}

// Decision is the outcome of submitting a quote
type Decision struct {
	Mode            pricing.Mode `json:"mode"`
	Status          Status       `json:"status"`
	BlocksCalendar  bool         `json:"blocksCalendar"`
	RequiresRequest bool         `json:"requiresRequest"`
}

// Decide derives the definitive mode and status of a submission. Stays are
// always instant. Events carrying any approval flag, or proposing an unknown
// mode, go through a request.
func Decide(kind pricing.Kind, proposed pricing.Mode, flags []pricing.RiskFlag) Decision {
	var d Decision

	switch kind {
	case pricing.KindStay:
		d.Mode = pricing.ModeInstant
	default:
		for _, f := range flags {
			if _, ok := approvalFlags[f]; ok {
				d.RequiresRequest = true
				break
			}
		}
		switch {
		case d.RequiresRequest:
			d.Mode = pricing.ModeRequest
		case proposed == pricing.ModeInstant:
			d.Mode = pricing.ModeInstant
		default:
			d.Mode = pricing.ModeRequest
		}
	}

	if d.Mode == pricing.ModeInstant {
		d.Status = StatusAwaitingPayment
	} else {
		d.Status = StatusRequested
	}
	d.BlocksCalendar = d.Status.IsBlocking()
	return d
}
