package domain

import "time"

// TripRecord is one submitted trip declaration.
//
// None of the business fields are validated; any string (including empty)
// is accepted. Dates are the ISO-8601 text the user entered.
type TripRecord struct {
	ID TripID

	FullName      string
	TrainNumber   string
	DepartureDate string
	ArrivalDate   string
	CarNumber     string
	SeatNumber    string

	AdditionalInfo string
	ContactInfo    string

	SubmittedAt time.Time
}

// TripForm holds the values of the trip form as currently edited.
type TripForm struct {
	FullName      string
	TrainNumber   string
	DepartureDate string
	ArrivalDate   string
	CarNumber     string
	SeatNumber    string

	AdditionalInfo string
	ContactInfo    string
}

// Record builds a trip record from the form snapshot.
func (f TripForm) Record(id TripID, submittedAt time.Time) TripRecord {
	return TripRecord{
		ID:             id,
		FullName:       f.FullName,
		TrainNumber:    f.TrainNumber,
		DepartureDate:  f.DepartureDate,
		ArrivalDate:    f.ArrivalDate,
		CarNumber:      f.CarNumber,
		SeatNumber:     f.SeatNumber,
		AdditionalInfo: f.AdditionalInfo,
		ContactInfo:    f.ContactInfo,
		SubmittedAt:    submittedAt,
	}
}

// TripField names one editable field of TripForm.
type TripField string

const (
	TripFieldFullName       TripField = "fullName"
	TripFieldTrainNumber    TripField = "trainNumber"
	TripFieldDepartureDate  TripField = "departureDate"
	TripFieldArrivalDate    TripField = "arrivalDate"
	TripFieldCarNumber      TripField = "carNumber"
	TripFieldSeatNumber     TripField = "seatNumber"
	TripFieldAdditionalInfo TripField = "additionalInfo"
	TripFieldContactInfo    TripField = "contactInfo"
)

// TripFields lists every editable field in form order.
func TripFields() []TripField {
	return []TripField{
		TripFieldFullName,
		TripFieldTrainNumber,
		TripFieldCarNumber,
		TripFieldDepartureDate,
		TripFieldArrivalDate,
		TripFieldSeatNumber,
		TripFieldAdditionalInfo,
		TripFieldContactInfo,
	}
}

// Set stores value in the named field. It reports false for unknown fields.
func (f *TripForm) Set(field TripField, value string) bool {
	switch field {
	case TripFieldFullName:
		f.FullName = value
	case TripFieldTrainNumber:
		f.TrainNumber = value
	case TripFieldDepartureDate:
		f.DepartureDate = value
	case TripFieldArrivalDate:
		f.ArrivalDate = value
	case TripFieldCarNumber:
		f.CarNumber = value
	case TripFieldSeatNumber:
		f.SeatNumber = value
	case TripFieldAdditionalInfo:
		f.AdditionalInfo = value
	case TripFieldContactInfo:
		f.ContactInfo = value
	default:
		return false
	}
	return true
}
