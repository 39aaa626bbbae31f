package model

import "time"

// AppointmentStatus is the state of a booked session.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "agendado"
	AppointmentDone      AppointmentStatus = "concluido"
	AppointmentCancelled AppointmentStatus = "cancelado"
)

// AppointmentStatuses lists the known statuses in display order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentScheduled,
	AppointmentDone,
	AppointmentCancelled,
}

// Valid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentDone, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a row in appointments.csv.
type Appointment struct {
	ID       string
	ClientID string
	Date     time.Time // zero when missing
	Status   AppointmentStatus
	Service  string
}
