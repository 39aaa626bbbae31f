package dataset

import (
	"fmt"
	"io"
	"time"

	"github.com/cleared-dev/inkboard/internal/id"
	"github.com/cleared-dev/inkboard/internal/model"
)

// AppointmentHeader is the CSV header for appointments.csv.
const AppointmentHeader = "id,client_id,date,status,service"

const (
	apptNumFields = 5
	apptColID     = 0
	apptColClient = 1
	apptColDate   = 2
	apptColStatus = 3
	apptColSvc    = 4
)

var appointmentCodec = codec[model.Appointment]{
	entity:    "appointment",
	header:    AppointmentHeader,
	unmarshal: UnmarshalAppointment,
	marshal:   MarshalAppointment,
}

// ReadAppointments reads all appointments from an appointments.csv reader.
func ReadAppointments(r io.Reader, loc *time.Location) ([]model.Appointment, []Warning, error) {
	return appointmentCodec.read(r, loc)
}

// WriteAppointments writes appointments (including header).
func WriteAppointments(w io.Writer, appts []model.Appointment) error {
	return appointmentCodec.write(w, appts)
}

// MarshalAppointment converts an Appointment to a CSV row.
func MarshalAppointment(a model.Appointment) []string {
	row := make([]string, apptNumFields)
	row[apptColID] = a.ID
	row[apptColClient] = a.ClientID
	row[apptColDate] = formatDate(a.Date)
	row[apptColStatus] = string(a.Status)
	row[apptColSvc] = a.Service
	return row
}

// UnmarshalAppointment converts a CSV row to an Appointment.
func UnmarshalAppointment(record []string, loc *time.Location) (model.Appointment, []int, error) {
	if len(record) != apptNumFields {
		return model.Appointment{}, nil, fmt.Errorf("expected %d fields, got %d", apptNumFields, len(record))
	}

	fc := newFieldCheck(loc)
	appt := model.Appointment{
		ID:       id.OrNew(record[apptColID]),
		ClientID: record[apptColClient],
		Date:     fc.date(record, apptColDate),
		Status:   model.AppointmentStatus(record[apptColStatus]),
		Service:  record[apptColSvc],
	}
	return appt, fc.bad, nil
}
