package dashboard

import (
	"github.com/cleared-dev/inkboard/internal/aggregate"
	"github.com/cleared-dev/inkboard/internal/model"
)

// SchedulesView is the appointment status breakdown and monthly timeline.
type SchedulesView struct {
	Statuses []aggregate.Share  `json:"statuses"`
	Timeline []aggregate.Bucket `json:"timeline"`
}

// Schedules builds the schedules view. Known statuses always appear first
// in their fixed order, even with a zero count; any other status follows
// in order of first occurrence.
func Schedules(appts []model.Appointment, w aggregate.Window) SchedulesView {
	timeline := aggregate.Aggregate(appts, w, appointmentDate,
		aggregate.Count[model.Appointment](SeriesScheduled, aggregate.Windowed, nil),
		aggregate.Count(SeriesDone, aggregate.Windowed, func(a model.Appointment) bool {
			return a.Status == model.AppointmentDone
		}),
	)
	return SchedulesView{
		Statuses: StatusDistribution(appts).Shares(),
		Timeline: timeline,
	}
}

// StatusDistribution counts appointments per status.
func StatusDistribution(appts []model.Appointment) aggregate.Distribution {
	counted := aggregate.Distribute(appts, func(a model.Appointment) string {
		return string(a.Status)
	}, nil)

	dist := make(aggregate.Distribution, 0, len(model.AppointmentStatuses)+len(counted))
	for _, s := range model.AppointmentStatuses {
		dist = append(dist, aggregate.Slice{Key: string(s), Value: counted.Get(string(s))})
	}
	for _, s := range counted {
		if !model.AppointmentStatus(s.Key).Valid() {
			dist = append(dist, s)
		}
	}
	return dist
}
