package flows

import (
	"fmt"
	"net/http"
	"time"

	"vetconnect/internal/gateway/core"
	"vetconnect/pkg/client"
	"vetconnect/pkg/model"
)

// VetDay assembles a vet's day view: the schedule, the booked
// appointments, and the still-free slots for one calendar day.
func VetDay() *core.Flow {
	return core.NewFlow("vet_day",
		core.NewStep("load_schedule", LoadSchedule),
		core.NewStep("resolve_day", resolveDay),
		core.NewStep("list_day_appointments", listDayAppointments),
		core.NewStep("list_free_slots", listFreeSlots),
	)
}

// resolveDay pins the requested day to the schedule's timezone. A day
// without an explicit date means today where the vet works.
func resolveDay(fc *core.FlowContext) error {
	schedule := fc.Process[SCHEDULE].(*model.Schedule)
	loc := schedule.Location()

	day := fc.ExtractOptionalString("day")
	if core.IsMissing(day) {
		day = time.Now().In(loc).Format("2006-01-02")
	}

	dayStart, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return fmt.Errorf("param [day] is not a valid date: %w", err)
	}

	fc.Process[DAY] = day
	fc.Process[DAY_START] = dayStart
	fc.Process[DAY_END] = dayStart.Add(24 * time.Hour)
	fc.Output["day"] = day
	fc.Output["schedule"] = schedule
	return nil
}

func listDayAppointments(fc *core.FlowContext) error {
	vetID, err := fc.ExtractString("vet_id")
	if err != nil {
		return err
	}
	dayStart := fc.Process[DAY_START].(time.Time)
	dayEnd := fc.Process[DAY_END].(time.Time)

	resp, err := fc.Client.AppointmentClient.Search(fc.Ctx, vetID, "", "",
		dayStart.Format(time.RFC3339), dayEnd.Format(time.RFC3339),
		MaxAppointmentsPerDayFetch, 0)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("appointment search failed: %s", client.GetErrorMessage(resp))
	}
	appts, _, err := fc.Client.AppointmentClient.DecodeAppointments(resp)
	if err != nil {
		return err
	}

	fc.Output["appointments"] = appts
	return nil
}

func listFreeSlots(fc *core.FlowContext) error {
	vetID, err := fc.ExtractString("vet_id")
	if err != nil {
		return err
	}
	day := fc.Process[DAY].(string)

	resp, err := fc.Client.ScheduleClient.FreeSlots(fc.Ctx, vetID, day)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("free slot lookup failed: %s", client.GetErrorMessage(resp))
	}
	slots, err := fc.Client.ScheduleClient.DecodeSlots(resp)
	if err != nil {
		return err
	}

	fc.Output["free_slots"] = slots
	return nil
}
