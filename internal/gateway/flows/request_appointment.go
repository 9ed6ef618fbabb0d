package flows

import (
	"fmt"
	"net/http"

	"vetconnect/internal/gateway/core"
	"vetconnect/pkg/client"
)

// RequestAppointment verifies the pet and the vet before forwarding the
// booking request. The appointments service still re-checks ownership
// and the window; the flow just fails fast with a readable error.
func RequestAppointment() *core.Flow {
	return core.NewFlow("request_appointment",
		core.NewStep("load_pet", LoadPet),
		core.NewStep("verify_pet_ownership", VerifyPetOwnership),
		core.NewStep("load_vet", LoadVet),
		core.NewStep("submit_request", submitAppointmentRequest),
	)
}

func submitAppointmentRequest(fc *core.FlowContext) error {
	vetID, err := fc.ExtractString("vet_id")
	if err != nil {
		return err
	}
	clientID, err := fc.ExtractString("client_id")
	if err != nil {
		return err
	}
	petID, err := fc.ExtractString("pet_id")
	if err != nil {
		return err
	}
	startTime, err := fc.ExtractTime("start_time")
	if err != nil {
		return err
	}
	endTime, err := fc.ExtractTime("end_time")
	if err != nil {
		return err
	}
	reason, err := fc.ExtractString("reason")
	if err != nil {
		return err
	}

	body := map[string]any{
		"vet_id":     vetID,
		"client_id":  clientID,
		"pet_id":     petID,
		"start_time": startTime,
		"end_time":   endTime,
		"reason":     reason,
		"symptoms":   fc.ExtractOptionalString("symptoms"),
	}

	resp, err := fc.Client.AppointmentClient.Create(fc.Ctx, body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("appointment request rejected: %s", client.GetErrorMessage(resp))
	}
	appt, err := fc.Client.AppointmentClient.DecodeAppointment(resp)
	if err != nil {
		return err
	}

	fc.Output["appointment"] = appt
	return nil
}
