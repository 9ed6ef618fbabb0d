package flows

import (
	"fmt"
	"net/http"

	"vetconnect/internal/gateway/core"
	"vetconnect/pkg/client"
	"vetconnect/pkg/model"
)

// Process keys shared between steps.
const (
	PET       = "pet"
	VET       = "vet"
	SCHEDULE  = "schedule"
	DAY       = "day"
	DAY_START = "day_start"
	DAY_END   = "day_end"

	MaxAppointmentsPerDayFetch = 30
	MaxVetsPerSearch           = 30
)

func LoadPet(fc *core.FlowContext) error {
	petID, err := fc.ExtractString("pet_id")
	if err != nil {
		return err
	}
	resp, err := fc.Client.PetClient.GetByID(fc.Ctx, petID)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pet lookup failed: %s", client.GetErrorMessage(resp))
	}
	pet, err := fc.Client.PetClient.DecodePet(resp)
	if err != nil {
		return err
	}
	fc.Process[PET] = pet
	return nil
}

func VerifyPetOwnership(fc *core.FlowContext) error {
	clientID, err := fc.ExtractString("client_id")
	if err != nil {
		return err
	}
	pet := fc.Process[PET].(*model.Pet)
	if !pet.Active {
		return fmt.Errorf("pet [%v] is not active", pet.ID)
	}
	if pet.OwnerID != clientID {
		return fmt.Errorf("pet [%v] does not belong to the requesting client", pet.ID)
	}
	return nil
}

func LoadVet(fc *core.FlowContext) error {
	vetID, err := fc.ExtractString("vet_id")
	if err != nil {
		return err
	}
	resp, err := fc.Client.VetClient.GetByID(fc.Ctx, vetID)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vet lookup failed: %s", client.GetErrorMessage(resp))
	}
	vet, err := fc.Client.VetClient.DecodeVet(resp)
	if err != nil {
		return err
	}
	if !vet.Active {
		return fmt.Errorf("vet [%v] is not accepting appointments", vet.ID)
	}
	fc.Process[VET] = vet
	return nil
}

func LoadSchedule(fc *core.FlowContext) error {
	vetID, err := fc.ExtractString("vet_id")
	if err != nil {
		return err
	}
	resp, err := fc.Client.ScheduleClient.GetByVet(fc.Ctx, vetID)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("schedule lookup failed: %s", client.GetErrorMessage(resp))
	}
	schedule, err := fc.Client.ScheduleClient.DecodeSchedule(resp)
	if err != nil {
		return err
	}
	fc.Process[SCHEDULE] = schedule
	return nil
}
