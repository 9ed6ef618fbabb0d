package flows

import (
	"fmt"
	"net/http"

	"vetconnect/internal/gateway/core"
	"vetconnect/pkg/client"
)

// SearchVets looks up active vets by city and/or specialization.
func SearchVets() *core.Flow {
	return core.NewFlow("search_vets",
		core.NewStep("search_vets", searchVets),
	)
}

func searchVets(fc *core.FlowContext) error {
	city := fc.ExtractOptionalString("city")
	specialization := fc.ExtractOptionalString("specialization")
	if core.IsMissing(city) && core.IsMissing(specialization) {
		return fmt.Errorf("at least one of [city, specialization] is required")
	}

	limit := MaxVetsPerSearch
	// JSON numbers land as float64 in the input map.
	if raw, ok := fc.Input["limit"].(float64); ok && raw > 0 && int(raw) < MaxVetsPerSearch {
		limit = int(raw)
	}
	var offset int64
	if raw, ok := fc.Input["offset"].(float64); ok && raw > 0 {
		offset = int64(raw)
	}

	resp, err := fc.Client.VetClient.Search(fc.Ctx, city, specialization, limit, offset)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vet search failed: %s", client.GetErrorMessage(resp))
	}
	vets, metadata, err := fc.Client.VetClient.DecodeVets(resp)
	if err != nil {
		return err
	}

	fc.Output["vets"] = vets
	fc.Output["total_count"] = metadata.TotalCount
	return nil
}
