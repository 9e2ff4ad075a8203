package maintenance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"farm-manager/core/reconcile"
	"farm-manager/core/utils"
	"farm-manager/feature/maintenance/models"
)

const dateLayout = "2006-01-02"

// ParseInput reads a flat JSON body. The event's own fields are machine_id,
// type, description and performed_at; every other key is kept as a supply
// field, and the service drops the ones the profile does not track. A nested
// "supplies" object is accepted too.
//
// Numbers are kept as json.Number so quantities never pass through float64.
func ParseInput(body []byte) (models.Input, error) {
	var in models.Input

	raw := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	supplies := reconcile.Snapshot{}
	for key, val := range raw {
		switch key {
		case "machine_id":
			id := utils.ToInt(val)
			if id < 0 || (id == 0 && utils.ToString(val) != "0") {
				return in, fmt.Errorf("%w: machine_id %q is not a valid id", ErrInvalidEvent, utils.ToString(val))
			}
			u := uint(id)
			in.MachineID = &u
		case "type":
			t, ok := val.(string)
			if !ok {
				return in, fmt.Errorf("%w: type must be a string", ErrInvalidEvent)
			}
			in.Type = &t
		case "description":
			d := utils.ToString(val)
			in.Description = &d
		case "performed_at":
			at, err := parseTime(utils.ToString(val))
			if err != nil {
				return in, fmt.Errorf("%w: performed_at: %v", ErrInvalidEvent, err)
			}
			in.PerformedAt = &at
		case "supplies":
			nested, ok := val.(map[string]any)
			if !ok {
				return in, fmt.Errorf("%w: supplies must be an object", ErrInvalidEvent)
			}
			for k, v := range nested {
				supplies[k] = v
			}
		default:
			supplies[key] = val
		}
	}
	in.Supplies = supplies
	return in, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}
