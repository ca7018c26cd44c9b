package fleet

import (
	"context"
	"errors"

	"civicreport-be/models"
	"civicreport-be/municipal"
)

var ErrNoVehicleAvailable = errors.New("no vehicle available")

// FleetSource returns the vehicles of one municipality. catalog.Catalog.Fleet
// satisfies it.
type FleetSource func(municipalityID string) []models.FleetVehicle

// Dispatcher chooses a vehicle with municipal.RankFleetVehicles and claims
// it through a Reserver, moving down the ranking when a vehicle is taken.
// Only the report's own municipality fleet is considered.
type Dispatcher struct {
	fleet    FleetSource
	reserver Reserver
}

func NewDispatcher(fleet FleetSource, reserver Reserver) *Dispatcher {
	return &Dispatcher{fleet: fleet, reserver: reserver}
}

// vehicles is empty for an unset municipality so a report without one never
// draws from every fleet.
func (d *Dispatcher) vehicles(municipalityID string) []models.FleetVehicle {
	if municipalityID == "" {
		return nil
	}
	return d.fleet(municipalityID)
}

func (d *Dispatcher) Dispatch(ctx context.Context, municipalityID, departmentID string, category models.Category, reportID string) (models.FleetVehicle, error) {
	for _, v := range municipal.RankFleetVehicles(d.vehicles(municipalityID), departmentID, category) {
		ok, err := d.reserver.Reserve(ctx, v.ID, reportID)
		if err != nil {
			return models.FleetVehicle{}, err
		}
		if ok {
			v.Status = models.VehicleDispatched
			return v, nil
		}
	}
	return models.FleetVehicle{}, ErrNoVehicleAvailable
}

// Claim reserves a specific vehicle chosen by staff from the municipality's
// fleet.
func (d *Dispatcher) Claim(ctx context.Context, municipalityID, vehicleID, reportID string) (models.FleetVehicle, error) {
	for _, v := range d.vehicles(municipalityID) {
		if v.ID != vehicleID {
			continue
		}
		if v.Status != models.VehicleAvailable {
			return models.FleetVehicle{}, ErrNoVehicleAvailable
		}
		ok, err := d.reserver.Reserve(ctx, v.ID, reportID)
		if err != nil {
			return models.FleetVehicle{}, err
		}
		if !ok {
			return models.FleetVehicle{}, ErrNoVehicleAvailable
		}
		v.Status = models.VehicleDispatched
		return v, nil
	}
	return models.FleetVehicle{}, ErrNoVehicleAvailable
}

// Release frees vehicleID if reportID is the one holding it.
func (d *Dispatcher) Release(ctx context.Context, vehicleID, reportID string) error {
	if vehicleID == "" {
		return nil
	}
	holder, err := d.reserver.Holder(ctx, vehicleID)
	if err != nil {
		return err
	}
	if holder != reportID {
		return nil
	}
	return d.reserver.Release(ctx, vehicleID)
}

// Availability reports the municipality's vehicles with reserved ones marked
// dispatched.
func (d *Dispatcher) Availability(ctx context.Context, municipalityID string) ([]models.FleetVehicle, error) {
	fleet := d.vehicles(municipalityID)
	out := make([]models.FleetVehicle, 0, len(fleet))
	for _, v := range fleet {
		if v.Status == models.VehicleAvailable {
			holder, err := d.reserver.Holder(ctx, v.ID)
			if err != nil {
				return nil, err
			}
			if holder != "" {
				v.Status = models.VehicleDispatched
			}
		}
		out = append(out, v)
	}
	return out, nil
}
