package fleet

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"civicreport-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waterFleet() []models.FleetVehicle {
	return []models.FleetVehicle{
		{ID: "tanker-1", Type: "water-tanker", Status: models.VehicleAvailable, DepartmentID: "water-sanitation"},
		{ID: "tanker-2", Type: "water-tanker", Status: models.VehicleMaintenance, DepartmentID: "water-sanitation"},
		{ID: "truck-1", Type: "utility-truck", Status: models.VehicleAvailable, DepartmentID: "water-sanitation"},
		{ID: "bakkie-1", Type: "bakkie", Status: models.VehicleAvailable, DepartmentID: "water-sanitation"},
	}
}

func byMunicipality(fleets map[string][]models.FleetVehicle) FleetSource {
	return func(id string) []models.FleetVehicle { return fleets[id] }
}

func waterDispatcher() *Dispatcher {
	return NewDispatcher(byMunicipality(map[string][]models.FleetVehicle{"sol-plaatje": waterFleet()}), NewMemoryReserver())
}

func TestDispatchStaysInMunicipality(t *testing.T) {
	d := NewDispatcher(byMunicipality(map[string][]models.FleetVehicle{
		"sol-plaatje": waterFleet(),
		"dawid-kruiper": {
			{ID: "dk-tanker", Type: "water-tanker", Status: models.VehicleMaintenance, DepartmentID: "water-sanitation"},
		},
	}), NewMemoryReserver())
	ctx := context.Background()

	_, err := d.Dispatch(ctx, "dawid-kruiper", "water-sanitation", models.CategoryWater, "r1")
	assert.ErrorIs(t, err, ErrNoVehicleAvailable)
	_, err = d.Claim(ctx, "dawid-kruiper", "tanker-1", "r1")
	assert.ErrorIs(t, err, ErrNoVehicleAvailable)
	_, err = d.Dispatch(ctx, "", "water-sanitation", models.CategoryWater, "r1")
	assert.ErrorIs(t, err, ErrNoVehicleAvailable)

	all, err := d.Availability(ctx, "dawid-kruiper")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "dk-tanker", all[0].ID)
}

func TestDispatchPrefersMatchingType(t *testing.T) {
	d := waterDispatcher()

	v, err := d.Dispatch(context.Background(), "sol-plaatje", "water-sanitation", models.CategoryWater, "r1")
	require.NoError(t, err)
	assert.Equal(t, "tanker-1", v.ID)
	assert.Equal(t, models.VehicleDispatched, v.Status)

	v, err = d.Dispatch(context.Background(), "sol-plaatje", "water-sanitation", models.CategoryWater, "r2")
	require.NoError(t, err)
	assert.Equal(t, "truck-1", v.ID)
}

func TestDispatchExhaustsFleet(t *testing.T) {
	d := waterDispatcher()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := d.Dispatch(ctx, "sol-plaatje", "water-sanitation", models.CategoryWater, fmt.Sprint("r", i))
		require.NoError(t, err)
	}
	_, err := d.Dispatch(ctx, "sol-plaatje", "water-sanitation", models.CategoryWater, "r-last")
	assert.ErrorIs(t, err, ErrNoVehicleAvailable)

	_, err = d.Dispatch(ctx, "sol-plaatje", "electricity", models.CategoryElectricity, "r-other")
	assert.ErrorIs(t, err, ErrNoVehicleAvailable)
}

func TestConcurrentDispatchNeverSharesVehicle(t *testing.T) {
	d := waterDispatcher()
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]string{}
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reportID := fmt.Sprint("r", i)
			v, err := d.Dispatch(ctx, "sol-plaatje", "water-sanitation", models.CategoryWater, reportID)
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if other, dup := seen[v.ID]; dup {
				t.Errorf("vehicle %s given to %s and %s", v.ID, other, reportID)
			}
			seen[v.ID] = reportID
		}(i)
	}
	wg.Wait()
	assert.Len(t, seen, 3)
}

func TestReleaseOnlyByHolder(t *testing.T) {
	d := waterDispatcher()
	ctx := context.Background()

	v, err := d.Claim(ctx, "sol-plaatje", "truck-1", "r1")
	require.NoError(t, err)

	require.NoError(t, d.Release(ctx, v.ID, "someone-else"))
	_, err = d.Claim(ctx, "sol-plaatje", "truck-1", "r2")
	assert.ErrorIs(t, err, ErrNoVehicleAvailable)

	require.NoError(t, d.Release(ctx, v.ID, "r1"))
	_, err = d.Claim(ctx, "sol-plaatje", "truck-1", "r2")
	assert.NoError(t, err)
}

func TestClaimRejectsUnavailable(t *testing.T) {
	d := waterDispatcher()

	_, err := d.Claim(context.Background(), "sol-plaatje", "tanker-2", "r1")
	assert.ErrorIs(t, err, ErrNoVehicleAvailable)
	_, err = d.Claim(context.Background(), "sol-plaatje", "missing", "r1")
	assert.ErrorIs(t, err, ErrNoVehicleAvailable)
}

func TestAvailabilityMarksReserved(t *testing.T) {
	d := waterDispatcher()
	ctx := context.Background()
	_, err := d.Claim(ctx, "sol-plaatje", "bakkie-1", "r1")
	require.NoError(t, err)

	all, err := d.Availability(ctx, "sol-plaatje")
	require.NoError(t, err)
	status := map[string]models.VehicleStatus{}
	for _, v := range all {
		status[v.ID] = v.Status
	}
	assert.Equal(t, models.VehicleDispatched, status["bakkie-1"])
	assert.Equal(t, models.VehicleAvailable, status["tanker-1"])
	assert.Equal(t, models.VehicleMaintenance, status["tanker-2"])
}

func TestMemoryReserverIsIdempotentForHolder(t *testing.T) {
	r := NewMemoryReserver()
	ctx := context.Background()

	ok, _ := r.Reserve(ctx, "v", "r1")
	assert.True(t, ok)
	ok, _ = r.Reserve(ctx, "v", "r1")
	assert.True(t, ok)
	ok, _ = r.Reserve(ctx, "v", "r2")
	assert.False(t, ok)
}
