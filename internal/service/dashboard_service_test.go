package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/hostel-api/internal/models"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

func TestDashboardStats(t *testing.T) {
	double := singleRoom("A-101", "A", 2, 1)
	double.Type = "Double"
	double.Rent = 8500
	double.Occupants = []models.Occupant{{Name: "One", ID: "s1", Gender: models.GenderFemale}}
	single := singleRoom("C-201", "C", 1, 1)
	single.Occupants = []models.Occupant{{Name: "Two", ID: "s2", Gender: models.GenderMale}}

	st := newMemStore(
		[]models.Room{double, single},
		[]models.Application{
			pendingApplication("1", "s3", models.GenderMale, "C", "single"),
			pendingApplication("2", "s4", models.GenderMale, "D", "single"),
		},
		nil,
	)
	docs := &memDocs{maintenance: []models.MaintenanceRequest{
		{ID: "REQ-1", Type: "Plumbing", Status: models.MaintenanceStatusPending},
		{ID: "REQ-2", Type: "Plumbing", Status: models.MaintenanceStatusResolved},
		{ID: "REQ-3", Type: "Electrical", Status: models.MaintenanceStatusPending},
	}}

	svc := NewDashboardService(st, docs, docs, nil, 0, nil, nil)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRooms)
	assert.Equal(t, 2, stats.OccupiedRooms)
	assert.Equal(t, 1, stats.AvailableRooms)
	assert.Equal(t, 2, stats.PendingApplications)
	assert.Equal(t, 2, stats.MaintenanceRequests)
	assert.Equal(t, 8500+6000, stats.Revenue)
	assert.Equal(t, map[string]int{"double": 1, "single": 1}, stats.OccupancyBreakdown)
	assert.Equal(t, map[string]int{"Plumbing": 2, "Electrical": 1}, stats.MaintenanceBreakdown)
}

func TestOccupancyTrendShape(t *testing.T) {
	st := newMemStore([]models.Room{singleRoom("C-201", "C", 4, 3)}, nil, nil)
	docs := &memDocs{}
	svc := NewDashboardService(st, docs, docs, nil, 0, nil, nil)

	points, err := svc.OccupancyTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 7)
	for _, p := range points {
		assert.Equal(t, 4, p.Total)
		assert.GreaterOrEqual(t, p.Occupied, 0)
	}
	assert.Equal(t, 3, points[6].Occupied, "newest point must reflect real occupancy")
}

func TestRecentActivityOrderAndCap(t *testing.T) {
	apps := make([]models.Application, 0, 8)
	for i := 0; i < 8; i++ {
		app := pendingApplication(string(rune('a'+i)), "s"+string(rune('a'+i)), models.GenderMale, "C", "single")
		app.Date = "01/08/2026"
		apps = append(apps, app)
	}
	st := newMemStore(nil, apps, nil)
	docs := &memDocs{
		maintenance: []models.MaintenanceRequest{
			{ID: "REQ-1", Type: "Plumbing", Location: "C-201", Date: "02/08/2026", Timestamp: 1_900_000_000_000, Status: models.MaintenanceStatusPending},
		},
		payments: []models.Payment{
			{ID: "TXN1", StudentID: "stud-12345", Amount: 6000, Date: "03/08/2026", Timestamp: 1_900_000_100_000},
		},
	}
	svc := NewDashboardService(st, docs, docs, nil, 0, nil, nil)

	activities, err := svc.RecentActivity(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(activities), 10)
	for i := 1; i < len(activities); i++ {
		assert.GreaterOrEqual(t, activities[i-1].Timestamp, activities[i].Timestamp)
	}
	assert.Equal(t, "pay-TXN1", activities[0].ID)
	assert.Equal(t, "Student 2345", activities[0].User)
}

type stubCache struct {
	entries map[string][]byte
}

func (c *stubCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *stubCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.entries == nil {
		c.entries = map[string][]byte{}
	}
	c.entries[key] = raw
	return nil
}

func (c *stubCache) DeleteByPattern(context.Context, string) error {
	c.entries = nil
	return nil
}

func TestDashboardStatsRecordsCacheHitAndMiss(t *testing.T) {
	room := singleRoom("C-201", "C", 2, 1)
	room.Occupants = []models.Occupant{{Name: "One", ID: "s1", Gender: models.GenderMale}}
	st := newMemStore([]models.Room{room}, nil, nil)
	docs := &memDocs{}
	metrics := NewMetricsService()

	svc := NewDashboardService(st, docs, docs, &stubCache{}, time.Minute, metrics, nil)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), atomic.LoadUint64(&metrics.cacheHitCount))
	assert.Equal(t, uint64(1), atomic.LoadUint64(&metrics.cacheMissCount))

	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), atomic.LoadUint64(&metrics.cacheHitCount))
	assert.Equal(t, uint64(1), atomic.LoadUint64(&metrics.cacheMissCount))
}
