package service

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const (
	statsCacheKey     = "dashboard:stats"
	occupancyCacheKey = "dashboard:occupancy"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DashboardService aggregates headline numbers, the occupancy trend and the
// recent-activity feed for the admin dashboard. Stats and the trend are
// cached when Redis is available.
type DashboardService struct {
	store       store.Store
	maintenance maintenanceStore
	payments    paymentStore
	cache       dashboardCache
	cacheTTL    time.Duration
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewDashboardService constructs the dashboard service. cache and metrics
// may be nil.
func NewDashboardService(st store.Store, maintenance maintenanceStore, payments paymentStore, cache dashboardCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		store:       st,
		maintenance: maintenance,
		payments:    payments,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     metrics,
		logger:      logger,
	}
}

// Stats computes the headline dashboard numbers. Room totals are counted in
// beds. Revenue assumes rent is charged per occupied bed.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache != nil {
		var cached models.DashboardStats
		if err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return &cached, nil
		}
		s.metrics.RecordCacheOperation(false)
	}

	stats := &models.DashboardStats{
		OccupancyBreakdown:   map[string]int{},
		MaintenanceBreakdown: map[string]int{},
	}
	err := s.store.View(ctx, func(state *store.State) error {
		for _, room := range state.Rooms {
			stats.TotalRooms += room.Capacity
			stats.OccupiedRooms += room.Occupied
			stats.Revenue += room.Occupied * room.Rent

			key := strings.ToLower(room.Type)
			if key == "" {
				key = "unknown"
			}
			stats.OccupancyBreakdown[key] += room.Occupied
		}
		stats.AvailableRooms = stats.TotalRooms - stats.OccupiedRooms
		for _, app := range state.Applications {
			if app.Status == models.ApplicationStatusPending {
				stats.PendingApplications++
			}
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute stats")
	}

	requests, err := s.maintenance.Maintenance(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load maintenance requests")
	}
	for _, req := range requests {
		if req.Status == models.MaintenanceStatusPending {
			stats.MaintenanceRequests++
		}
		kind := req.Type
		if kind == "" {
			kind = "Other"
		}
		stats.MaintenanceBreakdown[kind]++
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
		}
	}
	return stats, nil
}

// OccupancyTrend simulates seven months of occupancy history converging on
// the current state. Only the newest point reflects real data.
func (s *DashboardService) OccupancyTrend(ctx context.Context) ([]models.OccupancyPoint, error) {
	if s.cache != nil {
		var cached []models.OccupancyPoint
		if err := s.cache.Get(ctx, occupancyCacheKey, &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false)
	}

	var totalCapacity, currentOccupied int
	err := s.store.View(ctx, func(state *store.State) error {
		for _, room := range state.Rooms {
			totalCapacity += room.Capacity
			currentOccupied += room.Occupied
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute occupancy")
	}

	currentMonth := int(time.Now().Month()) - 1
	points := make([]models.OccupancyPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		idx := (currentMonth - i + 12) % 12
		occupied := currentOccupied
		if i > 0 {
			occupied -= rand.Intn(15) + i*2
			if occupied < 0 {
				occupied = 0
			}
		}
		points = append(points, models.OccupancyPoint{
			Month:    monthNames[idx],
			Occupied: occupied,
			Total:    totalCapacity,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, occupancyCacheKey, points, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache occupancy trend", zap.Error(err))
		}
	}
	return points, nil
}

// RecentActivity merges applications, maintenance tickets and payments into
// one feed, newest first, capped at ten entries.
func (s *DashboardService) RecentActivity(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity

	err := s.store.View(ctx, func(state *store.State) error {
		for _, app := range state.Applications {
			roomType := app.RoomType
			if roomType == "" {
				roomType = "room"
			}
			activities = append(activities, models.Activity{
				ID:        "app-" + app.ID,
				Type:      "application",
				User:      app.Student,
				Action:    "Applied for " + roomType,
				Time:      app.Date,
				Timestamp: parseDate(app.Date),
			})
			if app.Status == models.ApplicationStatusAllocated && app.AllocatedRoomID != "" {
				label := app.AllocatedRoomID
				if room := state.RoomByID(app.AllocatedRoomID); room != nil {
					label = room.Number
				}
				activities = append(activities, models.Activity{
					ID:        "alloc-" + app.ID,
					Type:      "application",
					User:      "System",
					Action:    "Allocated Room " + label + " to " + firstName(app.Student),
					Time:      app.Date,
					Timestamp: parseDate(app.Date) + 100,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity")
	}

	requests, err := s.maintenance.Maintenance(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load maintenance requests")
	}
	for _, req := range requests {
		location := req.Location
		if location == "" {
			location = "Unknown"
		}
		ts := req.Timestamp
		if ts == 0 {
			ts = parseDate(req.Date)
		}
		activities = append(activities, models.Activity{
			ID:        "maint-" + req.ID,
			Type:      "maintenance",
			User:      "Room " + location,
			Action:    "Reported " + req.Type,
			Time:      req.Date,
			Timestamp: ts,
		})
		if req.Status == models.MaintenanceStatusResolved && req.ResolvedAt > 0 {
			activities = append(activities, models.Activity{
				ID:        "maint-res-" + req.ID,
				Type:      "maintenance",
				User:      "Admin",
				Action:    "Resolved " + req.Type + " in Room " + req.Location,
				Time:      time.UnixMilli(req.ResolvedAt).Format("02/01/2006"),
				Timestamp: req.ResolvedAt,
			})
		}
	}

	payments, err := s.payments.Payments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payments")
	}
	for _, p := range payments {
		ts := p.Timestamp
		if ts == 0 {
			ts = parseDate(p.Date)
		}
		activities = append(activities, models.Activity{
			ID:        "pay-" + p.ID,
			Type:      "payment",
			User:      "Student " + maskID(p.StudentID),
			Action:    "Paid ₹" + strconv.Itoa(p.Amount) + " rent",
			Time:      p.Date,
			Timestamp: ts,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp > activities[j].Timestamp
	})
	if len(activities) > 10 {
		activities = activities[:10]
	}
	return activities, nil
}

// Invalidate drops cached dashboard payloads after a mutation.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "dashboard:*"); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

// parseDate accepts millisecond timestamps embedded as strings, RFC-style
// dates, or DD/MM/YYYY, returning milliseconds since epoch.
func parseDate(raw string) int64 {
	if raw == "" {
		return 0
	}
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		return ts.UnixMilli()
	}
	if ts, err := time.Parse("02/01/2006", raw); err == nil {
		return ts.UnixMilli()
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UnixMilli()
	}
	return 0
}

func firstName(full string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(full), " ")
	if name == "" {
		return "Student"
	}
	return name
}

func maskID(id string) string {
	if len(id) <= 4 {
		if id == "" {
			return "Unknown"
		}
		return id
	}
	return id[len(id)-4:]
}
