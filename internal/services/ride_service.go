package services

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"wasselni/internal/models"
	"wasselni/internal/wizard"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// RideService persists published rides. It implements both ends of the
// wizard's contract: wizard.RideCreator for submission and
// wizard.VehicleSource for seeding a session's registry.
type RideService struct {
	DB *gorm.DB
}

func NewRideService(db *gorm.DB) *RideService {
	return &RideService{DB: db}
}

// buildLineString assembles the route geometry from whatever coordinates
// the wizard collected: departure, stops in order, arrival. Returns nil
// WKB when fewer than two points are known; a LINESTRING needs at least
// two.
func buildLineString(p wizard.Payload) ([]byte, error) {
	var coords []geom.Coord
	if p.DepartureCoords != nil {
		coords = append(coords, geom.Coord{p.DepartureCoords.Lng, p.DepartureCoords.Lat})
	}
	for _, stop := range p.Stops {
		if stop.Coords != nil {
			coords = append(coords, geom.Coord{stop.Coords.Lng, stop.Coords.Lat})
		}
	}
	if p.ArrivalCoords != nil {
		coords = append(coords, geom.Coord{p.ArrivalCoords.Lng, p.ArrivalCoords.Lat})
	}
	if len(coords) < 2 {
		return nil, nil
	}
	ls := geom.NewLineString(geom.XY)
	if _, err := ls.SetCoords(coords); err != nil {
		return nil, err
	}
	return wkb.Marshal(ls, binary.LittleEndian)
}

// CreateRide creates the route resource and the ride in one transaction.
// The route is created first and blocks the ride on failure; a ride must
// never reference a route that was not actually written.
func (s *RideService) CreateRide(p wizard.Payload) (uint, error) {
	geometry, err := buildLineString(p)
	if err != nil {
		return 0, fmt.Errorf("could not build route geometry: %w", err)
	}

	stops := make([]models.RideStop, 0, len(p.Stops))
	for _, stop := range p.Stops {
		rs := models.RideStop{Location: stop.Location, Seq: stop.Seq}
		if stop.Coords != nil {
			rs.Lat = stop.Coords.Lat
			rs.Lng = stop.Coords.Lng
		}
		stops = append(stops, rs)
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	route := models.Route{
		Name:     p.DepartureCity + " - " + p.ArrivalCity,
		DriverID: p.DriverID,
		Geometry: geometry,
		Stops:    stops,
	}
	if err := tx.Create(&route).Error; err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("could not create route: %w", err)
	}

	ride := models.Ride{
		DriverID:           p.DriverID,
		VehicleID:          uint(p.VehicleID),
		RouteID:            route.ID,
		DepartureCity:      p.DepartureCity,
		DepartureAddress:   p.DepartureAddress,
		ArrivalCity:        p.ArrivalCity,
		ArrivalAddress:     p.ArrivalAddress,
		DepartureTime:      p.DepartureTime,
		ArrivalTime:        p.ArrivalTime,
		ReturnTime:         p.ReturnTime,
		PriceType:          p.PriceType,
		PricePerSeat:       p.PricePerSeat,
		AvailableSeats:     p.AvailableSeats,
		TotalSeats:         p.TotalSeats,
		Amenities:          p.Amenities,
		InstantBooking:     p.InstantBooking,
		WomenOnly:          p.WomenOnly,
		VerifiedOnly:       p.VerifiedOnly,
		MinRating:          p.MinRating,
		Notes:              p.Notes,
		Featured:           p.Featured,
		IsRecurring:        p.IsRecurring,
		RecurringFrequency: p.RecurringFreq,
		RecurringDays:      p.RecurringDays,
		RecurringEndDate:   p.RecurringEndDate,
		Status:             models.RideStatusPublished,
	}
	if err := tx.Create(&ride).Error; err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("could not create ride: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("could not commit ride: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"ride_id":   ride.ID,
		"driver_id": p.DriverID,
		"from":      p.DepartureCity,
		"to":        p.ArrivalCity,
	}).Info("Ride published")
	return ride.ID, nil
}

// DriverVehicles loads the driver's garage and maps it into the wizard's
// session shape.
func (s *RideService) DriverVehicles(driverID uint) ([]wizard.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.DB.Where("driver_id = ?", driverID).Order("id").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	out := make([]wizard.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, wizard.Vehicle{
			ID:       int(v.ID),
			Make:     v.Make,
			Model:    v.ModelName,
			Year:     v.Year,
			Plate:    v.LicensePlate,
			Color:    v.Color,
			Capacity: v.Capacity,
			Type:     v.VehicleType,
			PhotoURL: v.PhotoURL,
			Verified: v.Verified,
		})
	}
	return out, nil
}
