package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"wasselni/internal/wizard"
)

func TestBuildLineStringSkipsWhenTooFewPoints(t *testing.T) {
	out, err := buildLineString(wizard.Payload{})
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = buildLineString(wizard.Payload{
		DepartureCoords: &wizard.GeoPoint{Lat: 36.8, Lng: 10.18},
	})
	require.NoError(t, err)
	assert.Nil(t, out, "a linestring needs at least two points")
}

func TestBuildLineStringOrdersDepartureStopsArrival(t *testing.T) {
	p := wizard.Payload{
		DepartureCoords: &wizard.GeoPoint{Lat: 36.8, Lng: 10.18},
		ArrivalCoords:   &wizard.GeoPoint{Lat: 35.83, Lng: 10.64},
		Stops: []wizard.StopPayload{
			{Seq: 1, Location: "Hammamet", Coords: &wizard.GeoPoint{Lat: 36.4, Lng: 10.62}},
			{Seq: 2, Location: "Enfidha"}, // no coords, skipped in geometry
		},
	}

	raw, err := buildLineString(p)
	require.NoError(t, err)
	require.NotNil(t, raw)

	g, err := wkb.Unmarshal(raw)
	require.NoError(t, err)
	ls, ok := g.(*geom.LineString)
	require.True(t, ok)
	require.Equal(t, 3, ls.NumCoords())
	assert.Equal(t, 10.18, ls.Coord(0).X())
	assert.Equal(t, 36.8, ls.Coord(0).Y())
	assert.Equal(t, 10.62, ls.Coord(1).X())
	assert.Equal(t, 10.64, ls.Coord(2).X())
}
