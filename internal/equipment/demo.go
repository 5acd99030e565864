package equipment

import (
	"cable-router/internal/snap"
	"cable-router/pkg/geometry"
)

// DemoFarm returns a small starter layout so the editor is usable
// before any project is loaded: one transformer feeding a switchboard,
// two PDUs, a mining container and a network rack.
func DemoFarm() *Set {
	s := NewSet()

	s.Add(&Equipment{
		ID:       "tx-1",
		Name:     "Transformer 1",
		Kind:     KindTransformer,
		Position: geometry.NewPoint3D(2, 0, 2),
		Size:     geometry.NewPoint3D(2.5, 2.2, 1.8),
		Connections: []ConnectionPoint{
			{Offset: geometry.NewPoint3D(1.25, 1.0, 0), Type: snap.TypeConnection, Capacity: 6},
			{Offset: geometry.NewPoint3D(-1.25, 1.0, 0), Type: snap.TypeConnection, Capacity: 6},
		},
	})
	s.Add(&Equipment{
		ID:       "swb-1",
		Name:     "Switchboard 1",
		Kind:     KindSwitchboard,
		Position: geometry.NewPoint3D(10, 0, 2),
		Size:     geometry.NewPoint3D(1.2, 2.0, 0.6),
		Connections: []ConnectionPoint{
			{Offset: geometry.NewPoint3D(0, 1.8, 0), Type: snap.TypeConnection, Capacity: 12},
			{Offset: geometry.NewPoint3D(0.6, 1.0, 0), Type: snap.TypeEdge, Capacity: 4},
		},
	})
	s.Add(&Equipment{
		ID:       "pdu-1",
		Name:     "PDU 1",
		Kind:     KindPDU,
		Position: geometry.NewPoint3D(16, 0, 6),
		Size:     geometry.NewPoint3D(0.8, 1.8, 0.6),
		Connections: []ConnectionPoint{
			{Offset: geometry.NewPoint3D(0, 1.6, 0), Type: snap.TypeConnection, Capacity: 8},
		},
	})
	s.Add(&Equipment{
		ID:       "pdu-2",
		Name:     "PDU 2",
		Kind:     KindPDU,
		Position: geometry.NewPoint3D(16, 0, 12),
		Size:     geometry.NewPoint3D(0.8, 1.8, 0.6),
		Connections: []ConnectionPoint{
			{Offset: geometry.NewPoint3D(0, 1.6, 0), Type: snap.TypeConnection, Capacity: 8},
		},
	})
	s.Add(&Equipment{
		ID:       "cont-1",
		Name:     "Container A",
		Kind:     KindContainer,
		Position: geometry.NewPoint3D(24, 0, 9),
		Size:     geometry.NewPoint3D(12.0, 2.9, 2.4),
		Connections: []ConnectionPoint{
			{Offset: geometry.NewPoint3D(-6.0, 2.4, 0), Type: snap.TypeConnection, Capacity: 16},
			{Offset: geometry.NewPoint3D(-6.0, 2.4, 1.2), Type: snap.TypeCorner, Capacity: 4},
		},
	})
	s.Add(&Equipment{
		ID:       "rack-1",
		Name:     "Network Rack 1",
		Kind:     KindNetworkRack,
		Position: geometry.NewPoint3D(10, 0, 14),
		Size:     geometry.NewPoint3D(0.6, 2.0, 0.8),
		Connections: []ConnectionPoint{
			{Offset: geometry.NewPoint3D(0, 2.0, 0), Type: snap.TypeConnection, Capacity: 48},
		},
	})

	return s
}
