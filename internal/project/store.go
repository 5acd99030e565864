package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"cable-router/internal/catalog"
	"cable-router/internal/route"
)

// Store keeps route layouts in a SQLite database, one row per route,
// point and segment. Fittings are derived data and are not stored;
// they are recomputed after load.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS routes (
	id           TEXT PRIMARY KEY,
	ord          INTEGER NOT NULL,
	name         TEXT NOT NULL,
	route_type   TEXT NOT NULL,
	voltage      TEXT NOT NULL,
	color        TEXT NOT NULL,
	visible      INTEGER NOT NULL,
	total_length REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS points (
	id           TEXT PRIMARY KEY,
	route_id     TEXT NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
	ord          INTEGER NOT NULL,
	x            REAL NOT NULL,
	y            REAL NOT NULL,
	z            REAL NOT NULL,
	role         TEXT NOT NULL,
	equipment_id TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS segments (
	id             TEXT PRIMARY KEY,
	route_id       TEXT NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
	ord            INTEGER NOT NULL,
	start_point_id TEXT NOT NULL,
	end_point_id   TEXT NOT NULL,
	style          TEXT NOT NULL,
	width          REAL NOT NULL,
	height         REAL NOT NULL,
	cable_types    TEXT NOT NULL DEFAULT '[]',
	color          TEXT NOT NULL,
	locked         INTEGER NOT NULL,
	visible        INTEGER NOT NULL
);
`

// OpenStore opens (creating if needed) a store at the given path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRoutes replaces the stored layout with the given routes.
func (s *Store) SaveRoutes(ctx context.Context, rts []*route.CableRoute) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"segments", "points", "routes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for i, r := range rts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO routes (id, ord, name, route_type, voltage, color, visible, total_length)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, i, r.Name, string(r.RouteType), string(r.Voltage),
			r.Color, boolInt(r.Visible), r.TotalLength)
		if err != nil {
			return fmt.Errorf("save route %q: %w", r.Name, err)
		}
		for j, p := range r.Points {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO points (id, route_id, ord, x, y, z, role, equipment_id)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, r.ID, j, p.Position.X, p.Position.Y, p.Position.Z,
				string(p.Role), p.EquipmentID)
			if err != nil {
				return fmt.Errorf("save route %q: %w", r.Name, err)
			}
		}
		for j, seg := range r.Segments {
			types, err := json.Marshal(seg.CableTypes)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO segments (id, route_id, ord, start_point_id, end_point_id,
				                       style, width, height, cable_types, color, locked, visible)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				seg.ID, r.ID, j, seg.StartPointID, seg.EndPointID,
				string(seg.Style), seg.Width, seg.Height, string(types),
				seg.Color, boolInt(seg.Locked), boolInt(seg.Visible))
			if err != nil {
				return fmt.Errorf("save route %q: %w", r.Name, err)
			}
		}
	}
	return tx.Commit()
}

// LoadRoutes reads the stored layout back in saved order. Fittings are
// recomputed, not read.
func (s *Store) LoadRoutes(ctx context.Context) ([]*route.CableRoute, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, route_type, voltage, color, visible, total_length
		 FROM routes ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rts []*route.CableRoute
	for rows.Next() {
		r := &route.CableRoute{
			Points:   make([]*route.CablePoint, 0),
			Segments: make([]*route.CableSegment, 0),
		}
		var routeType, voltage string
		var visible int
		if err := rows.Scan(&r.ID, &r.Name, &routeType, &voltage,
			&r.Color, &visible, &r.TotalLength); err != nil {
			return nil, err
		}
		r.RouteType = catalog.RouteType(routeType)
		r.Voltage = catalog.VoltageClass(voltage)
		r.Visible = visible != 0
		rts = append(rts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range rts {
		if err := s.loadPoints(ctx, r); err != nil {
			return nil, fmt.Errorf("load route %q: %w", r.Name, err)
		}
		if err := s.loadSegments(ctx, r); err != nil {
			return nil, fmt.Errorf("load route %q: %w", r.Name, err)
		}
		r.RecomputeFittings()
	}
	return rts, nil
}

func (s *Store) loadPoints(ctx context.Context, r *route.CableRoute) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, x, y, z, role, equipment_id
		 FROM points WHERE route_id = ? ORDER BY ord`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		p := &route.CablePoint{}
		var role string
		if err := rows.Scan(&p.ID, &p.Position.X, &p.Position.Y, &p.Position.Z,
			&role, &p.EquipmentID); err != nil {
			return err
		}
		p.Role = route.PointRole(role)
		r.Points = append(r.Points, p)
	}
	return rows.Err()
}

func (s *Store) loadSegments(ctx context.Context, r *route.CableRoute) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, start_point_id, end_point_id, style, width, height,
		        cable_types, color, locked, visible
		 FROM segments WHERE route_id = ? ORDER BY ord`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		seg := &route.CableSegment{}
		var style, types string
		var locked, visible int
		if err := rows.Scan(&seg.ID, &seg.StartPointID, &seg.EndPointID,
			&style, &seg.Width, &seg.Height, &types,
			&seg.Color, &locked, &visible); err != nil {
			return err
		}
		seg.Style = catalog.TrayStyle(style)
		seg.Locked = locked != 0
		seg.Visible = visible != 0
		if err := json.Unmarshal([]byte(types), &seg.CableTypes); err != nil {
			return err
		}
		r.Segments = append(r.Segments, seg)
	}
	return rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
