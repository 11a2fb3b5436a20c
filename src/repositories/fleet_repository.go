package repositories

import (
	"context"
	"errors"

	"fleetwatch/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

type FleetRepository interface {
	ListFactories(ctx context.Context) ([]*models.Factory, error)
	GetFactory(ctx context.Context, id uint) (*models.Factory, error)
	CreateFactory(ctx context.Context, factory *models.Factory) error
	UpdateFactory(ctx context.Context, factory *models.Factory) error
	DeleteFactory(ctx context.Context, id uint) error

	ListLines(ctx context.Context, factoryID uint) ([]*models.Line, error)
	GetLine(ctx context.Context, id uint) (*models.Line, error)
	CreateLine(ctx context.Context, line *models.Line) error
	UpdateLine(ctx context.Context, line *models.Line) error
	DeleteLine(ctx context.Context, id uint) error

	ListCells(ctx context.Context, lineID uint) ([]*models.Cell, error)
	GetCell(ctx context.Context, id uint) (*models.Cell, error)
	CreateCell(ctx context.Context, cell *models.Cell) error
	UpdateCell(ctx context.Context, cell *models.Cell) error
	DeleteCell(ctx context.Context, id uint) error

	ListControllers(ctx context.Context, cellID uint) ([]*models.RobotController, error)
	GetController(ctx context.Context, id uint) (*models.RobotController, error)
	CreateController(ctx context.Context, controller *models.RobotController) error
	UpdateController(ctx context.Context, controller *models.RobotController) error
	DeleteController(ctx context.Context, id uint) error
}

type fleetRepo struct {
	DB *pgxpool.Pool
}

func NewFleetRepository(db *pgxpool.Pool) FleetRepository {
	return &fleetRepo{DB: db}
}

func (r *fleetRepo) ListFactories(ctx context.Context) ([]*models.Factory, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, location, COALESCE(created_at, NOW())
		FROM factories
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var factories []*models.Factory
	for rows.Next() {
		var f models.Factory
		if err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.CreatedAt); err != nil {
			return nil, err
		}
		factories = append(factories, &f)
	}
	return factories, rows.Err()
}

func (r *fleetRepo) GetFactory(ctx context.Context, id uint) (*models.Factory, error) {
	var f models.Factory
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, location, COALESCE(created_at, NOW())
		FROM factories
		WHERE id = $1`, id).Scan(&f.ID, &f.Name, &f.Location, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fleetRepo) CreateFactory(ctx context.Context, factory *models.Factory) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO factories (name, location)
		VALUES ($1, $2)
		RETURNING id, COALESCE(created_at, NOW())`,
		factory.Name, factory.Location).Scan(&factory.ID, &factory.CreatedAt)
}

func (r *fleetRepo) UpdateFactory(ctx context.Context, factory *models.Factory) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE factories
		SET name = $1, location = $2
		WHERE id = $3`, factory.Name, factory.Location, factory.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *fleetRepo) DeleteFactory(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, "factories", id)
}

func (r *fleetRepo) ListLines(ctx context.Context, factoryID uint) ([]*models.Line, error) {
	query := `
		SELECT id, factory_id, name, COALESCE(created_at, NOW())
		FROM lines`
	args := []interface{}{}
	if factoryID != 0 {
		query += " WHERE factory_id = $1"
		args = append(args, factoryID)
	}
	query += " ORDER BY id"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.Line
	for rows.Next() {
		var l models.Line
		if err := rows.Scan(&l.ID, &l.FactoryID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func (r *fleetRepo) GetLine(ctx context.Context, id uint) (*models.Line, error) {
	var l models.Line
	err := r.DB.QueryRow(ctx, `
		SELECT id, factory_id, name, COALESCE(created_at, NOW())
		FROM lines
		WHERE id = $1`, id).Scan(&l.ID, &l.FactoryID, &l.Name, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *fleetRepo) CreateLine(ctx context.Context, line *models.Line) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO lines (factory_id, name)
		VALUES ($1, $2)
		RETURNING id, COALESCE(created_at, NOW())`,
		line.FactoryID, line.Name).Scan(&line.ID, &line.CreatedAt)
}

func (r *fleetRepo) UpdateLine(ctx context.Context, line *models.Line) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE lines
		SET factory_id = $1, name = $2
		WHERE id = $3`, line.FactoryID, line.Name, line.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *fleetRepo) DeleteLine(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, "lines", id)
}

func (r *fleetRepo) ListCells(ctx context.Context, lineID uint) ([]*models.Cell, error) {
	query := `
		SELECT id, line_id, name, COALESCE(created_at, NOW())
		FROM cells`
	args := []interface{}{}
	if lineID != 0 {
		query += " WHERE line_id = $1"
		args = append(args, lineID)
	}
	query += " ORDER BY id"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []*models.Cell
	for rows.Next() {
		var c models.Cell
		if err := rows.Scan(&c.ID, &c.LineID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cells = append(cells, &c)
	}
	return cells, rows.Err()
}

func (r *fleetRepo) GetCell(ctx context.Context, id uint) (*models.Cell, error) {
	var c models.Cell
	err := r.DB.QueryRow(ctx, `
		SELECT id, line_id, name, COALESCE(created_at, NOW())
		FROM cells
		WHERE id = $1`, id).Scan(&c.ID, &c.LineID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *fleetRepo) CreateCell(ctx context.Context, cell *models.Cell) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO cells (line_id, name)
		VALUES ($1, $2)
		RETURNING id, COALESCE(created_at, NOW())`,
		cell.LineID, cell.Name).Scan(&cell.ID, &cell.CreatedAt)
}

func (r *fleetRepo) UpdateCell(ctx context.Context, cell *models.Cell) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE cells
		SET line_id = $1, name = $2
		WHERE id = $3`, cell.LineID, cell.Name, cell.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *fleetRepo) DeleteCell(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, "cells", id)
}

func (r *fleetRepo) ListControllers(ctx context.Context, cellID uint) ([]*models.RobotController, error) {
	query := `
		SELECT id, cell_id, name, model, serial_number, ip_address, status, COALESCE(created_at, NOW())
		FROM robot_controllers`
	args := []interface{}{}
	if cellID != 0 {
		query += " WHERE cell_id = $1"
		args = append(args, cellID)
	}
	query += " ORDER BY id"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var controllers []*models.RobotController
	for rows.Next() {
		var c models.RobotController
		if err := rows.Scan(&c.ID, &c.CellID, &c.Name, &c.Model, &c.SerialNumber, &c.IPAddress, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		controllers = append(controllers, &c)
	}
	return controllers, rows.Err()
}

func (r *fleetRepo) GetController(ctx context.Context, id uint) (*models.RobotController, error) {
	var c models.RobotController
	err := r.DB.QueryRow(ctx, `
		SELECT id, cell_id, name, model, serial_number, ip_address, status, COALESCE(created_at, NOW())
		FROM robot_controllers
		WHERE id = $1`, id).Scan(&c.ID, &c.CellID, &c.Name, &c.Model, &c.SerialNumber, &c.IPAddress, &c.Status, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *fleetRepo) CreateController(ctx context.Context, controller *models.RobotController) error {
	if controller.Status == "" {
		controller.Status = models.ControllerOffline
	}
	return r.DB.QueryRow(ctx, `
		INSERT INTO robot_controllers (cell_id, name, model, serial_number, ip_address, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, COALESCE(created_at, NOW())`,
		controller.CellID, controller.Name, controller.Model, controller.SerialNumber,
		controller.IPAddress, controller.Status).Scan(&controller.ID, &controller.CreatedAt)
}

func (r *fleetRepo) UpdateController(ctx context.Context, controller *models.RobotController) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE robot_controllers
		SET cell_id = $1, name = $2, model = $3, serial_number = $4, ip_address = $5, status = $6
		WHERE id = $7`,
		controller.CellID, controller.Name, controller.Model, controller.SerialNumber,
		controller.IPAddress, controller.Status, controller.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *fleetRepo) DeleteController(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, "robot_controllers", id)
}

func (r *fleetRepo) deleteByID(ctx context.Context, table string, id uint) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
