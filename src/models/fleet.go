package models

import (
	"time"
)

type Factory struct {
	ID        uint      `db:"id"`
	Name      string    `db:"name"`
	Location  string    `db:"location"`
	CreatedAt time.Time `db:"created_at"`
}

func (Factory) TableName() string {
	return "factories"
}

type Line struct {
	ID        uint      `db:"id"`
	FactoryID uint      `db:"factory_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (Line) TableName() string {
	return "lines"
}

type Cell struct {
	ID        uint      `db:"id"`
	LineID    uint      `db:"line_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (Cell) TableName() string {
	return "cells"
}

type ControllerStatus string

const (
	ControllerOnline  ControllerStatus = "online"
	ControllerOffline ControllerStatus = "offline"
	ControllerFault   ControllerStatus = "fault"
)

type RobotController struct {
	ID           uint             `db:"id"`
	CellID       uint             `db:"cell_id"`
	Name         string           `db:"name"`
	Model        string           `db:"model"`
	SerialNumber string           `db:"serial_number"`
	IPAddress    string           `db:"ip_address"`
	Status       ControllerStatus `db:"status"`
	CreatedAt    time.Time        `db:"created_at"`
}

func (RobotController) TableName() string {
	return "robot_controllers"
}
