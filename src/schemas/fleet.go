package schemas

import (
	"time"

	"fleetwatch/src/models"
)

type CreateFactoryRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}

type UpdateFactoryRequest struct {
	ID       uint    `json:"id"`
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

type FactoryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateLineRequest struct {
	FactoryID uint   `json:"factory_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

type UpdateLineRequest struct {
	ID        uint    `json:"id"`
	FactoryID *uint   `json:"factory_id"`
	Name      *string `json:"name"`
}

type LineResponse struct {
	ID        uint      `json:"id"`
	FactoryID uint      `json:"factory_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCellRequest struct {
	LineID uint   `json:"line_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

type UpdateCellRequest struct {
	ID     uint    `json:"id"`
	LineID *uint   `json:"line_id"`
	Name   *string `json:"name"`
}

type CellResponse struct {
	ID        uint      `json:"id"`
	LineID    uint      `json:"line_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateControllerRequest struct {
	CellID       uint   `json:"cell_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	IPAddress    string `json:"ip_address"`
}

type UpdateControllerRequest struct {
	ID           uint    `json:"id"`
	CellID       *uint   `json:"cell_id"`
	Name         *string `json:"name"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
	IPAddress    *string `json:"ip_address"`
	Status       *string `json:"status"`
}

type ControllerResponse struct {
	ID           uint                    `json:"id"`
	CellID       uint                    `json:"cell_id"`
	Name         string                  `json:"name"`
	Model        string                  `json:"model"`
	SerialNumber string                  `json:"serial_number"`
	IPAddress    string                  `json:"ip_address"`
	Status       models.ControllerStatus `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
}

type AlarmResponse struct {
	ID           uint                 `json:"id"`
	ControllerID uint                 `json:"controller_id"`
	Code         string               `json:"code"`
	Severity     models.AlarmSeverity `json:"severity"`
	Message      string               `json:"message"`
	RaisedAt     time.Time            `json:"raised_at"`
	ClearedAt    *time.Time           `json:"cleared_at,omitempty"`
}

type VariableResponse struct {
	ID           uint      `json:"id"`
	ControllerID uint      `json:"controller_id"`
	Name         string    `json:"name"`
	Value        string    `json:"value"`
	RecordedAt   time.Time `json:"recorded_at"`
}

type IOSignalResponse struct {
	ID           uint          `json:"id"`
	ControllerID uint          `json:"controller_id"`
	Name         string        `json:"name"`
	Kind         models.IOKind `json:"kind"`
	Value        bool          `json:"value"`
	RecordedAt   time.Time     `json:"recorded_at"`
}

type UtilizationResponse struct {
	ControllerID   uint      `json:"controller_id"`
	SampleDate     time.Time `json:"sample_date"`
	RunningSeconds int64     `json:"running_seconds"`
	IdleSeconds    int64     `json:"idle_seconds"`
	FaultSeconds   int64     `json:"fault_seconds"`
	Percent        float64   `json:"percent"`
}
