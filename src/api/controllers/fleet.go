package controllers

import (
	"context"

	"fleetwatch/src/models"
	"fleetwatch/src/repositories"
	"fleetwatch/src/schemas"
)

type FleetControllerI interface {
	GetAllFactories(ctx context.Context) ([]*schemas.FactoryResponse, error)
	GetFactoryByID(ctx context.Context, id uint) (*schemas.FactoryResponse, error)
	CreateFactory(ctx context.Context, req *schemas.CreateFactoryRequest) (*schemas.FactoryResponse, error)
	UpdateFactory(ctx context.Context, req *schemas.UpdateFactoryRequest) (*schemas.FactoryResponse, error)
	DeleteFactory(ctx context.Context, id uint) error

	GetAllLines(ctx context.Context, factoryID uint) ([]*schemas.LineResponse, error)
	GetLineByID(ctx context.Context, id uint) (*schemas.LineResponse, error)
	CreateLine(ctx context.Context, req *schemas.CreateLineRequest) (*schemas.LineResponse, error)
	UpdateLine(ctx context.Context, req *schemas.UpdateLineRequest) (*schemas.LineResponse, error)
	DeleteLine(ctx context.Context, id uint) error

	GetAllCells(ctx context.Context, lineID uint) ([]*schemas.CellResponse, error)
	GetCellByID(ctx context.Context, id uint) (*schemas.CellResponse, error)
	CreateCell(ctx context.Context, req *schemas.CreateCellRequest) (*schemas.CellResponse, error)
	UpdateCell(ctx context.Context, req *schemas.UpdateCellRequest) (*schemas.CellResponse, error)
	DeleteCell(ctx context.Context, id uint) error

	GetAllControllers(ctx context.Context, cellID uint) ([]*schemas.ControllerResponse, error)
	GetControllerByID(ctx context.Context, id uint) (*schemas.ControllerResponse, error)
	CreateController(ctx context.Context, req *schemas.CreateControllerRequest) (*schemas.ControllerResponse, error)
	UpdateController(ctx context.Context, req *schemas.UpdateControllerRequest) (*schemas.ControllerResponse, error)
	DeleteController(ctx context.Context, id uint) error
}

type FleetController struct {
	Fleet repositories.FleetRepository
}

func NewFleetController(fleet repositories.FleetRepository) *FleetController {
	return &FleetController{Fleet: fleet}
}

func (fc *FleetController) GetAllFactories(ctx context.Context) ([]*schemas.FactoryResponse, error) {
	factories, err := fc.Fleet.ListFactories(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.FactoryResponse, 0, len(factories))
	for _, f := range factories {
		responses = append(responses, factoryResponse(f))
	}
	return responses, nil
}

func (fc *FleetController) GetFactoryByID(ctx context.Context, id uint) (*schemas.FactoryResponse, error) {
	factory, err := fc.Fleet.GetFactory(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return factoryResponse(factory), nil
}

func (fc *FleetController) CreateFactory(ctx context.Context, req *schemas.CreateFactoryRequest) (*schemas.FactoryResponse, error) {
	factory := &models.Factory{
		Name:     req.Name,
		Location: req.Location,
	}
	if err := fc.Fleet.CreateFactory(ctx, factory); err != nil {
		return nil, err
	}
	return factoryResponse(factory), nil
}

func (fc *FleetController) UpdateFactory(ctx context.Context, req *schemas.UpdateFactoryRequest) (*schemas.FactoryResponse, error) {
	factory, err := fc.Fleet.GetFactory(ctx, req.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	if req.Name != nil {
		factory.Name = *req.Name
	}
	if req.Location != nil {
		factory.Location = *req.Location
	}

	if err := fc.Fleet.UpdateFactory(ctx, factory); err != nil {
		return nil, translateRepoError(err)
	}
	return factoryResponse(factory), nil
}

func (fc *FleetController) DeleteFactory(ctx context.Context, id uint) error {
	return translateRepoError(fc.Fleet.DeleteFactory(ctx, id))
}

func (fc *FleetController) GetAllLines(ctx context.Context, factoryID uint) ([]*schemas.LineResponse, error) {
	lines, err := fc.Fleet.ListLines(ctx, factoryID)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.LineResponse, 0, len(lines))
	for _, l := range lines {
		responses = append(responses, lineResponse(l))
	}
	return responses, nil
}

func (fc *FleetController) GetLineByID(ctx context.Context, id uint) (*schemas.LineResponse, error) {
	line, err := fc.Fleet.GetLine(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return lineResponse(line), nil
}

func (fc *FleetController) CreateLine(ctx context.Context, req *schemas.CreateLineRequest) (*schemas.LineResponse, error) {
	line := &models.Line{
		FactoryID: req.FactoryID,
		Name:      req.Name,
	}
	if err := fc.Fleet.CreateLine(ctx, line); err != nil {
		return nil, err
	}
	return lineResponse(line), nil
}

func (fc *FleetController) UpdateLine(ctx context.Context, req *schemas.UpdateLineRequest) (*schemas.LineResponse, error) {
	line, err := fc.Fleet.GetLine(ctx, req.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	if req.FactoryID != nil {
		line.FactoryID = *req.FactoryID
	}
	if req.Name != nil {
		line.Name = *req.Name
	}

	if err := fc.Fleet.UpdateLine(ctx, line); err != nil {
		return nil, translateRepoError(err)
	}
	return lineResponse(line), nil
}

func (fc *FleetController) DeleteLine(ctx context.Context, id uint) error {
	return translateRepoError(fc.Fleet.DeleteLine(ctx, id))
}

func (fc *FleetController) GetAllCells(ctx context.Context, lineID uint) ([]*schemas.CellResponse, error) {
	cells, err := fc.Fleet.ListCells(ctx, lineID)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.CellResponse, 0, len(cells))
	for _, c := range cells {
		responses = append(responses, cellResponse(c))
	}
	return responses, nil
}

func (fc *FleetController) GetCellByID(ctx context.Context, id uint) (*schemas.CellResponse, error) {
	cell, err := fc.Fleet.GetCell(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return cellResponse(cell), nil
}

func (fc *FleetController) CreateCell(ctx context.Context, req *schemas.CreateCellRequest) (*schemas.CellResponse, error) {
	cell := &models.Cell{
		LineID: req.LineID,
		Name:   req.Name,
	}
	if err := fc.Fleet.CreateCell(ctx, cell); err != nil {
		return nil, err
	}
	return cellResponse(cell), nil
}

func (fc *FleetController) UpdateCell(ctx context.Context, req *schemas.UpdateCellRequest) (*schemas.CellResponse, error) {
	cell, err := fc.Fleet.GetCell(ctx, req.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	if req.LineID != nil {
		cell.LineID = *req.LineID
	}
	if req.Name != nil {
		cell.Name = *req.Name
	}

	if err := fc.Fleet.UpdateCell(ctx, cell); err != nil {
		return nil, translateRepoError(err)
	}
	return cellResponse(cell), nil
}

func (fc *FleetController) DeleteCell(ctx context.Context, id uint) error {
	return translateRepoError(fc.Fleet.DeleteCell(ctx, id))
}

func (fc *FleetController) GetAllControllers(ctx context.Context, cellID uint) ([]*schemas.ControllerResponse, error) {
	controllers, err := fc.Fleet.ListControllers(ctx, cellID)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.ControllerResponse, 0, len(controllers))
	for _, c := range controllers {
		responses = append(responses, controllerResponse(c))
	}
	return responses, nil
}

func (fc *FleetController) GetControllerByID(ctx context.Context, id uint) (*schemas.ControllerResponse, error) {
	controller, err := fc.Fleet.GetController(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return controllerResponse(controller), nil
}

func (fc *FleetController) CreateController(ctx context.Context, req *schemas.CreateControllerRequest) (*schemas.ControllerResponse, error) {
	controller := &models.RobotController{
		CellID:       req.CellID,
		Name:         req.Name,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		IPAddress:    req.IPAddress,
	}
	if err := fc.Fleet.CreateController(ctx, controller); err != nil {
		return nil, err
	}
	return controllerResponse(controller), nil
}

func (fc *FleetController) UpdateController(ctx context.Context, req *schemas.UpdateControllerRequest) (*schemas.ControllerResponse, error) {
	controller, err := fc.Fleet.GetController(ctx, req.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	if req.CellID != nil {
		controller.CellID = *req.CellID
	}
	if req.Name != nil {
		controller.Name = *req.Name
	}
	if req.Model != nil {
		controller.Model = *req.Model
	}
	if req.SerialNumber != nil {
		controller.SerialNumber = *req.SerialNumber
	}
	if req.IPAddress != nil {
		controller.IPAddress = *req.IPAddress
	}
	if req.Status != nil {
		controller.Status = models.ControllerStatus(*req.Status)
	}

	if err := fc.Fleet.UpdateController(ctx, controller); err != nil {
		return nil, translateRepoError(err)
	}
	return controllerResponse(controller), nil
}

func (fc *FleetController) DeleteController(ctx context.Context, id uint) error {
	return translateRepoError(fc.Fleet.DeleteController(ctx, id))
}

func factoryResponse(f *models.Factory) *schemas.FactoryResponse {
	return &schemas.FactoryResponse{
		ID:        f.ID,
		Name:      f.Name,
		Location:  f.Location,
		CreatedAt: f.CreatedAt,
	}
}

func lineResponse(l *models.Line) *schemas.LineResponse {
	return &schemas.LineResponse{
		ID:        l.ID,
		FactoryID: l.FactoryID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
	}
}

func cellResponse(c *models.Cell) *schemas.CellResponse {
	return &schemas.CellResponse{
		ID:        c.ID,
		LineID:    c.LineID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func controllerResponse(c *models.RobotController) *schemas.ControllerResponse {
	return &schemas.ControllerResponse{
		ID:           c.ID,
		CellID:       c.CellID,
		Name:         c.Name,
		Model:        c.Model,
		SerialNumber: c.SerialNumber,
		IPAddress:    c.IPAddress,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
}
