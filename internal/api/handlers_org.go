package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/graph"
	"github.com/alexanderramin/pmo/internal/logging"
)

// businessUnitView loads a unit with its projects (full detail), plans and
// positions.
func (s *Server) businessUnitView(ctx context.Context, bu *domain.BusinessUnit) (businessUnitResponse, error) {
	out := businessUnitResponse{
		ID: bu.ID, Name: bu.Name, Type: bu.Type, ParentID: bu.ParentID, ManagerID: bu.ManagerID,
		Projects: []projectResponse{}, BusinessPlans: []businessPlanResponse{}, Positions: []positionResponse{},
	}
	projects, err := s.services.Projects.List(ctx, &bu.ID)
	if err != nil {
		return out, err
	}
	for _, p := range projects {
		d, err := s.services.Projects.Detail(ctx, p.ID)
		if err != nil {
			return out, err
		}
		out.Projects = append(out.Projects, toProject(d))
	}
	plans, err := s.services.Plans.ListPlans(ctx, &bu.ID)
	if err != nil {
		return out, err
	}
	for _, p := range plans {
		out.BusinessPlans = append(out.BusinessPlans, toBusinessPlan(p))
	}
	positions, err := s.services.Positions.List(ctx, &bu.ID)
	if err != nil {
		return out, err
	}
	for _, p := range positions {
		out.Positions = append(out.Positions, toPosition(p))
	}
	return out, nil
}

func (s *Server) respondBusinessUnit(c echo.Context, status int, bu *domain.BusinessUnit) error {
	view, err := s.businessUnitView(c.Request().Context(), bu)
	if err != nil {
		return err
	}
	return c.JSON(status, view)
}

func (s *Server) listBusinessUnits(c echo.Context) error {
	ctx := c.Request().Context()
	units, err := s.services.BusinessUnits.List(ctx)
	if err != nil {
		return err
	}
	out := make([]businessUnitResponse, 0, len(units))
	for _, bu := range units {
		view, err := s.businessUnitView(ctx, bu)
		if err != nil {
			return err
		}
		out = append(out, view)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getBusinessUnit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	bu, err := s.services.BusinessUnits.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return s.respondBusinessUnit(c, http.StatusOK, bu)
}

func (s *Server) createBusinessUnit(c echo.Context) error {
	var req businessUnitCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	bu := req.toDomain()
	if err := s.services.BusinessUnits.Create(c.Request().Context(), bu); err != nil {
		return err
	}
	logging.FromEcho(c).Info("business unit created", zap.Int64("id", bu.ID), zap.String("name", bu.Name))
	return s.respondBusinessUnit(c, http.StatusCreated, bu)
}

func (s *Server) updateBusinessUnit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req businessUnitUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}
	bu, err := s.services.BusinessUnits.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return s.respondBusinessUnit(c, http.StatusOK, bu)
}

func (s *Server) deleteBusinessUnit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.services.BusinessUnits.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	logging.FromEcho(c).Info("business unit deleted", zap.Int64("id", id))
	return c.NoContent(http.StatusNoContent)
}

// businessUnitGraph returns the unit's graph as JSON, or as DOT/YAML when
// ?format= asks for it.
func (s *Server) businessUnitGraph(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	format := graph.FormatJSON
	if raw := c.QueryParam("format"); raw != "" {
		if format, err = graph.ParseFormat(raw); err != nil {
			return err
		}
	}
	g, err := s.services.Graph.Build(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if format == graph.FormatJSON {
		return c.JSON(http.StatusOK, g)
	}

	var buf bytes.Buffer
	if err := graph.Encode(&buf, g, format); err != nil {
		return err
	}
	contentType := "text/vnd.graphviz; charset=utf-8"
	if format == graph.FormatYAML {
		contentType = "application/yaml"
	}
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
