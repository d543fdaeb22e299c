package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/alexanderramin/pmo/internal/logging"
)

func (s *Server) respondProject(c echo.Context, status int, id int64) error {
	d, err := s.services.Projects.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(status, toProject(d))
}

func (s *Server) listProjects(c echo.Context) error {
	ctx := c.Request().Context()
	buID, err := queryID(c, "businessunit_id")
	if err != nil {
		return err
	}
	projects, err := s.services.Projects.List(ctx, buID)
	if err != nil {
		return err
	}
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		d, err := s.services.Projects.Detail(ctx, p.ID)
		if err != nil {
			return err
		}
		out = append(out, toProject(d))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return s.respondProject(c, http.StatusOK, id)
}

func (s *Server) createProject(c echo.Context) error {
	var req projectCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	p, err := req.toDomain()
	if err != nil {
		return err
	}
	if err := s.services.Projects.Create(c.Request().Context(), p); err != nil {
		return err
	}
	logging.FromEcho(c).Info("project created", zap.Int64("id", p.ID), zap.String("tender_no", p.TenderNo))
	return s.respondProject(c, http.StatusCreated, p.ID)
}

func (s *Server) updateProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req projectUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}
	if _, err := s.services.Projects.Update(c.Request().Context(), id, patch); err != nil {
		return err
	}
	return s.respondProject(c, http.StatusOK, id)
}

func (s *Server) deleteProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.services.Projects.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	logging.FromEcho(c).Info("project deleted", zap.Int64("id", id))
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) createSampleData(c echo.Context) error {
	data, err := s.services.Seed.CreateSampleData(c.Request().Context())
	if err != nil {
		return err
	}
	logging.FromEcho(c).Info("sample data created",
		zap.Int64("business_unit_id", data.BusinessUnit.ID),
		zap.Int64("project_id", data.Project.ID))
	return c.JSON(http.StatusCreated, sampleDataResponse{
		BusinessUnitID: data.BusinessUnit.ID,
		ProjectID:      data.Project.ID,
	})
}
