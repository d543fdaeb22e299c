package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// requireProject resolves :id to an existing project, answering 404
// before the body is read.
func (s *Server) requireProject(c echo.Context) (int64, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return 0, err
	}
	if _, err := s.services.Projects.GetByID(c.Request().Context(), id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Server) createIssue(c echo.Context) error {
	projectID, err := s.requireProject(c)
	if err != nil {
		return err
	}
	var req issueCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	i, err := req.toDomain(projectID)
	if err != nil {
		return err
	}
	if err := s.services.Issues.Create(c.Request().Context(), i); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toIssue(i))
}

func (s *Server) getIssue(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	i, err := s.services.Issues.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIssue(i))
}

func (s *Server) updateIssue(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req issueUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}
	i, err := s.services.Issues.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIssue(i))
}

func (s *Server) deleteIssue(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.services.Issues.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) createChangeRequest(c echo.Context) error {
	projectID, err := s.requireProject(c)
	if err != nil {
		return err
	}
	var req changeRequestCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	cr, err := req.toDomain(projectID)
	if err != nil {
		return err
	}
	if err := s.services.ChangeRequests.Create(c.Request().Context(), cr); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toChangeRequest(cr))
}

func (s *Server) getChangeRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cr, err := s.services.ChangeRequests.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChangeRequest(cr))
}

func (s *Server) updateChangeRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req changeRequestUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}
	cr, err := s.services.ChangeRequests.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChangeRequest(cr))
}

func (s *Server) deleteChangeRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.services.ChangeRequests.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
