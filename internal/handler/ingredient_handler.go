package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/service"
)

// IngredientHandler handles ingredient endpoints.
type IngredientHandler struct {
	ingredientService service.IngredientService
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(ingredientService service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// IngredientRequest represents an ingredient create or rename payload.
type IngredientRequest struct {
	Name string `json:"name" validate:"required"`
}

func toIngredientResponse(in *model.Ingredient) NamedResponse {
	return NamedResponse{ID: in.ID, Name: in.Name}
}

// List godoc
// @Summary List the caller's ingredients
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param assigned_only query bool false "Only ingredients attached to a recipe"
// @Success 200 {array} NamedResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ingredients, err := h.ingredientService.List(c.Request().Context(), userID, truthy(c.QueryParam("assigned_only")))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]NamedResponse, 0, len(ingredients))
	for i := range ingredients {
		resp = append(resp, toIngredientResponse(&ingredients[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get an ingredient
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 200 {object} NamedResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [get]
func (h *IngredientHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ingredient id")
	}

	ingredient, err := h.ingredientService.Get(c.Request().Context(), userID, uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toIngredientResponse(ingredient))
}

// Create godoc
// @Summary Create an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IngredientRequest true "Ingredient payload"
// @Success 201 {object} NamedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ingredients [post]
func (h *IngredientHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req IngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient, err := h.ingredientService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, toIngredientResponse(ingredient))
}

// Patch godoc
// @Summary Rename an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param request body IngredientRequest true "Ingredient payload"
// @Success 200 {object} NamedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [patch]
func (h *IngredientHandler) Patch(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ingredient id")
	}

	var req IngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient, err := h.ingredientService.Update(c.Request().Context(), userID, uint(id), req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toIngredientResponse(ingredient))
}

// Delete godoc
// @Summary Delete an ingredient
// @Tags ingredients
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 204 "No Content"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ingredient id")
	}

	if err := h.ingredientService.Delete(c.Request().Context(), userID, uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
