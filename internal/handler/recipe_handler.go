package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/service"
	"recipebox/internal/storage"
)

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
	files         storage.Storage
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService, files storage.Storage) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, files: files}
}

// NamedRef is a nested tag or ingredient descriptor ({"name": ...}).
type NamedRef struct {
	Name string `json:"name" validate:"required"`
}

// CreateRecipeRequest represents a recipe create payload. The owner is never
// part of the payload, it is always the authenticated user.
type CreateRecipeRequest struct {
	Title       string          `json:"title" validate:"required"`
	TimeMinutes uint            `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Link        string          `json:"link" validate:"omitempty,url"`
	Tags        []NamedRef      `json:"tags" validate:"omitempty,dive"`
	Ingredients []NamedRef      `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest represents a partial update. Omitted scalar fields are
// left untouched; an omitted tags/ingredients list keeps the current
// attachments while a present (even empty) list replaces them.
type UpdateRecipeRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1"`
	TimeMinutes *uint            `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Link        *string          `json:"link" validate:"omitempty,url"`
	Tags        *[]NamedRef      `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]NamedRef      `json:"ingredients" validate:"omitempty,dive"`
}

// NamedResponse is the id+name shape tags and ingredients serialize to.
type NamedResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse is the list-view serialization of a recipe.
type RecipeResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes uint            `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link,omitempty"`
	Tags        []NamedResponse `json:"tags"`
	Ingredients []NamedResponse `json:"ingredients"`
}

// RecipeDetailResponse adds the detail-only fields.
type RecipeDetailResponse struct {
	RecipeResponse
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

func toNamedRefs(in []NamedRef) []service.NamedInput {
	out := make([]service.NamedInput, 0, len(in))
	for _, ref := range in {
		out = append(out, service.NamedInput{Name: ref.Name})
	}
	return out
}

func toTagResponses(tags []model.Tag) []NamedResponse {
	out := make([]NamedResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, NamedResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func toIngredientResponses(ingredients []model.Ingredient) []NamedResponse {
	out := make([]NamedResponse, 0, len(ingredients))
	for _, in := range ingredients {
		out = append(out, NamedResponse{ID: in.ID, Name: in.Name})
	}
	return out
}

func (h *RecipeHandler) toResponse(r *model.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        toTagResponses(r.Tags),
		Ingredients: toIngredientResponses(r.Ingredients),
	}
}

func (h *RecipeHandler) toDetailResponse(r *model.Recipe) RecipeDetailResponse {
	resp := RecipeDetailResponse{
		RecipeResponse: h.toResponse(r),
		Description:    r.Description,
	}
	if r.ImagePath != "" {
		resp.Image = h.files.URL(r.ImagePath)
	}
	return resp
}

func recipeIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid recipe id")
	}
	return uint(id), nil
}

// List godoc
// @Summary List the caller's recipes
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param tags query string false "Comma-separated tag ids"
// @Param ingredients query string false "Comma-separated ingredient ids"
// @Success 200 {array} RecipeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	filter := repository.RecipeFilter{
		TagIDs:        parseIDList(c.QueryParam("tags")),
		IngredientIDs: parseIDList(c.QueryParam("ingredients")),
	}

	recipes, err := h.recipeService.List(c.Request().Context(), userID, filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, h.toResponse(&recipes[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecipeRequest true "Recipe payload"
// @Success 201 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), userID, service.CreateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
		Tags:        toNamedRefs(req.Tags),
		Ingredients: toNamedRefs(req.Ingredients),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, h.toDetailResponse(recipe))
}

// Get godoc
// @Summary Get a recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeDetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, h.toDetailResponse(recipe))
}

// Put godoc
// @Summary Replace a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body CreateRecipeRequest true "Recipe payload"
// @Success 200 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Put(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateRecipeInput{
		Title:       &req.Title,
		TimeMinutes: &req.TimeMinutes,
		Price:       &req.Price,
		Description: &req.Description,
		Link:        &req.Link,
	}
	if req.Tags != nil {
		tags := toNamedRefs(req.Tags)
		in.Tags = &tags
	}
	if req.Ingredients != nil {
		ingredients := toNamedRefs(req.Ingredients)
		in.Ingredients = &ingredients
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), userID, id, in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, h.toDetailResponse(recipe))
}

// Patch godoc
// @Summary Partially update a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Recipe changes"
// @Success 200 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [patch]
func (h *RecipeHandler) Patch(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
	}
	if req.Tags != nil {
		tags := toNamedRefs(*req.Tags)
		in.Tags = &tags
	}
	if req.Ingredients != nil {
		ingredients := toNamedRefs(*req.Ingredients)
		in.Ingredients = &ingredients
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), userID, id, in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, h.toDetailResponse(recipe))
}

// Delete godoc
// @Summary Delete a recipe
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204 "No Content"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	if err := h.recipeService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload a recipe image
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id}/image [post]
func (h *RecipeHandler) UploadImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "image file is required",
			Code:  "IMAGE_REQUIRED",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "cannot read uploaded file",
			Code:  "IMAGE_UNREADABLE",
		})
	}
	defer file.Close()

	recipe, err := h.recipeService.AttachImage(c.Request().Context(), userID, id, file)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, h.toDetailResponse(recipe))
}
