package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/logging"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// PostHandler handles the authenticated post endpoints.
type PostHandler struct {
	svc service.PostService
	log logging.Logger
}

// NewPostHandler creates a new post handler.
func NewPostHandler(svc service.PostService, log logging.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: log.With("component", "posts")}
}

// CreatePostRequest represents a new post.
type CreatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Img         string `json:"img"`
}

// Unclassified failures on post routes echo the error text back to the
// client, which existing clients display verbatim.

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 401 {object} map[string]string
// @Failure 404 {string} string "User not found"
// @Failure 500 {string} string
// @Router /post [post]
func (h *PostHandler) Create(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return fail(c, h.log, err, msgServerError)
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, msgInvalidBody)
	}

	post, err := h.svc.Create(c.Request().Context(), claims.Email, service.PostInput{
		Title:       req.Title,
		Description: req.Description,
		Img:         req.Img,
	})
	if err != nil {
		return fail(c, h.log, err, err.Error())
	}
	return c.JSON(http.StatusCreated, post)
}

// List godoc
// @Summary List own posts
// @Tags posts
// @Produce json
// @Security CookieAuth
// @Success 200 {array} model.Post
// @Failure 401 {object} map[string]string
// @Failure 404 {string} string "User not found"
// @Failure 500 {string} string
// @Router /post [get]
func (h *PostHandler) List(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return fail(c, h.log, err, msgServerError)
	}

	posts, err := h.svc.List(c.Request().Context(), claims.Email)
	if err != nil {
		return fail(c, h.log, err, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// Update godoc
// @Summary Update an owned post
// @Description Only title, description and img are writable. A post owned by someone else is reported as not found.
// @Tags posts
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Post ID"
// @Param request body model.PostPatch true "Fields to change"
// @Success 200 {object} model.Post
// @Failure 401 {object} map[string]string
// @Failure 404 {string} string "Post not found or unauthorized"
// @Failure 500 {string} string
// @Router /post/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return fail(c, h.log, err, msgServerError)
	}

	var patch model.PostPatch
	if err := c.Bind(&patch); err != nil {
		return c.String(http.StatusBadRequest, msgInvalidBody)
	}

	post, err := h.svc.Update(c.Request().Context(), claims.Email, claims.UserID, c.Param("id"), patch)
	if err != nil {
		return fail(c, h.log, err, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete an owned post
// @Tags posts
// @Produce plain
// @Security CookieAuth
// @Param id path string true "Post ID"
// @Success 200 {string} string "Post deleted"
// @Failure 401 {object} map[string]string
// @Failure 404 {string} string "Post not found or unauthorized"
// @Failure 500 {string} string
// @Router /post/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return fail(c, h.log, err, msgServerError)
	}

	if err := h.svc.Delete(c.Request().Context(), claims.Email, claims.UserID, c.Param("id")); err != nil {
		return fail(c, h.log, err, err.Error())
	}
	return c.String(http.StatusOK, "Post deleted")
}
