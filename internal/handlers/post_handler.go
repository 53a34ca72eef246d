package handlers

import (
	"net/http"

	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	posts *services.PostService
	feeds *services.FeedService
	users *services.UserService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService, feeds *services.FeedService, users *services.UserService) *PostHandler {
	return &PostHandler{posts: posts, feeds: feeds, users: users}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost publishes a new post as the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	var req models.PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.posts.Create(c.Request().Context(), me, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return h.respond(c, http.StatusCreated, me, post)
}

// ListPosts lists every post newest first, or those of ?author=<username>
func (h *PostHandler) ListPosts(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var posts []models.Post
	if author := c.QueryParam("author"); author != "" {
		page, limit := pagination(c, 20, 100)
		posts, err = h.posts.ListByAuthor(ctx, author, models.Page{Offset: (page - 1) * limit, Limit: limit})
	} else {
		posts, err = h.posts.ListAll(ctx)
	}
	if err != nil {
		return toHTTPError(err)
	}

	decorated, err := h.feeds.Decorate(ctx, me, posts)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, decorated)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.posts.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return h.respond(c, http.StatusOK, me, post)
}

// UpdatePost replaces the content of a post owned by the authenticated user
func (h *PostHandler) UpdatePost(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.posts.Update(c.Request().Context(), id, me, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return h.respond(c, http.StatusOK, me, post)
}

// DeletePost deletes a post owned by the authenticated user
func (h *PostHandler) DeletePost(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.Request().Context(), id, me); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) respond(c echo.Context, status int, viewer *models.User, post *models.Post) error {
	decorated, err := h.feeds.Decorate(c.Request().Context(), viewer, []models.Post{*post})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(status, decorated[0])
}
