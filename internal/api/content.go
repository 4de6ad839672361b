package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-cms/inkwell/internal/post"
	"github.com/inkwell-cms/inkwell/internal/tag"
	"github.com/inkwell-cms/inkwell/internal/user"
)

func (h *Handler) HandleCreateUser(c echo.Context) error {
	var body user.CreateUserInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body"))
	}
	if body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, errBody("Email and password are required"))
	}

	u, err := h.users.Create(c.Request().Context(), body)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) HandleWhoAmI(c echo.Context) error {
	u, err := h.users.Get(c.Request().Context(), subject(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) HandleCreatePost(c echo.Context) error {
	var body post.CreatePostInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body"))
	}

	p, err := h.posts.Create(c.Request().Context(), body, subject(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) HandleListPosts(c echo.Context) error {
	posts, err := h.posts.ListByAuthor(c.Request().Context(), subject(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *Handler) HandleGetPost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid post id"))
	}

	p, err := h.posts.Get(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) HandleUpdatePost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid post id"))
	}

	var body post.CreatePostInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body"))
	}

	p, err := h.posts.Update(c.Request().Context(), id, body)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) HandleDeletePost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid post id"))
	}

	if err := h.posts.Delete(c.Request().Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": true, "id": id})
}

func (h *Handler) HandleCreateTag(c echo.Context) error {
	var body tag.Tag
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body"))
	}
	if body.Name == "" || body.Slug == "" {
		return c.JSON(http.StatusBadRequest, errBody("Name and slug are required"))
	}

	if err := h.tags.Create(c.Request().Context(), &body); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, body)
}

func (h *Handler) HandleDeleteTag(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid tag id"))
	}

	if err := h.tags.Delete(c.Request().Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": true, "id": id})
}

func (h *Handler) HandleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errBody("File is required"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Could not read file"))
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Could not read file"))
	}

	up, err := h.uploads.UploadFile(c.Request().Context(),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), body)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, up)
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
