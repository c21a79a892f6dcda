package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/warbler/internal/api/flash"
	"github.com/d60-Lab/warbler/internal/api/middleware"
	"github.com/d60-Lab/warbler/internal/forms"
	"github.com/d60-Lab/warbler/internal/model"
	"github.com/d60-Lab/warbler/internal/service"
	"github.com/d60-Lab/warbler/pkg/logger"
)

// ListUsers shows every user, or the ones matching ?q= as a case-sensitive
// username substring.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "listing failed")
		return
	}
	h.render(c, http.StatusOK, "users_index.html", gin.H{"Users": users, "Query": c.Query("q")})
}

// ShowUser renders a profile with the user's own messages.
func (h *Handler) ShowUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, "profile failed")
		return
	}
	msgs, err := h.messages.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "profile failed")
		return
	}

	data := gin.H{"User": u, "Messages": msgs}
	if viewer, ok := middleware.CurrentUser(c); ok && viewer.ID != u.ID {
		following, err := h.relations.IsFollowing(c.Request.Context(), viewer.ID, u.ID)
		if err == nil {
			data["ViewerFollows"] = following
		}
	}
	h.render(c, http.StatusOK, "users_show.html", data)
}

// ShowFollowing lists who the profile user follows.
func (h *Handler) ShowFollowing(c *gin.Context) {
	h.renderFollowPage(c, "following.html", h.relations.Following)
}

// ShowFollowers lists who follows the profile user.
func (h *Handler) ShowFollowers(c *gin.Context) {
	h.renderFollowPage(c, "followers.html", h.relations.Followers)
}

func (h *Handler) renderFollowPage(c *gin.Context, tmpl string, list func(ctx context.Context, id int64) ([]*model.User, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, "lookup failed")
		return
	}
	users, err := list(c.Request.Context(), u.ID)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "lookup failed")
		return
	}
	h.render(c, http.StatusOK, tmpl, gin.H{"User": u, "Users": users})
}

// ShowLiked lists the messages a user has liked, newest first.
func (h *Handler) ShowLiked(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		c.Error(err)
		c.String(http.StatusInternalServerError, "lookup failed")
		return
	}
	msgs, err := h.users.LikedMessages(c.Request.Context(), u.ID)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "lookup failed")
		return
	}
	h.render(c, http.StatusOK, "liked.html", gin.H{"User": u, "Messages": msgs})
}

// Follow makes the session user follow the target user.
func (h *Handler) Follow(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	if err := h.relations.Follow(c.Request.Context(), viewer.ID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			h.notFound(c)
		case errors.Is(err, service.ErrFollowSelf):
			flash.Set(c, "danger", "You cannot follow yourself.")
			redirectBack(c)
		default:
			c.Error(err)
			c.String(http.StatusInternalServerError, "follow failed")
		}
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d/following", viewer.ID))
}

// Unfollow removes the session user's follow edge to the target user.
func (h *Handler) Unfollow(c *gin.Context) {
	viewer, _ := middleware.CurrentUser(c)
	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	if err := h.relations.Unfollow(c.Request.Context(), viewer.ID, id); err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "unfollow failed")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d/following", viewer.ID))
}

// EditProfileForm renders the profile editor pre-filled with the current
// values.
func (h *Handler) EditProfileForm(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	f := forms.ProfileEditForm{
		Username:       u.Username,
		Email:          u.Email,
		ImageURL:       u.ImageURL,
		HeaderImageURL: u.HeaderImageURL,
		Bio:            u.Bio,
		Location:       u.Location,
	}
	h.render(c, http.StatusOK, "edit.html", gin.H{"Form": f})
}

// EditProfile applies profile changes after re-checking the password.
// Blank fields keep their current value.
func (h *Handler) EditProfile(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	var f forms.ProfileEditForm
	_ = c.ShouldBind(&f)
	if errs := f.Validate(); errs.Any() {
		h.render(c, http.StatusOK, "edit.html", gin.H{"Form": f, "Errors": errs})
		return
	}

	upd := service.ProfileUpdate{
		Username:       f.Username,
		Email:          f.Email,
		ImageURL:       f.ImageURL,
		HeaderImageURL: f.HeaderImageURL,
		Bio:            f.Bio,
		Location:       f.Location,
	}
	updated, err := h.users.UpdateProfile(c.Request.Context(), u.ID, upd, f.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLogin):
			errs := forms.Errors{"Password": {"Please enter the right password"}}
			h.render(c, http.StatusOK, "edit.html", gin.H{"Form": f, "Errors": errs})
		case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
			flash.Set(c, "danger", "Username already taken")
			h.render(c, http.StatusOK, "edit.html", gin.H{"Form": f})
		default:
			c.Error(err)
			c.String(http.StatusInternalServerError, "update failed")
		}
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", updated.ID))
}

// DeleteUser logs the user out and removes the account with all of its
// messages, likes and follow edges.
func (h *Handler) DeleteUser(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	middleware.ClearSessionCookie(c)
	if err := h.users.Delete(c.Request.Context(), u.ID); err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "delete failed")
		return
	}
	logger.Info("user deleted", zap.Int64("user_id", u.ID))
	c.Redirect(http.StatusFound, "/signup")
}
