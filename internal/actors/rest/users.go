package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okruhlystol/catalog/internal/core/model"
)

func (h *handlers) register(c *gin.Context) {
	var args model.RegisterArgs
	if err := c.ShouldBindJSON(&args); err != nil {
		badRequest(c, "invalid body")
		return
	}
	user, err := h.users.Register(c.Request.Context(), args)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
}

func (h *handlers) login(c *gin.Context) {
	var args model.LoginArgs
	if err := c.ShouldBindJSON(&args); err != nil {
		badRequest(c, "invalid body")
		return
	}
	user, err := h.users.Login(c.Request.Context(), args)
	if err != nil {
		writeError(c, err)
		return
	}
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
