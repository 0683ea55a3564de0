package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okruhlystol/catalog/internal/core/model"
)

type favoriteBody struct {
	UserID  string `json:"user_id"`
	EventID int64  `json:"event_id"`
}

type interactionBody struct {
	UserID     string `json:"user_id"`
	EventID    int64  `json:"event_id"`
	ActionType string `json:"action_type"`
}

func (h *handlers) listFavorites(c *gin.Context) {
	userID, err := requestUser(c, c.Query("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	events, err := h.favorites.Favorites(c.Request.Context(), userID)
	respond(c, events, err)
}

func (h *handlers) addFavorite(c *gin.Context) {
	args, ok := h.favoriteArgs(c)
	if !ok {
		return
	}
	if err := h.favorites.AddFavorite(c.Request.Context(), args); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
}

func (h *handlers) removeFavorite(c *gin.Context) {
	args, ok := h.favoriteArgs(c)
	if !ok {
		return
	}
	if err := h.favorites.RemoveFavorite(c.Request.Context(), args); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

// favoriteArgs decodes the body of the favorite mutations. It answers the request itself
// when the body is unusable.
func (h *handlers) favoriteArgs(c *gin.Context) (model.FavoriteArgs, bool) {
	var body favoriteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid body")
		return model.FavoriteArgs{}, false
	}
	userID, err := requestUser(c, body.UserID)
	if err != nil {
		writeError(c, err)
		return model.FavoriteArgs{}, false
	}
	return model.FavoriteArgs{UserID: userID, EventID: body.EventID}, true
}

func (h *handlers) recommendations(c *gin.Context) {
	userID, err := requestUser(c, c.Query("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	events, err := h.favorites.Recommendations(c.Request.Context(), userID)
	respond(c, events, err)
}

// getPreferences answers with the stored settings flattened next to eventCategories.
func (h *handlers) getPreferences(c *gin.Context) {
	userID, err := requestUser(c, c.Query("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	prefs, err := h.preferences.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	body := gin.H{}
	for k, v := range prefs.Settings {
		body[k] = v
	}
	body["eventCategories"] = prefs.EventCategories
	c.JSON(http.StatusOK, body)
}

// savePreferences takes eventCategories and user_id from the body; every other
// top level key is kept as a setting.
func (h *handlers) savePreferences(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid body")
		return
	}
	rawUser, _ := body["user_id"].(string)
	userID, err := requestUser(c, rawUser)
	if err != nil {
		writeError(c, err)
		return
	}
	categories, ok := stringList(body["eventCategories"])
	if !ok {
		badRequest(c, "eventCategories must be a list of strings")
		return
	}
	delete(body, "user_id")
	delete(body, "eventCategories")
	prefs := model.Preferences{EventCategories: categories}
	if len(body) > 0 {
		prefs.Settings = body
	}

	err = h.preferences.SavePreferences(c.Request.Context(), model.SavePreferencesArgs{UserID: userID, Preferences: prefs})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preferences saved successfully"})
}

func (h *handlers) recordInteraction(c *gin.Context) {
	var body interactionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid body")
		return
	}
	userID, err := requestUser(c, body.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	err = h.preferences.RecordInteraction(c.Request.Context(), model.InteractionArgs{
		UserID:     userID,
		EventID:    body.EventID,
		ActionType: body.ActionType,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interaction logged"})
}

// stringList converts a decoded JSON array of strings. A missing value is an empty list.
func stringList(v any) ([]string, bool) {
	if v == nil {
		return []string{}, true
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
