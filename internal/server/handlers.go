package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scalar/internal/daily"
	"scalar/internal/engine"
	"scalar/internal/session"
	"scalar/internal/share"
)

type categoryView struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Par  int    `json:"par"`
}

type entityView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// slotView is the API projection of a slot. The target stays hidden while
// the game is in progress; revealed hint attributes are surfaced as values.
type slotView struct {
	Mode      string                `json:"mode"`
	Category  string                `json:"category"`
	Status    string                `json:"status"`
	Moves     int                   `json:"moves"`
	Credits   int                   `json:"credits"`
	HintKeys  []string              `json:"hintKeys"`
	Hints     map[string]string     `json:"hints,omitempty"`
	DailyDate string                `json:"dailyDate,omitempty"`
	Guesses   []session.GuessResult `json:"guesses"`
	Target    *entityView           `json:"target,omitempty"`
}

func (s *Server) slotView(slot *session.Slot) slotView {
	view := slotView{
		Mode:      slot.Mode,
		Category:  slot.Category,
		Status:    slot.Status,
		Moves:     slot.Moves,
		Credits:   slot.Credits,
		HintKeys:  slot.HintKeys,
		DailyDate: slot.DailyDate,
		Guesses:   slot.Guesses,
	}
	if view.HintKeys == nil {
		view.HintKeys = []string{}
	}
	if view.Guesses == nil {
		view.Guesses = []session.GuessResult{}
	}
	if len(slot.HintKeys) > 0 {
		view.Hints = make(map[string]string, len(slot.HintKeys))
		for _, key := range slot.HintKeys {
			view.Hints[key] = slot.Target.Text(key)
		}
	}
	if slot.Status != session.StatusPlaying {
		view.Target = &entityView{ID: slot.Target.ID, Name: slot.Target.Name}
	}
	return view
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrUnknownCategory), errors.Is(err, session.ErrUnknownEntity):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrFinished), errors.Is(err, session.ErrDailyReset):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func modeParam(c *gin.Context) (string, bool) {
	mode := c.Param("mode")
	if mode != session.ModeDaily && mode != session.ModeFreeplay {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be daily or freeplay"})
		return "", false
	}
	return mode, true
}

func (s *Server) listCategories(c *gin.Context) {
	schema := s.catalog.Schema()
	views := make([]categoryView, 0, len(schema.Categories))
	for _, category := range schema.Categories {
		views = append(views, categoryView{Name: category.Name, Icon: category.Icon, Par: category.Par})
	}
	c.JSON(http.StatusOK, gin.H{"categories": views})
}

func (s *Server) categorySchema(c *gin.Context) {
	name := c.Param("category")
	category, ok := s.catalog.Schema().CategoryByName(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category: " + name})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":   category.Name,
		"icon":   category.Icon,
		"par":    category.Par,
		"fields": category.DisplayColumns(),
	})
}

func (s *Server) suggest(c *gin.Context) {
	category := c.Param("category")
	if !s.catalog.Schema().IsValidCategory(category) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category: " + category})
		return
	}

	guessed := make(map[string]struct{})
	if exclude := c.Query("exclude"); exclude != "" {
		for _, id := range strings.Split(exclude, ",") {
			guessed[strings.TrimSpace(id)] = struct{}{}
		}
	}

	matches := s.catalog.Suggestions(category, c.Query("q"), guessed)
	views := make([]entityView, 0, len(matches))
	for _, entity := range matches {
		views = append(views, entityView{ID: entity.ID, Name: entity.Name})
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": views})
}

func (s *Server) dailyPuzzle(c *gin.Context) {
	slot, err := s.manager.DailySlot(c.Request.Context(), c.Param("category"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"puzzleNumber": daily.PuzzleNumber(slot.DailyDate),
		"date":         slot.DailyDate,
		"dateLabel":    daily.DateLabel(slot.DailyDate),
		"slot":         s.slotView(slot),
	})
}

func (s *Server) streak(c *gin.Context) {
	category := c.Param("category")
	if !s.catalog.Schema().IsValidCategory(category) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category: " + category})
		return
	}
	meta, err := s.manager.Streak(c.Request.Context(), category)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category":          meta.Category,
		"lastCompletedDate": meta.LastCompletedDate,
		"currentStreak":     meta.CurrentStreak,
		"maxStreak":         meta.MaxStreak,
	})
}

func (s *Server) gameState(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	slot, err := s.manager.Slot(c.Request.Context(), mode, c.Param("category"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": s.slotView(slot)})
}

type guessRequest struct {
	Guess string `json:"guess" binding:"required"`
}

func (s *Server) submitGuess(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guess is required"})
		return
	}

	slot, result, err := s.manager.SubmitGuess(c.Request.Context(), mode, c.Param("category"), req.Guess)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": s.slotView(slot), "result": result})
}

type hintRequest struct {
	Keys []string `json:"keys" binding:"required"`
}

func (s *Server) revealHint(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	var req hintRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Keys) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keys are required"})
		return
	}

	slot, err := s.manager.RevealHint(c.Request.Context(), mode, c.Param("category"), req.Keys)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": s.slotView(slot)})
}

func (s *Server) revealAnswer(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	slot, err := s.manager.RevealAnswer(c.Request.Context(), mode, c.Param("category"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": s.slotView(slot)})
}

func (s *Server) reset(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	slot, err := s.manager.Reset(c.Request.Context(), mode, c.Param("category"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": s.slotView(slot)})
}

func (s *Server) shareText(c *gin.Context) {
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	categoryName := c.Param("category")
	category, found := s.catalog.Schema().CategoryByName(categoryName)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category: " + categoryName})
		return
	}

	slot, err := s.manager.Slot(c.Request.Context(), mode, categoryName)
	if err != nil {
		s.fail(c, err)
		return
	}
	if slot.Status == session.StatusPlaying {
		c.JSON(http.StatusConflict, gin.H{"error": "game is still in progress"})
		return
	}

	text := share.Text(share.Options{
		Daily:    slot.Mode == session.ModeDaily,
		Date:     slot.DailyDate,
		Category: category.Name,
		Icon:     category.Icon,
		Moves:    slot.Moves,
		EntityID: slot.Target.ID,
		BaseURL:  s.cfg.Server.BaseURL,
	}, feedbackRows(slot), category.Fields)

	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (s *Server) decodeChallenge(c *gin.Context) {
	result, err := share.DecodeChallenge(c.Query("token"), s.catalog)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category":        result.Category,
		"entity":          entityView{ID: result.Entity.ID, Name: result.Entity.Name},
		"challengerMoves": result.ChallengerMoves,
	})
}

func (s *Server) startChallenge(c *gin.Context) {
	result, err := share.DecodeChallenge(c.Query("token"), s.catalog)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slot, err := s.manager.StartChallenge(c.Request.Context(), result.Category, result.Entity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": s.slotView(slot), "challengerMoves": result.ChallengerMoves})
}

func feedbackRows(slot *session.Slot) []map[string]engine.Feedback {
	rows := make([]map[string]engine.Feedback, 0, len(slot.Guesses))
	for _, guess := range slot.Guesses {
		rows = append(rows, guess.Feedback)
	}
	return rows
}
