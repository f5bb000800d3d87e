package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"scalar/internal/catalog"
)

type challengePayload struct {
	Category string `json:"c"`
	EntityID string `json:"i"`
	Moves    int    `json:"m,omitempty"`
}

// ChallengeResult is a decoded freeplay challenge link.
type ChallengeResult struct {
	Category        string
	Entity          catalog.Entity
	ChallengerMoves int
}

// EncodeChallenge packs a category, entity id, and optional move count into
// an opaque token. Zero moves are omitted from the payload.
func EncodeChallenge(category, entityID string, moves int) string {
	payload := challengePayload{Category: category, EntityID: entityID, Moves: moves}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeChallenge unpacks a challenge token and resolves the entity against
// the catalog. Any malformed or unresolvable token is an error; the caller
// decides how to degrade.
func DecodeChallenge(token string, c *catalog.Catalog) (*ChallengeResult, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decoding challenge: %w", err)
	}

	var payload challengePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding challenge: %w", err)
	}
	if payload.Category == "" || payload.EntityID == "" {
		return nil, fmt.Errorf("decoding challenge: incomplete payload")
	}

	entity, ok := c.EntityByID(payload.Category, payload.EntityID)
	if !ok {
		return nil, fmt.Errorf("decoding challenge: unknown entity %s/%s", payload.Category, payload.EntityID)
	}

	return &ChallengeResult{
		Category:        payload.Category,
		Entity:          entity,
		ChallengerMoves: payload.Moves,
	}, nil
}
