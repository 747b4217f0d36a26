package calendar

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

// Digest hashes the canonical JSON encoding of the year's day views with SHA-1.
// It detects content changes between runs and storage locations; it is not a
// security boundary.
func Digest(days []model.DayView) (string, error) {
	if days == nil {
		days = []model.DayView{}
	}
	payload, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("%w: encode year view: %v", ErrSerialization, err)
	}
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:]), nil
}
