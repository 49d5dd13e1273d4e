package search

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	domainerrors "nosh/internal/domain/errors"

	"github.com/google/uuid"
)

// cursorVersion prefixes every issued token so the payload encoding can evolve
// without invalidating previously issued links.
const cursorVersion byte = 1

// Cursor marks the last returned item of a page. The result order is total:
// score descending, then establishment ID ascending as the tie-break, so
// resumption is stable and gapless even when scores collide.
type Cursor struct {
	Score float64
	ID    uuid.UUID
}

type cursorPayload struct {
	Score float64   `json:"s"`
	ID    uuid.UUID `json:"id"`
}

// Encode packs the cursor into an opaque URL-safe token.
func (c Cursor) Encode() string {
	payload, err := json.Marshal(cursorPayload{Score: c.Score, ID: c.ID})
	if err != nil {
		// cursorPayload contains only marshalable fields.
		panic(err)
	}

	raw := make([]byte, 0, len(payload)+1)
	raw = append(raw, cursorVersion)
	raw = append(raw, payload...)

	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor inverts Encode. Any malformed, truncated, or unrecognized token
// yields ErrCursorInvalid so callers can restart pagination instead of
// retrying a corrupted token; the failure is never conflated with a filter
// validation error.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, domainerrors.ErrCursorInvalid.WrapMessage("decode base64 token")
	}

	if len(raw) < 2 || raw[0] != cursorVersion {
		return Cursor{}, domainerrors.ErrCursorInvalid.WrapMessage("unknown cursor version")
	}

	var payload cursorPayload
	decoder := json.NewDecoder(bytes.NewReader(raw[1:]))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return Cursor{}, domainerrors.ErrCursorInvalid.WrapMessage("decode cursor payload")
	}

	if payload.ID == uuid.Nil {
		return Cursor{}, domainerrors.ErrCursorInvalid.WrapMessage("missing cursor identity")
	}

	return Cursor{Score: payload.Score, ID: payload.ID}, nil
}

// Precedes reports whether a row ordered by (score desc, id asc) comes after
// the cursor position, i.e. belongs to the next page:
// score < cursor.score OR (score = cursor.score AND id > cursor.id).
func (c Cursor) Precedes(score float64, id uuid.UUID) bool {
	if score < c.Score {
		return true
	}
	if score == c.Score {
		return bytes.Compare(id[:], c.ID[:]) > 0
	}

	return false
}

// OrderBefore defines the total result order used by list mode: primary key
// score descending, tie-break establishment ID ascending.
func OrderBefore(aScore float64, aID uuid.UUID, bScore float64, bID uuid.UUID) bool {
	if aScore != bScore {
		return aScore > bScore
	}

	return bytes.Compare(aID[:], bID[:]) < 0
}
