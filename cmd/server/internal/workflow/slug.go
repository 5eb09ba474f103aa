package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
)

const (
	maxSlugAttempts = 1000
	fallbackSlug    = "judge"
)

// Letters without an ASCII base under decomposition
var foldLetters = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"ł", "l",
	"đ", "d",
	"ð", "d",
	"þ", "th",
)

// Lowercase ASCII letters and digits of name with accents folded, e.g. José
// becomes jose. Everything else is dropped.
func Slugify(name string) string {
	folded := foldLetters.Replace(strings.ToLower(name))
	// decompose and drop the combining marks
	if s, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))),
		folded,
	); err == nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// First free slug among base, base1, base2, ...
func uniqueSlug(ctx context.Context, db *gorm.DB, name string) (string, error) {
	base := Slugify(name)

	for i := 0; i < maxSlugAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}

		taken, err := models.Exists[models.Judge](ctx, db, "slug = ?", candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", srverr.ErrSlugExhausted, base)
}
