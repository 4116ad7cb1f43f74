package insights

import (
	"sort"

	"github.com/tastytalk/admin-backend/internal/models"
)

// Categories lists the distinct dish categories in alphabetical order.
func Categories(dishes []models.Dish) []string {
	set := make(map[string]struct{})
	for _, d := range dishes {
		if d.Category != "" {
			set[d.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
