package repositories

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tastytalk/admin-backend/internal/models"
)

// The mobile app and older admin revisions wrote some numbers as strings,
// so documents are decoded field by field instead of with DataTo.

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func asFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v interface{}) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
		return int(asFloat(t))
	default:
		return int(asFloat(v))
	}
}

func asBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	default:
		return false
	}
}

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	case int64:
		return time.UnixMilli(t)
	case float64:
		return time.UnixMilli(int64(t))
	}
	return time.Time{}
}

func asStringSlice(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}

func decodeIngredients(v interface{}) []models.Ingredient {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]models.Ingredient, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, models.Ingredient{
			Quantity:    asString(m["quantity"]),
			Unit:        asString(m["unit"]),
			Name:        asString(m["name"]),
			Substitutes: asStringSlice(m["substitutes"]),
		})
	}
	return out
}

func decodeDish(id string, data map[string]interface{}) models.Dish {
	return models.Dish{
		ID:          id,
		Name:        asString(data["name"]),
		Category:    asString(data["category"]),
		Servings:    asInt(data["servings"]),
		Duration:    asString(data["duration"]),
		Ingredients: decodeIngredients(data["ingredients"]),
		Procedures:  asStringSlice(data["procedures"]),
		Rating:      asFloat(data["rating"]),
		ImageURL:    asString(data["imageUrl"]),
		Source:      asString(data["source"]),
		Archived:    asBool(data["archived"]),
	}
}

func decodeFeedback(data map[string]interface{}) models.Feedback {
	return models.Feedback{
		UserID:    asString(data["userId"]),
		Rating:    asFloat(data["rating"]),
		Timestamp: asTime(data["timestamp"]),
	}
}

func decodeNotification(id string, data map[string]interface{}) models.Notification {
	return models.Notification{
		ID:        id,
		Title:     asString(data["title"]),
		Message:   asString(data["message"]),
		DishID:    asString(data["dishId"]),
		DishName:  asString(data["dishName"]),
		Timestamp: asTime(data["timestamp"]),
		Read:      asBool(data["read"]),
		UserID:    asString(data["userId"]),
	}
}

func decodeUser(id string, data map[string]interface{}) models.User {
	return models.User{
		ID:       id,
		FullName: asString(data["fullName"]),
		Birthday: asString(data["birthday"]),
		Age:      asInt(data["age"]),
		Gender:   asString(data["gender"]),
		Username: asString(data["username"]),
		Email:    asString(data["email"]),
	}
}
