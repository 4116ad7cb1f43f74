package models

// Dish represents a recipe document in the Firestore "dishes" collection
type Dish struct {
	ID          string       `json:"id" firestore:"-"`
	Name        string       `json:"name" firestore:"name"`
	Category    string       `json:"category" firestore:"category"`
	Servings    int          `json:"servings" firestore:"servings"`
	Duration    string       `json:"duration" firestore:"duration"`
	Ingredients []Ingredient `json:"ingredients" firestore:"ingredients"`
	Procedures  []string     `json:"procedures" firestore:"procedures"`
	Rating      float64      `json:"rating" firestore:"rating"`
	ImageURL    string       `json:"imageUrl" firestore:"imageUrl"`
	Source      string       `json:"source" firestore:"source"`
	Archived    bool         `json:"archived" firestore:"archived"` // absent in older documents, read as false
}

// Ingredient is a single ingredient row of a dish
type Ingredient struct {
	Quantity    string   `json:"quantity" firestore:"quantity"`
	Unit        string   `json:"unit" firestore:"unit"`
	Name        string   `json:"name" firestore:"name"`
	Substitutes []string `json:"substitutes,omitempty" firestore:"substitutes,omitempty"`
}

// DishInput holds the editable fields of a dish as parsed from the admin form
type DishInput struct {
	Name        string
	Category    string
	Servings    int
	Duration    string
	Source      string
	Ingredients []Ingredient
	Procedures  []string
}

// DishUpdate is a partial update applied to an existing dish.
// ImageURL is only written when non-empty.
type DishUpdate struct {
	DishInput
	ImageURL string
}
