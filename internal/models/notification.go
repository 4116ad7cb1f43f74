package models

import "time"

// Notification represents a push notification document in the Firestore "notifications" collection
type Notification struct {
	ID        string    `json:"id" firestore:"-"`
	Title     string    `json:"title" firestore:"title"`
	Message   string    `json:"message" firestore:"message"`
	DishID    string    `json:"dishId" firestore:"dishId"`
	DishName  string    `json:"dishName" firestore:"dishName"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
	Read      bool      `json:"read" firestore:"read"`
	UserID    string    `json:"userId" firestore:"userId"`
}

// Notification titles written by the admin
const (
	NotificationTitleDishUpdated = "Dish Updated"
	NotificationTitleDishAdded   = "New Dish Added"
)
