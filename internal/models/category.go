package models

import "time"

type Category struct {
	CategoryID string    `json:"categoryId"`
	Kind       Kind      `json:"kind"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	Color      string    `json:"color"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}
